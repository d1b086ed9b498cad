// Package mocks 네트워크 없이 fetcher.Fetcher를 대체하는 테스트 구현체입니다.
//
// MockFetcher는 testify/mock으로 호출을 검증할 때, MockHTTPFetcher는 URL별 페이지를 미리 등록해
// 카테고리 목록과 페이지 이동을 흉내 낼 때 사용합니다.
package mocks

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/darkkaiser/biomac-scraper/internal/fetcher"
	"github.com/stretchr/testify/mock"
)

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var (
	_ fetcher.Fetcher = (*MockFetcher)(nil)
	_ fetcher.Fetcher = (*MockHTTPFetcher)(nil)
)

// MockFetcher testify/mock 기반 Fetcher
type MockFetcher struct {
	mock.Mock
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

// NewMockResponse 본문과 상태 코드만 채운 응답을 만듭니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// NewMockHTMLResponse 상점 페이지처럼 text/html 200 응답을 만듭니다.
func NewMockHTMLResponse(body string) *http.Response {
	resp := NewMockResponse(body, http.StatusOK)
	resp.Header.Set("Content-Type", "text/html; charset=UTF-8")
	return resp
}

// route URL 하나에 등록된 결과. err가 있으면 응답 대신 에러를 돌려줍니다.
type route struct {
	status int
	body   []byte
	err    error
}

// MockHTTPFetcher URL별로 등록된 페이지를 돌려줍니다. 등록되지 않은 URL은 404 Not Found입니다.
// 여러 고루틴에서 동시에 사용할 수 있습니다.
type MockHTTPFetcher struct {
	mu      sync.Mutex
	routes  map[string]route
	visited []string
}

func NewMockHTTPFetcher() *MockHTTPFetcher {
	return &MockHTTPFetcher{routes: map[string]route{}}
}

// SetResponse url에 200 OK HTML 페이지를 등록합니다.
func (m *MockHTTPFetcher) SetResponse(url string, body []byte) {
	m.SetResponseWithStatus(url, body, http.StatusOK)
}

func (m *MockHTTPFetcher) SetResponseWithStatus(url string, body []byte, statusCode int) {
	m.set(url, route{status: statusCode, body: body})
}

// SetError url 요청이 err로 실패하도록 등록합니다.
func (m *MockHTTPFetcher) SetError(url string, err error) {
	m.set(url, route{err: err})
}

func (m *MockHTTPFetcher) set(url string, r route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[url] = r
}

// GetRequestedURLs 요청 순서대로 URL을 반환합니다.
func (m *MockHTTPFetcher) GetRequestedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.visited...)
}

func (m *MockHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	url := req.URL.String()

	m.mu.Lock()
	m.visited = append(m.visited, url)
	r, ok := m.routes[url]
	m.mu.Unlock()

	if !ok {
		r = route{status: http.StatusNotFound}
	}
	if r.err != nil {
		return nil, r.err
	}

	resp := NewMockHTMLResponse(string(r.body))
	resp.StatusCode = r.status
	resp.Status = http.StatusText(r.status)
	resp.Request = req
	return resp, nil
}
