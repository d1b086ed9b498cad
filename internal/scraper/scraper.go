// Package scraper 인증된 Fetcher로 상품 목록 페이지를 받아 goquery 문서로 파싱하고,
// 상품 카드를 catalog.Fragment로 감싸 제공합니다.
package scraper

import (
	"context"
	"mime"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/biomac-scraper/internal/fetcher"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "scraper"

// acceptHTML HTML 페이지 요청 시 사용하는 Accept 헤더 값
const acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Scraper Fetcher를 사용하여 HTML 페이지를 요청하고 파싱합니다.
type Scraper struct {
	fetcher fetcher.Fetcher
}

// New 주어진 Fetcher 체인을 사용하는 Scraper를 생성합니다.
func New(f fetcher.Fetcher) *Scraper {
	return &Scraper{fetcher: f}
}

// FetchHTMLDocument GET 요청으로 페이지를 받아 goquery 문서로 파싱합니다.
//
// 응답의 Content-Type이 HTML이 아니면 경고만 남기고 파싱을 계속합니다.
func (s *Scraper) FetchHTMLDocument(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, newErrCreateHTTPRequest(urlStr, err)
	}
	req.Header.Set("Accept", acceptHTML)

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"url": urlStr,
	})

	resp, err := s.fetcher.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newErrHTTPRequestCanceled(urlStr, err)
		}
		return nil, newErrFetchFailed(urlStr, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		logger.WithField("content_type", contentType).Warn("HTML 응답을 기대했으나 비표준 Content-Type이 수신되었습니다 (파싱 계속 진행)")
	}

	baseURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		baseURL = resp.Request.URL
	}

	doc, err := parseHTML(ctx, &contextAwareReader{ctx: ctx, r: resp.Body}, baseURL, contentType)
	if err != nil {
		logger.WithError(err).WithField("content_type", contentType).Error("[실패]: HTML 파싱 에러, goquery Document 생성 실패")

		return nil, newErrHTMLParseFailed(urlStr, err)
	}

	logger.WithField("status_code", resp.StatusCode).Debug("[성공]: HTML 요청 및 파싱 완료")

	return doc, nil
}

func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// resolveURL 문서 기준 URL에 대한 상대 경로를 절대 URL로 변환합니다.
func resolveURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}

	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}
