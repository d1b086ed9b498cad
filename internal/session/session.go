// Package session WordPress 로그인 폼으로 상점에 인증하고, 인증 쿠키를 가진 Fetcher 체인을 제공합니다.
package session

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/biomac-scraper/internal/fetcher"
	"github.com/darkkaiser/biomac-scraper/internal/scraper"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

// component 로깅용 컴포넌트 이름
const component = "session"

const (
	// loggedInCookiePrefix 로그인에 성공하면 WordPress가 발급하는 쿠키 이름의 접두사
	loggedInCookiePrefix = "wordpress_logged_in_"

	// loginErrorSelector 로그인 실패 시 WordPress가 표시하는 오류 블록
	loginErrorSelector = "#login_error"
)

// Options 로그인 및 HTTP 전송 설정입니다.
type Options struct {
	BaseURL   string
	LoginPath string

	Username string
	Password string

	Timeout         time.Duration
	RequestInterval time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	MaxBytes        int64
	UserAgent       string

	// Transport 테스트에서 네트워크를 대체할 RoundTripper
	Transport http.RoundTripper
}

// Session 인증 쿠키를 보관하는 로그인 세션입니다.
type Session struct {
	baseURL *url.URL
	jar     http.CookieJar
	fetcher fetcher.Fetcher
}

// Login 로그인 페이지를 열어 테스트 쿠키를 받은 뒤 자격 증명을 POST로 전송합니다.
//
// 쿠키 저장소에 wordpress_logged_in_* 쿠키가 생기면 성공으로 판단합니다.
// 그렇지 않으면 페이지의 #login_error 문구를 담은 Unauthorized 에러를 반환합니다.
func Login(ctx context.Context, opts Options) (*Session, error) {
	if strings.TrimSpace(opts.Username) == "" || opts.Password == "" {
		return nil, ErrMissingCredentials
	}

	baseURL, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || baseURL.Host == "" {
		return nil, newErrInvalidBaseURL(opts.BaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, newErrCookieJarCreationFailed(err)
	}

	var userAgents []string
	if opts.UserAgent != "" {
		userAgents = []string{opts.UserAgent}
	}

	chain := fetcher.NewFromConfig(fetcher.Config{
		Timeout:       opts.Timeout,
		Jar:           jar,
		Transport:     opts.Transport,
		UserAgents:    userAgents,
		MaxRetries:    opts.MaxRetries,
		MinRetryDelay: opts.RetryDelay,
		MaxBytes:      opts.MaxBytes,
	})

	s := &Session{
		baseURL: baseURL,
		jar:     jar,
		fetcher: NewPacedFetcher(chain, opts.RequestInterval),
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"base_url": baseURL.String(),
		"username": applog.MaskSensitiveData(opts.Username),
	})

	loginURL := baseURL.JoinPath(opts.LoginPath).String()

	// WordPress는 로그인 전에 테스트 쿠키(wordpress_test_cookie)가 설정되어 있어야 합니다.
	resp, err := fetcher.Get(ctx, s.fetcher, loginURL)
	if err != nil {
		logger.WithError(err).Error("[실패]: 로그인 페이지 요청 실패")
		return nil, newErrLoginPageUnavailable(err)
	}
	drain(resp)

	form := url.Values{
		"log":         {opts.Username},
		"pwd":         {opts.Password},
		"rememberme":  {"forever"},
		"wp-submit":   {"Acceder"},
		"redirect_to": {baseURL.String() + "/"},
		"testcookie":  {"1"},
	}

	resp, err = fetcher.PostForm(ctx, s.fetcher, loginURL, form)
	if err != nil {
		logger.WithError(err).Error("[실패]: 로그인 요청 전송 실패")
		return nil, newErrLoginRequestFailed(err)
	}
	defer resp.Body.Close()

	if !s.LoggedIn() {
		message := loginErrorMessage(ctx, resp)
		logger.WithField("login_error", message).Error("[실패]: 로그인 거부, 인증 쿠키 없음")

		return nil, newErrLoginRejected(message)
	}

	logger.Info("[성공]: 상점 로그인 완료")

	return s, nil
}

// Fetcher 인증 쿠키와 요청 간격이 적용된 Fetcher 체인을 반환합니다.
func (s *Session) Fetcher() fetcher.Fetcher {
	return s.fetcher
}

// LoggedIn 쿠키 저장소에 로그인 쿠키가 있는지 확인합니다.
func (s *Session) LoggedIn() bool {
	for _, c := range s.jar.Cookies(s.baseURL.JoinPath("/")) {
		if strings.HasPrefix(c.Name, loggedInCookiePrefix) && c.Value != "" {
			return true
		}
	}
	return false
}

// BaseURL 상점 주소를 반환합니다.
func (s *Session) BaseURL() *url.URL {
	u := *s.baseURL
	return &u
}

func loginErrorMessage(ctx context.Context, resp *http.Response) string {
	doc, err := scraper.ParseReader(ctx, resp.Body, "", resp.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find(loginErrorSelector).First().Text()), " ")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	resp.Body.Close()
}
