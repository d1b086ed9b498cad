package fetcher

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// mask 로그에 남길 때 민감한 값 대신 기록하는 문자열
const mask = "xxxxx"

// sensitiveKeyPattern 값을 가려야 하는 쿼리 파라미터 이름입니다.
// WordPress 로그인 폼의 log/pwd, nonce 값, 일반적인 토큰/비밀번호 계열 이름이 해당됩니다.
var sensitiveKeyPattern = regexp.MustCompile(
	`(?i)^(log|pwd|pass(wd|word)?|auth|key|token|secret|signature|credential|_?wpnonce|` +
		`access_token|refresh_token|id_token|api_key|client_secret)$|` +
		`(?i)(_token|_secret|_cred|_sig|_password|_passwd|_nonce)$`,
)

// sensitiveHeaders 값 전체를 가리는 헤더입니다. WordPress 세션 쿠키가 Cookie/Set-Cookie로 오갑니다.
var sensitiveHeaders = [...]string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"}

func isSensitiveKey(key string) bool {
	return sensitiveKeyPattern.MatchString(key)
}

// redactHeaders 인증 관련 헤더 값을 가린 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	out := h.Clone()
	for _, name := range sensitiveHeaders {
		if _, ok := out[http.CanonicalHeaderKey(name)]; ok {
			out.Set(name, "***")
		}
	}
	return out
}

// redactURL URL의 사용자 정보와 민감한 쿼리 파라미터를 가린 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	c := *u
	switch {
	case u.User == nil:
	case hasPassword(u.User):
		c.User = url.UserPassword(u.User.Username(), mask)
	case u.User.Username() != "":
		c.User = url.User(mask)
	}

	if u.RawQuery != "" {
		q := c.Query()
		for k := range q {
			if isSensitiveKey(k) {
				q.Set(k, mask)
			}
		}
		c.RawQuery = q.Encode()
	}

	return c.String()
}

func hasPassword(ui *url.Userinfo) bool {
	_, ok := ui.Password()
	return ok
}

// redactRawURL 파싱할 수 없는 URL은 '@' 앞의 사용자 정보만 가립니다.
func redactRawURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return redactURL(u)
	}

	at := strings.LastIndex(rawURL, "@")
	if at < 0 {
		return rawURL
	}
	prefix := ""
	if i := strings.Index(rawURL[:at], "://"); i >= 0 {
		prefix = rawURL[:i+3]
	}
	return prefix + mask + ":" + mask + rawURL[at:]
}
