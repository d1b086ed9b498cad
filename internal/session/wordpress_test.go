package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// =============================================================================
// Test Helpers: WordPress 로그인 흐름을 흉내 내는 테스트 서버
// =============================================================================

const (
	testUser     = "cliente@biomac"
	testPassword = "s3creto"
)

type fakeWordPress struct {
	*httptest.Server

	mu           sync.Mutex
	posts        int
	userAgents   []string
	lastForm     map[string]string
	requireTests bool
}

func newFakeWordPress(t *testing.T) *fakeWordPress {
	t.Helper()

	wp := &fakeWordPress{requireTests: true}

	mux := http.NewServeMux()
	mux.HandleFunc("/wp-login.php", wp.handleLogin)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		wp.recordUA(r)
		if _, err := r.Cookie("wordpress_logged_in_abc123"); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		_, _ = io.WriteString(w, "<html><body>Tienda</body></html>")
	})

	wp.Server = httptest.NewServer(mux)
	t.Cleanup(wp.Close)

	return wp
}

func (wp *fakeWordPress) recordUA(r *http.Request) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	wp.userAgents = append(wp.userAgents, r.Header.Get("User-Agent"))
}

func (wp *fakeWordPress) handleLogin(w http.ResponseWriter, r *http.Request) {
	wp.recordUA(r)

	if r.Method == http.MethodGet {
		http.SetCookie(w, &http.Cookie{Name: "wordpress_test_cookie", Value: "WP Cookie check", Path: "/"})
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		_, _ = io.WriteString(w, `<form id="loginform"></form>`)
		return
	}

	_ = r.ParseForm()

	wp.mu.Lock()
	wp.posts++
	wp.lastForm = map[string]string{}
	for k := range r.PostForm {
		wp.lastForm[k] = r.PostForm.Get(k)
	}
	wp.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")

	if _, err := r.Cookie("wordpress_test_cookie"); err != nil && wp.requireTests {
		_, _ = io.WriteString(w, `<div id="login_error"><strong>Error</strong>: las cookies están bloqueadas.</div>`)
		return
	}

	if r.PostForm.Get("log") != testUser || r.PostForm.Get("pwd") != testPassword {
		_, _ = io.WriteString(w, `<div id="login_error">
			<strong>Error:</strong> La contraseña que has introducido para el usuario no es correcta.
		</div><form id="loginform"></form>`)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "wordpress_logged_in_abc123", Value: "cliente|1700000000|token", Path: "/", HttpOnly: true})
	http.Redirect(w, r, r.PostForm.Get("redirect_to"), http.StatusFound)
}

func (wp *fakeWordPress) form() map[string]string {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	return wp.lastForm
}

func newTestTransport(t *testing.T) *http.Transport {
	t.Helper()

	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)
	return tr
}
