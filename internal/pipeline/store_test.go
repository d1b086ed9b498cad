package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// Test Helpers: 로그인이 필요한 WooCommerce 상점을 흉내 내는 테스트 서버
// =============================================================================

const (
	testUser     = "cliente@biomac"
	testPassword = "s3creto"

	loggedInCookie = "wordpress_logged_in_abc123"
)

type fakeStore struct {
	*httptest.Server

	mu          sync.Mutex
	tomatoPrice string
	pageHits    map[string]int
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()

	s := &fakeStore{tomatoPrice: "960,00", pageHits: map[string]int{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/wp-login.php", s.handleLogin)
	mux.HandleFunc("/categoria-producto/", s.handleCategory)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeHTML(w, "<html><body>Tienda</body></html>")
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)

	return s
}

func (s *fakeStore) setTomatoPrice(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tomatoPrice = p
}

func (s *fakeStore) hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pageHits[path]
}

func (s *fakeStore) categoryURL(slug string) string {
	return s.URL + "/categoria-producto/" + slug + "/"
}

func (s *fakeStore) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		http.SetCookie(w, &http.Cookie{Name: "wordpress_test_cookie", Value: "WP Cookie check", Path: "/"})
		writeHTML(w, `<form id="loginform"></form>`)
		return
	}

	_ = r.ParseForm()
	if r.PostForm.Get("log") != testUser || r.PostForm.Get("pwd") != testPassword {
		writeHTML(w, `<div id="login_error"><strong>Error:</strong> La contraseña no es correcta.</div>`)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: loggedInCookie, Value: "cliente|token", Path: "/", HttpOnly: true})
	http.Redirect(w, r, r.PostForm.Get("redirect_to"), http.StatusFound)
}

func (s *fakeStore) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.pageHits[r.URL.Path]++
	tomato := s.tomatoPrice
	s.mu.Unlock()

	if _, err := r.Cookie(loggedInCookie); err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	switch strings.Trim(strings.TrimPrefix(r.URL.Path, "/categoria-producto/"), "/") {
	case "vegetales":
		writeHTML(w, page(
			discountedCard("Tomate Perita x 1,5kg por Cajón", "1.200,00", tomato, "-20%"),
			regularCard("Papa Negra 500gr", "850,00", 2),
		))
	case "frutas":
		http.Error(w, "mantenimiento", http.StatusInternalServerError)
	case "helados":
		writeHTML(w, page(
			`<li class="product item-producto-bio outofstock"><span class="out_of_stock">Sin stock</span>
				<h2 class="woocommerce-loop-product__title">Helado Frutilla 1kg</h2></li>`,
			`<li class="product item-producto-bio"><span class="price"><bdi>$&nbsp;100,00</bdi></span></li>`,
		))
	default:
		http.NotFound(w, r)
	}
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	_, _ = io.WriteString(w, body)
}

func page(cards ...string) string {
	return `<html><body><ul class="products">` + strings.Join(cards, "\n") + `</ul></body></html>`
}

func discountedCard(title, original, active, badge string) string {
	return fmt.Sprintf(`<li class="product item-producto-bio sale">
		<span class="onsale">%s</span>
		<h2 class="woocommerce-loop-product__title">%s</h2>
		<span class="price">
			<del><span class="woocommerce-Price-amount amount"><bdi>$&nbsp;%s</bdi></span></del>
			<ins><span class="woocommerce-Price-amount amount"><bdi>$&nbsp;%s</bdi></span></ins>
		</span>
	</li>`, badge, title, original, active)
}

func regularCard(title, price string, minQty int) string {
	return fmt.Sprintf(`<li class="product item-producto-bio">
		<h2 class="woocommerce-loop-product__title">%s</h2>
		<span class="price"><span class="woocommerce-Price-amount amount"><bdi>$&nbsp;%s</bdi></span></span>
		<div class="quantity"><input type="number" name="quantity" value="%d" min="%d"></div>
	</li>`, title, price, minQty, minQty)
}
