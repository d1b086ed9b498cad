package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/biomac-scraper/internal/catalog"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

// nextPageSelector WooCommerce 목록 페이지의 "다음 페이지" 링크
const nextPageSelector = ".woocommerce-pagination a.next"

// CardLoader 카테고리 목록 페이지를 받아 상품 카드 목록을 반환하는 catalog.PageLoader 구현체입니다.
type CardLoader struct {
	scraper  *Scraper
	selector string
	maxPages int
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ catalog.PageLoader = (*CardLoader)(nil)

// NewCardLoader maxPages가 1 이하이면 첫 페이지만 읽습니다.
func NewCardLoader(s *Scraper, selector string, maxPages int) (*CardLoader, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, newErrEmptyCardSelector()
	}
	if maxPages < 1 {
		maxPages = 1
	}

	return &CardLoader{
		scraper:  s,
		selector: selector,
		maxPages: maxPages,
	}, nil
}

// LoadCards 목록 페이지의 상품 카드를 반환합니다. 카드가 하나도 없는 페이지는 에러가 아닙니다.
//
// maxPages가 2 이상이면 "다음 페이지" 링크를 따라가며 카드를 이어 붙입니다.
// 두 번째 페이지부터 발생한 에러는 경고로 기록하고 그때까지 모은 카드를 반환합니다.
func (l *CardLoader) LoadCards(ctx context.Context, url string) ([]catalog.Fragment, error) {
	var cards []catalog.Fragment

	visited := make(map[string]struct{}, l.maxPages)
	pageURL := url
	for page := 1; page <= l.maxPages && pageURL != ""; page++ {
		if _, seen := visited[pageURL]; seen {
			break
		}
		visited[pageURL] = struct{}{}

		doc, err := l.scraper.FetchHTMLDocument(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":  pageURL,
				"page": page,
			}).WithError(err).Warn("다음 목록 페이지를 불러오지 못해 이전 페이지까지의 상품만 사용합니다")
			break
		}

		cards = append(cards, Cards(doc, l.selector)...)
		pageURL = nextPageURL(doc)
	}

	return cards, nil
}

func nextPageURL(doc *goquery.Document) string {
	href, ok := doc.Find(nextPageSelector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}
	return resolveURL(doc.Url, strings.TrimSpace(href))
}
