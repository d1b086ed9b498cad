package catalog

import (
	"context"
	"regexp"

	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
)

// UnknownCategory URL에서 카테고리를 찾지 못했을 때 사용하는 이름입니다.
const UnknownCategory = "Desconocido"

var categorySlugRegex = regexp.MustCompile(`categoria-producto/([^/]+)/`)

// CategoryFromURL 카테고리 페이지 URL에서 슬러그를 추출합니다.
//
//	CategoryFromURL("https://reventa.biomac.com.ar/categoria-producto/frutas/") // "frutas"
func CategoryFromURL(url string) string {
	m := categorySlugRegex.FindStringSubmatch(url)
	if m == nil {
		return UnknownCategory
	}
	return m[1]
}

// PageLoader 카테고리 페이지 한 개를 가져와 상품 카드 목록으로 반환합니다.
// 카드가 하나도 없는 페이지는 오류가 아닙니다.
type PageLoader interface {
	LoadCards(ctx context.Context, url string) ([]Fragment, error)
}

// PageLoaderFunc 함수를 PageLoader로 사용할 수 있게 합니다.
type PageLoaderFunc func(ctx context.Context, url string) ([]Fragment, error)

// LoadCards f(ctx, url)를 호출합니다.
func (f PageLoaderFunc) LoadCards(ctx context.Context, url string) ([]Fragment, error) {
	return f(ctx, url)
}

// Assembler 카드를 ProductRecord로 조립합니다.
type Assembler struct {
	overrides     map[string]int
	defaultMargin int
	sink          EventSink
}

// NewAssembler 새로운 Assembler를 생성합니다. sink가 nil이면 이벤트를 버립니다.
func NewAssembler(overrides map[string]int, defaultMargin int, sink EventSink) *Assembler {
	if sink == nil {
		sink = EventSinkFunc(func(Event) {})
	}
	return &Assembler{
		overrides:     overrides,
		defaultMargin: defaultMargin,
		sink:          sink,
	}
}

// source 이벤트에 기록할 카드의 출처입니다.
type source struct {
	category string
	url      string
}

// AssembleCard 카드 한 개를 ProductRecord로 조립합니다.
// 제목이 없으면 MissingRequiredField 이벤트를 보고하고 false를 반환합니다.
func (a *Assembler) AssembleCard(category string, card Fragment) (ProductRecord, bool) {
	return a.assembleCard(source{category: category}, card)
}

func (a *Assembler) assembleCard(src source, card Fragment) (ProductRecord, bool) {
	rawTitle, err := ExtractTitle(card)
	if err != nil {
		a.sink.Report(Event{Kind: MissingRequiredField, Category: src.category, URL: src.url, Detail: "title", Err: err})
		return ProductRecord{}, false
	}

	title := CleanTitle(rawTitle)

	discount, err := ExtractDiscountPercent(card)
	if err != nil {
		a.sink.Report(Event{Kind: UnparsableNumeric, Category: src.category, URL: src.url, Title: title, Detail: "discount", Err: err})
	}

	variant, errs := ResolvePrice(ExtractPriceMarkup(card), IsOutOfStock(card))
	for _, err := range errs {
		a.sink.Report(Event{Kind: UnparsableNumeric, Category: src.category, URL: src.url, Title: title, Detail: "price", Err: err})
	}

	base, effective := variant.Prices()
	margin := ResolveMargin(title, a.overrides, a.defaultMargin)
	final := FinalPrice(effective, margin)

	return ProductRecord{
		Title:           title,
		Weight:          ExtractWeight(rawTitle),
		Price:           variant,
		BasePrice:       base,
		EffectivePrice:  effective,
		DiscountPercent: discount,
		MinPurchaseQty:  ExtractMinPurchase(card),
		Category:        src.category,
		MarginPercent:   margin,
		FinalPrice:      final,
		RoundedPrice:    RoundUpToHundred(final),
	}, true
}

// AssemblePage 한 페이지의 카드들을 원래 순서대로 조립합니다. 제목이 없는 카드는 건너뜁니다.
func (a *Assembler) AssemblePage(category string, cards []Fragment) []ProductRecord {
	return a.assemblePage(source{category: category}, cards)
}

func (a *Assembler) assemblePage(src source, cards []Fragment) []ProductRecord {
	records := make([]ProductRecord, 0, len(cards))
	for _, card := range cards {
		if r, ok := a.assembleCard(src, card); ok {
			records = append(records, r)
		}
	}
	return records
}

// Collect 카테고리 URL을 순서대로 하나씩 가져와 조립합니다. 결과는 카테고리 순서, 카드 순서를 따릅니다.
//
// 페이지를 가져오지 못하면 PageUnavailable 이벤트를 보고하고 해당 카테고리를 건너뜁니다.
// ctx가 취소되면 다음 페이지를 가져오기 전에 멈추고 그때까지의 레코드를 반환합니다.
func (a *Assembler) Collect(ctx context.Context, loader PageLoader, urls []string) []ProductRecord {
	var records []ProductRecord

	for _, url := range urls {
		if ctx.Err() != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"collected": len(records),
				"next_url":  url,
			}).Warn("작업이 취소되어 남은 카테고리 수집을 중단합니다")
			break
		}

		src := source{category: CategoryFromURL(url), url: url}

		cards, err := loader.LoadCards(ctx, url)
		if err != nil {
			a.sink.Report(Event{Kind: PageUnavailable, Category: src.category, URL: url, Err: err})
			continue
		}

		page := a.assemblePage(src, cards)
		records = append(records, page...)

		applog.WithComponentAndFields(component, applog.Fields{
			"category": src.category,
			"cards":    len(cards),
			"records":  len(page),
		}).Info("카테고리 수집 완료")
	}

	return records
}
