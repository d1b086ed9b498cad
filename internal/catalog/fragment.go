// Package catalog 상품 카드 마크업을 정규화된 상품 레코드로 변환하고 판매가를 계산합니다.
//
// 카드 한 개의 처리 흐름은 다음과 같습니다.
//
//	Fragment ─▶ Extract* (원시 필드) ─▶ CleanTitle / ExtractWeight / ResolvePrice ─▶ 마진, 반올림 ─▶ ProductRecord
//
// 이 패키지는 HTML 파서에 의존하지 않습니다. 마크업 탐색은 Fragment 인터페이스를 통해서만 이루어지며,
// 실제 구현은 scraper 패키지의 goquery 어댑터가 제공합니다.
package catalog

// Fragment 상품 카드 한 개 또는 그 하위 요소의 마크업 조각입니다.
//
// 카드 파싱이 끝나면 더 이상 참조하지 않습니다.
type Fragment interface {
	// FindByClass 주어진 CSS 클래스를 가진 첫 번째 하위 요소를 반환합니다.
	FindByClass(name string) (Fragment, bool)

	// FindByTag 주어진 태그 이름을 가진 첫 번째 하위 요소를 반환합니다.
	FindByTag(name string) (Fragment, bool)

	// Attr 요소의 속성 값을 반환합니다.
	Attr(name string) (string, bool)

	// Text 하위 요소를 포함한 전체 텍스트 내용을 반환합니다.
	Text() string
}
