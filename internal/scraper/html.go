package scraper

import (
	"bufio"
	"context"
	"io"
	"net/url"
	"reflect"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/biomac-scraper/pkg/log"
	"golang.org/x/net/html/charset"
)

// charsetPeekSize 인코딩 감지를 위해 미리 읽는 바이트 수
const charsetPeekSize = 1024

// ParseReader 이미 받아 둔 HTML 스트림을 goquery 문서로 파싱합니다.
//
// contentType의 charset 파라미터와 문서 앞부분의 meta 태그를 이용해 인코딩을 감지하고 UTF-8로 변환합니다.
// urlStr은 문서의 기준 URL로 사용되며, 비어 있거나 잘못된 형식이면 무시됩니다.
func ParseReader(ctx context.Context, r io.Reader, urlStr string, contentType string) (*goquery.Document, error) {
	if r == nil {
		return nil, ErrInputReaderNil
	}
	if val := reflect.ValueOf(r); val.Kind() == reflect.Ptr && val.IsNil() {
		return nil, ErrInputReaderInvalidType
	}

	if err := ctx.Err(); err != nil {
		return nil, newErrContextCanceled(err)
	}

	var targetURL *url.URL
	if urlStr != "" {
		u, err := url.Parse(urlStr)
		if err != nil {
			applog.WithComponent(component).WithField("url_string", urlStr).Warn("HTML 파싱 중 잘못된 URL 형식이 감지되었습니다 (상대 경로 링크 처리가 제한될 수 있음)")
		} else {
			targetURL = u
		}
	}

	doc, err := parseHTML(ctx, &contextAwareReader{ctx: ctx, r: r}, targetURL, contentType)
	if err != nil {
		return nil, newErrHTMLParseFailed(urlStr, err)
	}

	return doc, nil
}

func parseHTML(ctx context.Context, r io.Reader, targetURL *url.URL, contentType string) (*goquery.Document, error) {
	bufReader := bufio.NewReader(r)

	// 에러(EOF 등)가 발생해도 읽은 만큼 반환됩니다.
	peekBytes, _ := bufReader.Peek(charsetPeekSize)

	var utf8Reader io.Reader = bufReader
	if e, _, _ := charset.DetermineEncoding(peekBytes, contentType); e != nil {
		utf8Reader = e.NewDecoder().Reader(bufReader)
	} else {
		applog.WithComponent(component).WithContext(ctx).Warn("HTML 인코딩 감지 실패, UTF-8로 가정하고 원본 리더를 사용합니다")
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, err
	}
	if targetURL != nil {
		doc.Url = targetURL
	}

	return doc, nil
}
