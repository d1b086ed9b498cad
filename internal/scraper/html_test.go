package scraper

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestParseReader_DecodesLatin1(t *testing.T) {
	t.Parallel()

	// "Jalapeño" (ISO-8859-1: ñ = 0xF1)
	body := append([]byte(`<html><head><meta charset="iso-8859-1"></head><body><h2 class="t">Jalape`), 0xF1, 'o')
	body = append(body, []byte(`</h2></body></html>`)...)

	doc, err := ParseReader(context.Background(), bytes.NewReader(body), "", "text/html")
	require.NoError(t, err)
	assert.Equal(t, "Jalapeño", doc.Find(".t").Text())
}

func TestParseReader_UsesContentTypeCharset(t *testing.T) {
	t.Parallel()

	body := append([]byte(`<p>Ca`), 0xF1, 'a')
	doc, err := ParseReader(context.Background(), bytes.NewReader(body), "", "text/html; charset=windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "Caña", doc.Find("p").Text())
}

func TestParseReader_SetsBaseURL(t *testing.T) {
	t.Parallel()

	doc, err := ParseReader(context.Background(), stringsReader("<p>x</p>"), "https://reventa.biomac.com.ar/categoria-producto/frutas/", "")
	require.NoError(t, err)
	require.NotNil(t, doc.Url)
	assert.Equal(t, "reventa.biomac.com.ar", doc.Url.Host)
}

func TestParseReader_InvalidInputs(t *testing.T) {
	t.Parallel()

	_, err := ParseReader(context.Background(), nil, "", "")
	assert.ErrorIs(t, err, ErrInputReaderNil)

	var typedNil *bytes.Reader
	_, err = ParseReader(context.Background(), typedNil, "", "")
	assert.ErrorIs(t, err, ErrInputReaderInvalidType)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ParseReader(ctx, stringsReader("<p>x</p>"), "", "")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
}

func TestIsHTMLContentType(t *testing.T) {
	t.Parallel()

	assert.True(t, isHTMLContentType("text/html; charset=UTF-8"))
	assert.True(t, isHTMLContentType("application/xhtml+xml"))
	assert.False(t, isHTMLContentType("application/json"))
	assert.False(t, isHTMLContentType(""))
	assert.False(t, isHTMLContentType(";;"))
}
