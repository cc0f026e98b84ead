package scraper

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<!doctype html>
<html>
<head>
  <title>Fallback title</title>
  <meta property="og:title" content="Sea view apartment">
  <meta name="description" content="Plain description">
  <meta property="og:image" content="/img/1.jpg">
  <meta property="og:image" content="https://cdn.example.com/2.jpg">
  <meta property="og:image" content="/img/1.jpg">
  <meta property="og:image" content="javascript:alert(1)">
  <meta property="product:price:amount" content="125 000,50">
  <meta property="product:price:currency" content="eur">
</head>
<body></body>
</html>`

func TestParse_OpenGraph(t *testing.T) {
	base, _ := url.Parse("https://www.source.example.com/listings/42")

	page, err := Parse(strings.NewReader(listingPage), base)
	require.NoError(t, err)

	assert.Equal(t, "Sea view apartment", page.Title)
	assert.Equal(t, "Plain description", page.Description)
	assert.Equal(t, int64(125000), page.Price)
	assert.Equal(t, "EUR", page.Currency)
	assert.Equal(t, []string{
		"https://www.source.example.com/img/1.jpg",
		"https://cdn.example.com/2.jpg",
	}, page.Images)
}

func TestParse_FallsBackToDocumentTitle(t *testing.T) {
	base, _ := url.Parse("https://source.example.com/")

	page, err := Parse(strings.NewReader(`<html><head><title> Cottage </title></head></html>`), base)
	require.NoError(t, err)

	assert.Equal(t, "Cottage", page.Title)
	assert.Empty(t, page.Images)
	assert.Zero(t, page.Price)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int64{
		"125000":     125000,
		"125 000,50": 125000,
		"1,250,000":  1250000,
		"$ 99.99":    99,
		"on request": 0,
		"":           0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, parsePrice(raw), raw)
	}
}
