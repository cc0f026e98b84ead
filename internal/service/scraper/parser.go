package scraper

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is what the importer extracts from one listing page.
type Page struct {
	URL         string
	Title       string
	Description string
	Price       int64
	Currency    string
	Images      []string
}

var digits = regexp.MustCompile(`[^0-9]`)

// Parse reads Open Graph and product meta tags. The document <title> and the
// plain description meta tag are used when the Open Graph ones are missing.
// Relative image URLs are resolved against base.
func Parse(r io.Reader, base *url.URL) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	page := &Page{URL: base.String()}
	var docTitle, plainDescription string
	seen := make(map[string]bool)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if docTitle == "" && n.FirstChild != nil {
					docTitle = strings.TrimSpace(n.FirstChild.Data)
				}
			case atom.Meta:
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				if key == "" {
					key = strings.ToLower(attr(n, "itemprop"))
				}
				content := strings.TrimSpace(attr(n, "content"))

				switch key {
				case "og:title":
					page.Title = content
				case "og:description":
					page.Description = content
				case "description":
					plainDescription = content
				case "og:image", "og:image:url":
					if abs := resolve(base, content); abs != "" && !seen[abs] {
						seen[abs] = true
						page.Images = append(page.Images, abs)
					}
				case "product:price:amount", "og:price:amount", "price":
					if page.Price == 0 {
						page.Price = parsePrice(content)
					}
				case "product:price:currency", "og:price:currency", "pricecurrency":
					page.Currency = strings.ToUpper(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if page.Title == "" {
		page.Title = docTitle
	}
	if page.Description == "" {
		page.Description = plainDescription
	}
	return page, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(u)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	return abs.String()
}

// parsePrice keeps the integer part of a formatted amount such as "125 000,50".
func parsePrice(raw string) int64 {
	if i := strings.IndexAny(raw, ".,"); i >= 0 && len(raw)-i <= 3 {
		raw = raw[:i]
	}
	price, err := strconv.ParseInt(digits.ReplaceAllString(raw, ""), 10, 64)
	if err != nil {
		return 0
	}
	return price
}
