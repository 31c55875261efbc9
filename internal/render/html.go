package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxSnippetRunes  = 280
)

// PageSummary is the short view of an HTML payload.
type PageSummary struct {
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Bytes   int    `json:"bytes" yaml:"bytes"`
}

func summarizeHTML(body []byte) (PageSummary, error) {
	sum := PageSummary{Bytes: len(body)}
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return sum, fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	metaContent := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	sum.Title = firstNonEmpty(
		strings.TrimSpace(doc.Find("title").First().Text()),
		metaContent(`meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("h1").First().Text()),
	)
	sum.Snippet = truncate(collapseSpace(firstNonEmpty(
		metaContent(`meta[name="description"]`),
		metaContent(`meta[property="og:description"]`),
		doc.Find("body").Text(),
	)), maxSnippetRunes)
	return sum, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
