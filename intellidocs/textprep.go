package intellidocs

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// SourceFormatHTML marks format-text input that is pasted HTML
const SourceFormatHTML = "html"

var ignoreHTMLTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"nav":      true,
	"form":     true,
	"iframe":   true,
}

var ignoreAttributes = regexp.MustCompile(`(?i)comment|footnote|masthead|sponsor|ad-break|popup|social|newsletter`)

// HTMLToMarkdown strips page chrome from an HTML fragment and converts the rest to Markdown
func HTMLToMarkdown(raw string) (string, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	cleanHTML(doc)
	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

func cleanHTML(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && (ignoreHTMLTags[c.Data] || hasIgnoredAttribute(c)) {
			n.RemoveChild(c)
			continue
		}
		cleanHTML(c)
	}
}

func hasIgnoredAttribute(n *html.Node) bool {
	for _, attr := range n.Attr {
		if (attr.Key == "id" || attr.Key == "class") && ignoreAttributes.MatchString(attr.Val) {
			return true
		}
	}
	return false
}
