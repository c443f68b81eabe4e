package crawler

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrEmptyArticle = errors.New("article has no text")

// Article is the readable part of one fetched page.
type Article struct {
	URL         string
	Title       string
	PublishedAt string
	Body        string
}

const publishLayout = "2006-01-02 15:04:05"

// publishZone is the zone article pages are written in.
var publishZone = time.FixedZone("CST", 8*60*60)

var (
	msgTitleRe   = regexp.MustCompile(`var\s+msg_title\s*=\s*['"](.*?)['"]`)
	ctRe         = regexp.MustCompile(`\bvar\s+ct\s*=\s*['"]?(\d{10})['"]?`)
	blankRunRe   = regexp.MustCompile(`[ \t\f\v\x{00a0}\x{3000}]+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
)

var (
	titleSelectors = []string{
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
	}
	publishSelectors = []string{
		`meta[property="article:published_time"]`,
		`meta[name="publish_time"]`,
	}
	bodySelectors = []string{"#js_content", "#img-content", "article", "body"}
)

// ExtractArticle pulls title, publish time and body text out of an article
// page. Body text keeps one line per block element.
func ExtractArticle(sourceURL string, page []byte) (Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return Article{}, err
	}
	raw := string(page)

	a := Article{
		URL:         strings.TrimSpace(sourceURL),
		Title:       extractTitle(doc, raw),
		PublishedAt: extractPublishedAt(doc, raw),
	}

	for _, sel := range bodySelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := blockText(node); text != "" {
			a.Body = text
			break
		}
	}
	if a.Body == "" {
		return a, ErrEmptyArticle
	}
	return a, nil
}

func extractTitle(doc *goquery.Document, raw string) string {
	if m := msgTitleRe.FindStringSubmatch(raw); m != nil {
		if t := cleanLine(m[1]); t != "" {
			return t
		}
	}
	for _, sel := range titleSelectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if t := cleanLine(v); t != "" {
				return t
			}
		}
	}
	if t := cleanLine(doc.Find("#activity-name").First().Text()); t != "" {
		return t
	}
	if t := cleanLine(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return cleanLine(doc.Find("h1").First().Text())
}

func extractPublishedAt(doc *goquery.Document, raw string) string {
	for _, sel := range publishSelectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if ts := normalizeTimestamp(v); ts != "" {
				return ts
			}
		}
	}
	if m := ctRe.FindStringSubmatch(raw); m != nil {
		sec, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return time.Unix(sec, 0).In(publishZone).Format(publishLayout)
		}
	}
	return ""
}

func normalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(publishZone).Format(publishLayout)
	}
	for _, layout := range []string{publishLayout, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, publishZone); err == nil {
			return t.Format(publishLayout)
		}
	}
	return ""
}

var (
	skippedTags = map[string]bool{"script": true, "style": true, "noscript": true}
	blockTags   = map[string]bool{
		"p": true, "div": true, "section": true, "article": true, "li": true, "tr": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}
)

func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return cleanText(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedTags[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		b.WriteByte('\n')
	}
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(newlineRunRe.ReplaceAllString(text, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = cleanLine(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func cleanLine(s string) string {
	return strings.TrimSpace(blankRunRe.ReplaceAllString(s, " "))
}
