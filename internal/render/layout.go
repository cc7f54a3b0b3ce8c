package render

import (
	"fmt"
	"strings"
	"time"
)

const siteName = "格安SIMラボ"

// Options carries everything a page depends on besides the catalog. Fixing Date makes every page
// byte-identical across runs.
type Options struct {
	Date time.Time
}

func (o Options) Year() int { return o.Date.Year() }

// Stamp is the "last updated" date, e.g. 2026年10月18日.
func (o Options) Stamp() string { return o.Date.Format("2006年01月02日") }

type Meta struct {
	Title       string
	Description string
}

type Link struct {
	Text string
	Href string
}

// shell holds the bits that differ between article pages under output/ and the root index.
type shell struct {
	base     string // prefix from the page back to the site root
	docTitle string
	h1       string // raw HTML
	category string
	longFoot bool
}

func articleShell(m Meta) shell {
	return shell{
		base:     "../",
		docTitle: m.Title + " | " + siteName,
		h1:       esc(m.Title),
		category: "格安SIM比較",
		longFoot: true,
	}
}

func head(b *strings.Builder, s shell, m Meta, opts Options) {
	b.WriteString("<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(b, "  <title>%s</title>\n", esc(s.docTitle))
	fmt.Fprintf(b, "  <meta name=\"description\" content=\"%s\">\n", esc(m.Description))
	fmt.Fprintf(b, "  <link rel=\"stylesheet\" href=\"%sstatic/style.css\">\n", s.base)
	b.WriteString("</head>\n<body>\n")
	b.WriteString("  <header class=\"site-header\">\n    <div class=\"container\">\n")
	fmt.Fprintf(b, "      <a href=\"%sindex.html\" class=\"site-logo\">🔬 格安SIM<span>ラボ</span></a>\n", s.base)
	b.WriteString("      <nav class=\"site-nav\">\n")
	fmt.Fprintf(b, "        <a href=\"%sindex.html\">トップ</a>\n", s.base)
	fmt.Fprintf(b, "        <a href=\"%soutput/ranking_overall.html\">おすすめランキング</a>\n", s.base)
	b.WriteString("      </nav>\n    </div>\n  </header>\n")
	b.WriteString("  <main class=\"main-content\">\n    <div class=\"container\">\n")
	b.WriteString("      <div class=\"article-header\">\n")
	if s.category != "" {
		fmt.Fprintf(b, "        <span class=\"article-category\">%s</span>\n", s.category)
	}
	fmt.Fprintf(b, "        <h1>%s</h1>\n", s.h1)
	fmt.Fprintf(b, "        <p class=\"article-meta\">最終更新: <time>%s</time></p>\n", opts.Stamp())
	b.WriteString("      </div>\n      <div class=\"article-body\">\n")
}

func relatedList(b *strings.Builder, links []Link) {
	if len(links) == 0 {
		return
	}
	b.WriteString("<div class=\"related-articles\"><h3>📚 関連記事</h3><ul>")
	for _, l := range links {
		fmt.Fprintf(b, "<li><a href=\"%s\">👉 %s</a></li>", href(l.Href), esc(l.Text))
	}
	b.WriteString("</ul></div>")
}

func foot(b *strings.Builder, s shell, opts Options) {
	b.WriteString("\n      </div>\n    </div>\n  </main>\n")
	b.WriteString("  <footer class=\"site-footer\">\n    <div class=\"container\">\n")
	if s.longFoot {
		fmt.Fprintf(b, "      <p>&copy; %d %s - 格安SIM比較サイト</p>\n", opts.Year(), siteName)
		b.WriteString("      <p class=\"disclaimer\">※ 当サイトはアフィリエイトプログラムに参加しています。記事内のリンクから申し込みが行われた場合、当サイトに報酬が支払われることがあります。<br>※ 掲載情報は記事執筆時点のものです。最新情報は各公式サイトでご確認ください。</p>\n")
	} else {
		fmt.Fprintf(b, "      <p>&copy; %d %s</p>\n", opts.Year(), siteName)
		b.WriteString("      <p class=\"disclaimer\">※ 当サイトはアフィリエイトプログラムに参加しています。</p>\n")
	}
	b.WriteString("    </div>\n  </footer>\n</body>\n</html>")
}

// article wraps a body in the shared article header and footer.
func article(m Meta, opts Options, body string, related []Link) string {
	s := articleShell(m)
	var b strings.Builder
	head(&b, s, m, opts)
	b.WriteString(body)
	b.WriteString("\n        ")
	relatedList(&b, related)
	foot(&b, s, opts)
	return b.String()
}
