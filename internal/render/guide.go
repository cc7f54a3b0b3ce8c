package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// GuidePath is the site-relative path of the beginner's guide.
const GuidePath = "output/guide_kakuyasu.html"

//go:embed guide.md
var guideSource []byte

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// guideBody is converted once; the source is fixed at build time.
var guideBody = sync.OnceValue(func() string {
	var buf bytes.Buffer
	if err := md.Convert(guideSource, &buf); err != nil {
		panic(fmt.Sprintf("render: guide markdown: %v", err))
	}
	return buf.String()
})

// Guide renders the "what is a budget SIM" article. It does not depend on the catalog.
func Guide(opts Options) string {
	m := Meta{
		Title:       fmt.Sprintf("格安SIMとは？大手キャリアとの違い・メリット・デメリットを初心者向けに解説【%d年】", opts.Year()),
		Description: "格安SIMとは何か？ドコモ・au・ソフトバンクとの違い、メリット・デメリットを初心者にもわかりやすく解説します。",
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(guideBody())
	b.WriteString(`
<a href="ranking_overall.html" class="cta-button">
  おすすめ格安SIMランキングを見る
  <span class="sub-text">→ あなたにぴったりの格安SIMを探す</span>
</a>
`)

	related := []Link{
		overallRankingLink,
		{Text: "とにかく安い格安SIM ランキング", Href: "ranking_cheapest.html"},
		{Text: "格安SIM 全プラン比較表", Href: "hikaku_table.html"},
	}
	return article(m, opts, b.String(), related)
}
