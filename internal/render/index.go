package render

import (
	"fmt"
	"strings"

	"simlab/internal/domain"
)

// IndexPath is the site-relative path of the top page.
const IndexPath = "index.html"

// Index renders the top page linking to every generated article. It lives at the site root, so
// its links point into output/.
func Index(cat *domain.Catalog, opts Options) string {
	m := Meta{Description: "格安SIMを料金・速度・サポートで徹底比較。あなたにぴったりの格安SIMが見つかります。"}
	s := shell{
		docTitle: siteName + " | 格安SIM・ネット回線 比較サイト",
		h1:       "🔬 " + siteName + "<br>あなたにベストな格安SIMを見つけよう",
	}
	var b strings.Builder
	head(&b, s, m, opts)
	indexBody(&b, cat)
	foot(&b, s, opts)
	return b.String()
}

func indexBody(b *strings.Builder, cat *domain.Catalog) {
	b.WriteString("        <p>当サイトでは、人気の格安SIM・モバイル通信サービスを<strong>料金・速度・サポート</strong>の観点から比較し、あなたに最適なプランをご提案します。</p>\n")

	b.WriteString("\n        <h2>📖 はじめての方へ</h2>\n        <ul>\n")
	fmt.Fprintf(b, "          <li><a href=\"%s\"><strong>格安SIMとは？</strong> 大手キャリアとの違い・メリット・デメリットを解説</a></li>\n", GuidePath)
	fmt.Fprintf(b, "          <li><a href=\"%s\"><strong>格安SIM 全%d社 比較表</strong> — 料金・容量・機能を一覧で比較</a></li>\n", TablePath, len(cat.Plans))
	b.WriteString("        </ul>\n")

	b.WriteString("\n        <h2>📊 ランキング記事</h2>\n        <ul>\n")
	for _, r := range cat.Rankings {
		fmt.Fprintf(b, "          <li><a href=\"%s\">%s</a></li>\n", RankingPath(r), esc(r.Title))
	}
	b.WriteString("        </ul>\n")

	b.WriteString("\n        <h2>📝 個別レビュー</h2>\n        <ul>\n")
	for _, p := range cat.Plans {
		fmt.Fprintf(b, "          <li><a href=\"%s\">%s 評判・メリット・デメリット</a></li>\n", ReviewPath(p.ID), esc(p.Carrier))
	}
	b.WriteString("        </ul>\n")

	b.WriteString("\n        <h2>⚔️ 比較記事</h2>\n        <ul>\n")
	for _, pair := range cat.UniquePairs() {
		a, c, ok := cat.ResolvePair(pair)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "          <li><a href=\"%s\">%s vs %s</a></li>\n", ComparePath(pair), esc(a.Carrier), esc(c.Carrier))
	}
	b.WriteString("        </ul>")
}
