package render

import (
	"fmt"
	"strings"

	"simlab/internal/domain"
)

// ReviewPath is the site-relative path of a plan's review page.
func ReviewPath(id string) string { return "output/review_" + id + ".html" }

func reviewFile(id string) string { return "review_" + id + ".html" }

// Review renders the single-plan review article.
func Review(p domain.PlanRecord, cat *domain.Catalog, opts Options) string {
	m := Meta{
		Title:       fmt.Sprintf("%sの評判・メリット・デメリットを徹底解説【%d年最新】", p.Carrier, opts.Year()),
		Description: fmt.Sprintf("%sの料金、速度、メリット・デメリットを詳しく解説。%sにおすすめ。", p.Carrier, p.BestFor),
	}
	carrier, parent, emoji := esc(p.Carrier), esc(p.Parent), esc(p.LogoEmoji)

	var b strings.Builder
	fmt.Fprintf(&b, "\n<p>%sは%sが提供する格安SIM/モバイル通信サービスです。</p>\n", carrier, parent)
	fmt.Fprintf(&b, "<p>本記事では、%sの<strong>料金プラン・通信速度・メリット・デメリット</strong>を余すことなく解説します。「自分に合っているかどうか」の判断材料にしてください。</p>\n", carrier)

	fmt.Fprintf(&b, "<h2>%s %sの料金プラン</h2>", emoji, carrier)
	fmt.Fprintf(&b, `
<div class="plan-card">
  <div class="plan-card-header">
    <span style="font-size:2rem">%s</span>
    <div>
      <h3 style="color:white;border:none;margin:0;padding:0">%s</h3>
      <span class="parent-label">%s回線</span>
    </div>
  </div>
  <div class="plan-card-body">
    <div class="plan-price">
      <span class="price-label">月額（税込）</span><br>
      <span class="price-value">%s</span>
      <span class="price-unit">円/月〜</span><br>
      <span class="price-label">(%s)</span>
    </div>
    <table class="spec-table">
      <tr><th>通信回線</th><td>%s</td></tr>
      <tr><th>データ容量</th><td>%s（大容量: %s）</td></tr>
      <tr><th>通話</th><td>%s</td></tr>
      <tr><th>最低利用期間</th><td>%s</td></tr>
      <tr><th>初期費用</th><td>%s</td></tr>
      <tr><th>eSIM対応</th><td>%s</td></tr>
      <tr><th>海外利用</th><td>%s</td></tr>
    </table>
  </div>
</div>
`, emoji, carrier, parent, num(p.MonthlyPrice), gb(p.DataGB),
		esc(p.Network), gb(p.DataGB), largeTier(p), esc(p.CallIncluded), esc(p.MinContract),
		initialCost(p.InitialCost), support(p.ESIM), support(p.Overseas))

	fmt.Fprintf(&b, "<h2>✅ %sのメリット</h2><ul>", carrier)
	for _, f := range p.Features {
		fmt.Fprintf(&b, "<li><strong>%s</strong> — %s</li>", esc(headline(f)), esc(f))
	}
	b.WriteString("</ul>")

	fmt.Fprintf(&b, "<h2>⚠️ %sのデメリット</h2><ul>", carrier)
	for _, c := range p.Cons {
		fmt.Fprintf(&b, "<li>%s</li>", esc(c))
	}
	b.WriteString("</ul>")

	fmt.Fprintf(&b, "<h2>🎯 %sはこんな人におすすめ</h2>", carrier)
	fmt.Fprintf(&b, `<div class="verdict-box"><h3 style="color:var(--primary);border:none">%s</h3></div>`, esc(p.BestFor))

	pixel := ""
	if p.AffiliatePixel != "" {
		pixel = fmt.Sprintf(`<img src="%s" height="1" width="1" border="0" style="position:absolute">`, href(p.AffiliatePixel))
	}
	fmt.Fprintf(&b, `
<a href="%s" class="cta-button" rel="nofollow noopener" target="_blank">
  %s%sの公式サイトはこちら
  <span class="sub-text">※ お申し込みは公式サイトから</span>
</a>
`, href(p.AffiliateURL), pixel, carrier)

	return article(m, opts, b.String(), reviewRelated(p, cat))
}

// reviewRelated links every comparison that mentions p and whose other side resolves.
func reviewRelated(p domain.PlanRecord, cat *domain.Catalog) []Link {
	var links []Link
	for _, pair := range cat.PairsFor(p.ID) {
		otherID, _ := pair.Mentions(p.ID)
		other, ok := cat.Plan(otherID)
		if !ok {
			continue
		}
		links = append(links, Link{
			Text: fmt.Sprintf("%s vs %s 徹底比較", p.Carrier, other.Carrier),
			Href: pair.Slug() + ".html",
		})
	}
	return append(links, overallRankingLink)
}

var overallRankingLink = Link{Text: "格安SIM おすすめランキング", Href: "ranking_overall.html"}
