package render

import (
	"fmt"
	"strings"

	"simlab/internal/domain"
)

// RankingPath is the site-relative path of a ranking page.
func RankingPath(r domain.RankingDefinition) string { return "output/" + r.Slug() + ".html" }

// Ranking renders a ranking article. A plan's rank is its position in RankingOrder, so an id that
// does not resolve is left out without renumbering the plans after it.
func Ranking(r domain.RankingDefinition, cat *domain.Catalog, opts Options) string {
	m := Meta{
		Title:       fmt.Sprintf("%s【%d年最新版】", r.Title, opts.Year()),
		Description: r.Description,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n<p>%s</p>\n", esc(r.Description))
	b.WriteString("<p>本ランキングは<strong>料金・通信品質・サポート・独自機能</strong>を総合的に評価し、本当におすすめできる格安SIMだけを厳選しました。</p>\n")
	b.WriteString("<h2>🏆 ランキング</h2>")

	for i, id := range r.RankingOrder {
		p, ok := cat.Plan(id)
		if !ok {
			continue
		}
		rank := i + 1
		headerClass := "plan-card-header"
		if c := rankClass(rank); c != "" {
			headerClass += " " + c
		}
		carrier := esc(p.Carrier)
		fmt.Fprintf(&b, `
<div class="plan-card">
  <div class="%s">
    <span class="rank-badge">%s</span>
    <div>
      <h3 style="color:white;border:none;margin:0;padding:0">%s</h3>
      <span class="parent-label">%s回線</span>
    </div>
  </div>
  <div class="plan-card-body">
    <div class="plan-price">
      <span class="price-label">月額（税込）</span><br>
      <span class="price-value">%s</span>
      <span class="price-unit">円/月〜</span>
    </div>
    <div class="feature-tags">`, headerClass, rankLabel(rank), carrier, esc(p.Parent), num(p.MonthlyPrice))
		for j, f := range p.Features {
			if j == 3 {
				break
			}
			lead, _, _ := strings.Cut(f, "（")
			fmt.Fprintf(&b, `<span class="feature-tag">✅ %s</span>`, esc(truncate(lead, 20)))
		}
		fmt.Fprintf(&b, `</div>
    <p style="margin-top:12px"><strong>こんな人におすすめ：</strong>%s</p>
    <a href="%s" class="cta-button" rel="nofollow noopener" target="_blank">
      %sを申し込む
      <span class="sub-text">※ 公式サイトへ移動します</span>
    </a>
    <p style="text-align:center"><a href="%s">→ %sの詳細レビューを読む</a></p>
  </div>
</div>
`, esc(p.BestFor), href(p.AffiliateURL), carrier, reviewFile(p.ID), carrier)
	}

	return article(m, opts, b.String(), nil)
}
