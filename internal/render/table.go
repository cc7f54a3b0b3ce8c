package render

import (
	"fmt"
	"slices"
	"strings"

	"simlab/internal/domain"
)

// TablePath is the site-relative path of the all-plans comparison table.
const TablePath = "output/hikaku_table.html"

// ComparisonTable renders every plan side by side: overview, price order, data tiers, features.
func ComparisonTable(cat *domain.Catalog, opts Options) string {
	plans := cat.Plans
	n := len(plans)
	m := Meta{
		Title:       fmt.Sprintf("格安SIM 全%d社 比較表【%d年最新】料金・データ容量・特徴を一覧で比較", n, opts.Year()),
		Description: fmt.Sprintf("主要格安SIM %d社の料金・データ容量・通信速度・特徴を一覧表で比較。ひと目でわかる比較表で最適な格安SIMが見つかります。", n),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n<p>「結局どの格安SIMが自分に合っているの？」という方のために、主要<strong>%d社の格安SIMを一覧表</strong>で比較しました。</p>\n", n)
	b.WriteString("<p>まずは料金やデータ量をざっと見比べて、気になるサービスの詳細レビューへ進んでください。</p>\n")

	b.WriteString(`
<h2>📊 格安SIM 比較一覧表</h2>
<div style="overflow-x:auto; margin: 24px 0;">
<table class="compare-table" style="min-width:800px;">
  <tr>
    <th>格安SIM</th>
    <th>月額料金</th>
    <th>データ容量</th>
    <th>回線</th>
    <th>通話</th>
    <th>eSIM</th>
    <th>初期費用</th>
    <th>詳細</th>
  </tr>
`)
	for _, p := range plans {
		fmt.Fprintf(&b, `  <tr>
    <td><strong>%s %s</strong><br><span style="font-size:0.75rem;color:var(--text-muted)">%s</span></td>
    <td><strong style="color:var(--accent-blue)">%s</strong></td>
    <td>%s</td>
    <td>%s</td>
    <td style="font-size:0.8rem">%s...</td>
    <td>%s</td>
    <td>%s</td>
    <td><a href="%s" style="font-weight:700">詳細→</a></td>
  </tr>
`, esc(p.LogoEmoji), esc(p.Carrier), esc(p.Parent), listPrice(p.MonthlyPrice), dataRange(p),
			esc(firstToken(p.Network)), esc(truncate(p.CallIncluded, 15)), mark(p.ESIM),
			initialCost(p.InitialCost), reviewFile(p.ID))
	}
	b.WriteString("</table>\n</div>\n")

	byPrice := slices.Clone(plans)
	slices.SortStableFunc(byPrice, func(x, y domain.PlanRecord) int { return x.MonthlyPrice - y.MonthlyPrice })
	b.WriteString("\n<h2>💰 月額料金が安い順</h2>\n<p>最安プランの月額料金順に並べると、以下のようになります。</p>\n")
	for i, p := range byPrice {
		fmt.Fprintf(&b, `
<div class="plan-card" style="margin:12px 0">
  <div class="plan-card-body" style="padding:16px 24px;display:flex;align-items:center;justify-content:space-between;flex-wrap:wrap;gap:12px">
    <div style="display:flex;align-items:center;gap:12px">
      <span style="font-size:1.3rem;font-weight:900;color:var(--text-muted);min-width:36px">%d位</span>
      <div>
        <strong style="font-size:1.1rem">%s %s</strong>
        <span style="color:var(--text-muted);font-size:0.85rem;margin-left:8px">%s</span>
      </div>
    </div>
    <div style="display:flex;align-items:center;gap:16px">
      <span style="font-size:1.4rem;font-weight:900;color:var(--accent-blue)">%s</span>
      <span style="color:var(--text-muted);font-size:0.85rem">/ %s</span>
      <a href="%s" style="font-weight:700;font-size:0.85rem">詳細→</a>
    </div>
  </div>
</div>
`, i+1, esc(p.LogoEmoji), esc(p.Carrier), esc(p.Parent), listPrice(p.MonthlyPrice), gb(p.DataGB), reviewFile(p.ID))
	}

	b.WriteString(`
<h2>📶 データ容量で比較</h2>
<table class="compare-table">
  <tr><th>格安SIM</th><th>最安プラン</th><th>最大プラン</th><th>月額（最安）</th><th>月額（最大）</th></tr>
`)
	for _, p := range plans {
		fmt.Fprintf(&b, "  <tr><td><strong>%s</strong></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			esc(p.Carrier), gb(p.DataGB), largeTier(p), yen(p.MonthlyPrice), largePlanPrice(p))
	}
	b.WriteString("</table>\n")

	b.WriteString(`
<h2>🔧 機能比較</h2>
<table class="compare-table">
  <tr><th>格安SIM</th><th>eSIM</th><th>海外利用</th><th>家族割</th><th>データ繰越</th><th>店舗サポート</th></tr>
`)
	for _, p := range plans {
		fmt.Fprintf(&b, "  <tr><td><strong>%s</strong></td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			esc(p.Carrier), mark(p.ESIM), mark(p.Overseas), mark(p.FamilyDiscount), mark(rollover(p)), mark(storeSupport(p)))
	}
	b.WriteString("</table>\n")

	b.WriteString(`
<a href="ranking_overall.html" class="cta-button">
  おすすめ格安SIMランキングを見る
  <span class="sub-text">→ 総合評価で選ぶならこちら</span>
</a>
`)

	related := []Link{
		{Text: "格安SIMとは？初心者向けガイド", Href: "guide_kakuyasu.html"},
		overallRankingLink,
		{Text: "とにかく安い格安SIM ランキング", Href: "ranking_cheapest.html"},
	}
	return article(m, opts, b.String(), related)
}
