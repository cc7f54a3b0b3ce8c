package render

import (
	"fmt"
	"strings"

	"simlab/internal/domain"
)

// ComparePath is the site-relative path of a pair's comparison page.
func ComparePath(pair domain.ComparisonPair) string { return "output/" + pair.Slug() + ".html" }

// priceCells marks the strictly cheaper price as the winner; equal prices mark neither.
func priceCells(a, b int) (string, string) {
	switch {
	case a < b:
		return fmt.Sprintf(`<span class="winner">%s ✅</span>`, yen(a)), yen(b)
	case b < a:
		return yen(a), fmt.Sprintf(`<span class="winner">%s ✅</span>`, yen(b))
	}
	return yen(a), yen(b)
}

// Comparison renders the head-to-head article for two resolved plans.
func Comparison(a, b domain.PlanRecord, cat *domain.Catalog, opts Options) string {
	m := Meta{
		Title:       fmt.Sprintf("%s vs %sを徹底比較！どっちがおすすめ？【%d年】", a.Carrier, b.Carrier, opts.Year()),
		Description: fmt.Sprintf("%sと%sの料金・速度・特徴を比較。あなたに合うのはどっち？", a.Carrier, b.Carrier),
	}
	ca, cb := esc(a.Carrier), esc(b.Carrier)

	var s strings.Builder
	fmt.Fprintf(&s, "\n<p>格安SIM選びで迷う人が多い「<strong>%s</strong>」と「<strong>%s</strong>」。</p>\n", ca, cb)
	s.WriteString("<p>どちらも人気のサービスですが、実はターゲットが大きく異なります。本記事では<strong>料金・データ容量・通話・サポート</strong>を一つずつ比較し、「あなたはどっちを選ぶべきか」を結論づけます。</p>\n")

	s.WriteString("<h2>📊 スペック比較表</h2>")
	pa, pb := priceCells(a.MonthlyPrice, b.MonthlyPrice)
	fmt.Fprintf(&s, `
<table class="compare-table">
  <tr><th>比較項目</th><th>%s</th><th>%s</th></tr>
  <tr><td>月額料金</td><td>%s</td><td>%s</td></tr>
  <tr><td>データ容量</td><td>%s</td><td>%s</td></tr>
  <tr><td>通信回線</td><td>%s回線</td><td>%s回線</td></tr>
  <tr><td>通話</td><td>%s</td><td>%s</td></tr>
  <tr><td>eSIM</td><td>%s</td><td>%s</td></tr>
  <tr><td>海外利用</td><td>%s</td><td>%s</td></tr>
  <tr><td>初期費用</td><td>%s</td><td>%s</td></tr>
</table>
`, ca, cb, pa, pb, gb(a.DataGB), gb(b.DataGB), esc(a.Parent), esc(b.Parent),
		esc(a.CallIncluded), esc(b.CallIncluded), mark(a.ESIM), mark(b.ESIM),
		mark(a.Overseas), mark(b.Overseas), initialCost(a.InitialCost), initialCost(b.InitialCost))

	s.WriteString("<h2>🔍 各項目を詳しく比較</h2>")
	s.WriteString("<h3>💰 料金の比較</h3>")
	cheap, dear := a, b
	if b.MonthlyPrice < a.MonthlyPrice {
		cheap, dear = b, a
	}
	if a.MonthlyPrice == b.MonthlyPrice {
		s.WriteString("<p>月額料金は<strong>同額</strong>です。料金以外の要素で選びましょう。</p>")
	} else {
		diff := dear.MonthlyPrice - cheap.MonthlyPrice
		c := esc(cheap.Carrier)
		fmt.Fprintf(&s, "<p>月額料金は<strong>%sが%s安い</strong>です。年間で%sの差になります。安さ重視なら%sが有利です。</p>",
			c, yen(diff), yen(diff*12), c)
	}

	s.WriteString("<h3>📶 データ容量の比較</h3>")
	big, small := a, b
	if b.DataGB > a.DataGB {
		big, small = b, a
	}
	if a.DataGB != b.DataGB {
		fmt.Fprintf(&s, "<p>基本プランのデータ容量は%s（%s）が%s（%s）より多いです。</p>",
			esc(big.Carrier), gb(big.DataGB), esc(small.Carrier), gb(small.DataGB))
	}

	s.WriteString("<h2>🏆 結論：どっちを選ぶべき？</h2>")
	for _, p := range []domain.PlanRecord{a, b} {
		fmt.Fprintf(&s, `
<div class="verdict-box">
  <h3 style="color:var(--primary);border:none">%sがおすすめな人</h3>
  <p>%s</p>
</div>`, esc(p.Carrier), esc(p.BestFor))
	}
	s.WriteString("\n")
	for _, p := range []domain.PlanRecord{a, b} {
		fmt.Fprintf(&s, `
<a href="%s" class="cta-button" rel="nofollow noopener" target="_blank">
  %sの公式サイトはこちら
</a>`, href(p.AffiliateURL), esc(p.Carrier))
	}
	s.WriteString("\n")

	related := []Link{
		{Text: a.Carrier + "の詳細レビュー", Href: reviewFile(a.ID)},
		{Text: b.Carrier + "の詳細レビュー", Href: reviewFile(b.ID)},
		overallRankingLink,
	}
	return article(m, opts, s.String(), related)
}
