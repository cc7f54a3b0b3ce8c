package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simlab/internal/domain"
	"simlab/internal/render"
)

var opts = render.Options{Date: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)}

func fixture() *domain.Catalog {
	c := &domain.Catalog{
		Plans: []domain.PlanRecord{
			{
				ID: "alpha", Carrier: "Alpha Mobile", Parent: "ドコモ", Network: "ドコモ回線 5G",
				MonthlyPrice: 980, DataGB: 3, CallIncluded: "30秒22円の従量課金で通話できます",
				MinContract: "なし", ESIM: true,
				Features:     []string{"月980円の低価格（税込）", "eSIM即日開通", "24時間チャット", "4つ目の特徴"},
				Cons:         []string{"余ったデータは繰り越し不可"},
				BestFor:      "ライトユーザー",
				AffiliateURL: "https://alpha.example.jp/?a=1&b=2",
				LogoEmoji:    "🅰️",
			},
			{
				ID: "beta", Carrier: "Beta SIM", Parent: "au", Network: "au回線",
				MonthlyPrice: 2970, DataGB: 20, DataGBLarge: domain.Unlimited, LargePlanPrice: domain.Unlimited,
				InitialCost: 3300, Overseas: true, FamilyDiscount: true,
				Features:       []string{"全国のショップで対面サポート"},
				Cons:           []string{"料金がやや高い"},
				BestFor:        "ヘビーユーザー",
				AffiliateURL:   "https://beta.example.jp/",
				AffiliatePixel: "https://px.example.jp/beta.gif",
			},
			{
				ID: "gamma", Carrier: "Gamma <Mobile>", Parent: "ソフトバンク",
				MonthlyPrice: 2970, DataGB: 20, AffiliateURL: "https://gamma.example.jp/",
			},
			{ID: "delta", Carrier: "Delta", MonthlyPrice: 500, DataGB: 1, AffiliateURL: "https://delta.example.jp/"},
		},
		Pairs: []domain.ComparisonPair{{"alpha", "beta"}, {"gamma", "alpha"}, {"alpha", "ghost"}, {"alpha", "beta"}},
		Rankings: []domain.RankingDefinition{
			{ID: "overall", Title: "総合ランキング", Description: "総合評価です", RankingOrder: []string{"beta", "ghost", "alpha", "gamma", "delta"}},
		},
	}
	c.Index()
	return c
}

func TestReview_ContainsPlanFacts(t *testing.T) {
	cat := fixture()
	p, _ := cat.Plan("alpha")
	html := render.Review(p, cat, opts)

	assert.Contains(t, html, "Alpha Mobileの評判・メリット・デメリットを徹底解説【2026年最新】 | 格安SIMラボ")
	assert.Contains(t, html, `<span class="price-value">980</span>`)
	assert.Contains(t, html, "<td>3GB（大容量: なし）</td>")
	assert.Contains(t, html, "<td>無料</td>")
	assert.Contains(t, html, "<td>✅ 対応</td>")
	assert.Contains(t, html, "<td>❌ 非対応</td>")
	for _, f := range p.Features {
		assert.Contains(t, html, f)
	}
	for _, c := range p.Cons {
		assert.Contains(t, html, "<li>"+c+"</li>")
	}
	assert.Contains(t, html, "<li><strong>月980円の低価格</strong> — 月980円の低価格（税込）</li>")
	assert.Contains(t, html, "最終更新: <time>2026年03月05日</time>")
	assert.Contains(t, html, `href="https://alpha.example.jp/?a=1&amp;b=2"`)
	assert.NotContains(t, html, "<img src=")
}

func TestReview_RelatedUsesRealPairFiles(t *testing.T) {
	cat := fixture()
	p, _ := cat.Plan("alpha")
	html := render.Review(p, cat, opts)

	assert.Contains(t, html, `<a href="compare_alpha_vs_beta.html">👉 Alpha Mobile vs Beta SIM 徹底比較</a>`)
	// alpha is the second member of this pair; the link must point at the page that exists.
	assert.Contains(t, html, `<a href="compare_gamma_vs_alpha.html">`)
	assert.NotContains(t, html, "compare_alpha_vs_gamma.html")
	assert.NotContains(t, html, "ghost")
	assert.Equal(t, 1, strings.Count(html, "compare_alpha_vs_beta.html"), "duplicate pairs link once")
	assert.Contains(t, html, `<a href="ranking_overall.html">👉 格安SIM おすすめランキング</a>`)
}

func TestReview_PixelAndEscaping(t *testing.T) {
	cat := fixture()
	beta, _ := cat.Plan("beta")
	html := render.Review(beta, cat, opts)
	assert.Contains(t, html, `<img src="https://px.example.jp/beta.gif" height="1" width="1"`)
	assert.Contains(t, html, "<td>20GB（大容量: 無制限）</td>")
	assert.Contains(t, html, "<td>3,300円</td>")

	gamma, _ := cat.Plan("gamma")
	html = render.Review(gamma, cat, opts)
	assert.Contains(t, html, "Gamma &lt;Mobile&gt;")
	assert.NotContains(t, html, "Gamma <Mobile>")
}

func TestComparison_CheaperPriceWins(t *testing.T) {
	cat := fixture()
	a, b, ok := cat.ResolvePair(domain.ComparisonPair{"alpha", "beta"})
	require.True(t, ok)
	html := render.Comparison(a, b, cat, opts)

	assert.Contains(t, html, `<tr><td>月額料金</td><td><span class="winner">980円 ✅</span></td><td>2,970円</td></tr>`)
	assert.Contains(t, html, "<strong>Alpha Mobileが1,990円安い</strong>")
	assert.Contains(t, html, "年間で23,880円の差")
	assert.Contains(t, html, "基本プランのデータ容量はBeta SIM（20GB）がAlpha Mobile（3GB）より多いです。")
	assert.Contains(t, html, `<a href="review_alpha.html">👉 Alpha Mobileの詳細レビュー</a>`)
	assert.Contains(t, html, `<a href="review_beta.html">👉 Beta SIMの詳細レビュー</a>`)

	// reversed order still marks the cheaper side
	html = render.Comparison(b, a, cat, opts)
	assert.Contains(t, html, `<tr><td>月額料金</td><td>2,970円</td><td><span class="winner">980円 ✅</span></td></tr>`)
}

func TestComparison_EqualPricesMarkNeither(t *testing.T) {
	cat := fixture()
	b, _ := cat.Plan("beta")
	g, _ := cat.Plan("gamma")
	html := render.Comparison(b, g, cat, opts)

	assert.NotContains(t, html, `class="winner"`)
	assert.Contains(t, html, "<tr><td>月額料金</td><td>2,970円</td><td>2,970円</td></tr>")
	assert.Contains(t, html, "月額料金は<strong>同額</strong>です。")
	assert.NotContains(t, html, "より多いです", "equal data allowances get no data verdict")
}

func TestRanking_OrderAndMarkers(t *testing.T) {
	cat := fixture()
	html := render.Ranking(cat.Rankings[0], cat, opts)

	// beta=1, ghost=2 (skipped), alpha=3, gamma=4, delta=5
	iBeta := strings.Index(html, "<h3 style=\"color:white;border:none;margin:0;padding:0\">Beta SIM</h3>")
	iAlpha := strings.Index(html, "<h3 style=\"color:white;border:none;margin:0;padding:0\">Alpha Mobile</h3>")
	iGamma := strings.Index(html, "Gamma &lt;Mobile&gt;</h3>")
	iDelta := strings.Index(html, "<h3 style=\"color:white;border:none;margin:0;padding:0\">Delta</h3>")
	require.True(t, iBeta > 0 && iAlpha > 0 && iGamma > 0 && iDelta > 0)
	assert.True(t, iBeta < iAlpha && iAlpha < iGamma && iGamma < iDelta)

	assert.Contains(t, html, `<div class="plan-card-header rank-1">`+"\n    "+`<span class="rank-badge">🥇</span>`)
	assert.Contains(t, html, `<div class="plan-card-header rank-3">`+"\n    "+`<span class="rank-badge">🥉</span>`)
	assert.NotContains(t, html, "🥈")
	assert.Contains(t, html, `<div class="plan-card-header">`+"\n    "+`<span class="rank-badge">4位</span>`)
	assert.Contains(t, html, `<span class="rank-badge">5位</span>`)

	assert.Contains(t, html, `<span class="feature-tag">✅ 月980円の低価格</span>`)
	assert.Contains(t, html, `<span class="feature-tag">✅ 24時間チャット</span>`)
	assert.NotContains(t, html, "4つ目の特徴", "at most three feature tags")
	assert.Contains(t, html, `<a href="review_alpha.html">→ Alpha Mobileの詳細レビューを読む</a>`)
	assert.Contains(t, html, "<title>総合ランキング【2026年最新版】 | 格安SIMラボ</title>")
	assert.NotContains(t, html, "related-articles")
}

func TestComparisonTable(t *testing.T) {
	cat := fixture()
	html := render.ComparisonTable(cat, opts)

	assert.Contains(t, html, "格安SIM 全4社 比較表【2026年最新】")
	// alpha: no large tier
	assert.Contains(t, html, "<td><strong style=\"color:var(--accent-blue)\">980円</strong></td>\n    <td>3GB</td>")
	assert.Contains(t, html, "<td>20GB 〜 無制限</td>")
	assert.Contains(t, html, "<td>ドコモ回線</td>")
	assert.Contains(t, html, `<td style="font-size:0.8rem">30秒22円の従量課金で通話で...</td>`)

	// price order: delta(500) < alpha(980) < beta(2970) == gamma(2970), stable
	iDelta := strings.Index(html, "min-width:36px\">1位</span>\n      <div>\n        <strong style=\"font-size:1.1rem\"> Delta</strong>")
	assert.Greater(t, iDelta, 0)
	cards := html[strings.Index(html, "月額料金が安い順"):]
	assert.Less(t, strings.Index(cards, "> Beta SIM</strong>"), strings.Index(cards, "> Gamma &lt;Mobile&gt;</strong>"))
	assert.Less(t, strings.Index(cards, "> Alpha Mobile</strong>"), strings.Index(cards, "> Beta SIM</strong>"))

	assert.Contains(t, html, "<tr><td><strong>Beta SIM</strong></td><td>20GB</td><td>無制限</td><td>2,970円</td><td>3,278円</td></tr>")
	assert.Contains(t, html, "<tr><td><strong>Alpha Mobile</strong></td><td>3GB</td><td>なし</td><td>980円</td><td>-</td></tr>")
	// eSIM, overseas, family, rollover, store
	assert.Contains(t, html, "<tr><td><strong>Alpha Mobile</strong></td><td>✅</td><td>❌</td><td>❌</td><td>❌</td><td>❌</td></tr>")
	assert.Contains(t, html, "<tr><td><strong>Beta SIM</strong></td><td>❌</td><td>✅</td><td>✅</td><td>✅</td><td>✅</td></tr>")
}

func TestGuide_RendersMarkdown(t *testing.T) {
	html := render.Guide(opts)
	assert.Contains(t, html, "<h2>📱 格安SIMとは？</h2>")
	assert.Contains(t, html, "<li><strong>月額料金が圧倒的に安い</strong> — 大手の半額〜1/10の料金で使えるプランも多数</li>")
	assert.Contains(t, html, "<strong>MVNO（仮想移動体通信事業者）</strong>")
	assert.Contains(t, html, `<table class="compare-table">`)
	assert.Contains(t, html, `<div class="verdict-box">`)
	assert.NotContains(t, html, "**")
	assert.Contains(t, html, `<a href="hikaku_table.html">👉 格安SIM 全プラン比較表</a>`)
}

func TestIndex_LinksEverything(t *testing.T) {
	cat := fixture()
	html := render.Index(cat, opts)

	assert.Contains(t, html, `<link rel="stylesheet" href="static/style.css">`)
	assert.Contains(t, html, `<a href="output/guide_kakuyasu.html">`)
	assert.Contains(t, html, "<strong>格安SIM 全4社 比較表</strong>")
	assert.Contains(t, html, `<li><a href="output/ranking_overall.html">総合ランキング</a></li>`)
	for _, p := range cat.Plans {
		assert.Contains(t, html, `<a href="output/review_`+p.ID+`.html">`)
	}
	assert.Contains(t, html, `<li><a href="output/compare_alpha_vs_beta.html">Alpha Mobile vs Beta SIM</a></li>`)
	assert.Contains(t, html, `output/compare_gamma_vs_alpha.html`)
	assert.NotContains(t, html, "ghost")
	assert.Equal(t, 1, strings.Count(html, "compare_alpha_vs_beta.html"))
	assert.Contains(t, html, "&copy; 2026 格安SIMラボ</p>")
	assert.NotContains(t, html, "article-category")
}

func TestBuildersAreDeterministic(t *testing.T) {
	cat := fixture()
	p, _ := cat.Plan("beta")
	assert.Equal(t, render.Review(p, cat, opts), render.Review(p, cat, opts))
	assert.Equal(t, render.ComparisonTable(cat, opts), render.ComparisonTable(cat, opts))
	assert.Equal(t, render.Index(cat, opts), render.Index(cat, opts))
}

func TestPagesHaveOneShell(t *testing.T) {
	cat := fixture()
	p, _ := cat.Plan("alpha")
	pages := map[string]string{
		"review": render.Review(p, cat, opts),
		"table":  render.ComparisonTable(cat, opts),
		"index":  render.Index(cat, opts),
	}
	for name, html := range pages {
		t.Run(name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>\n"))
			assert.True(t, strings.HasSuffix(html, "</footer>\n</body>\n</html>"))
			assert.Equal(t, 1, strings.Count(html, "<head>"))
			assert.Equal(t, 1, strings.Count(html, "<footer"))
			assert.Less(t, strings.Index(html, "</header>"), strings.Index(html, "<main"))
			assert.Less(t, strings.Index(html, "</main>"), strings.Index(html, "<footer"))
		})
	}

	review := pages["review"]
	assert.Less(t, strings.Index(review, "article-body"), strings.Index(review, "related-articles"))
	assert.Less(t, strings.Index(review, "related-articles"), strings.Index(review, "</main>"))
}
