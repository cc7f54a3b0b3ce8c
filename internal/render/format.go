package render

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"simlab/internal/domain"
)

var jp = message.NewPrinter(language.Japanese)

func esc(s string) string { return templ.EscapeString(s) }

// href sanitizes a catalog URL for use in an attribute.
func href(u string) string { return esc(string(templ.URL(u))) }

// num groups thousands: 3278 -> "3,278".
func num(n int) string { return jp.Sprintf("%d", n) }

func yen(n int) string { return num(n) + "円" }

// gb drops a trailing ".0": 3 -> "3GB", 0.5 -> "0.5GB".
func gb(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "GB" }

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

func support(ok bool) string {
	if ok {
		return "✅ 対応"
	}
	return "❌ 非対応"
}

func initialCost(n int) string {
	if n == 0 {
		return "無料"
	}
	return yen(n)
}

// listPrice renders a monthly price, with "0円〜" for plans whose entry price is zero.
func listPrice(n int) string {
	if n > 0 {
		return yen(n)
	}
	return "0円〜"
}

func largeTier(p domain.PlanRecord) string {
	switch {
	case p.UnlimitedLarge():
		return "無制限"
	case p.HasLargeTier():
		return gb(p.DataGBLarge)
	}
	return "なし"
}

// dataRange is the base allowance, suffixed with the large tier when there is one.
func dataRange(p domain.PlanRecord) string {
	s := gb(p.DataGB)
	switch {
	case p.UnlimitedLarge():
		s += " 〜 無制限"
	case p.HasLargeTier():
		s += " 〜 " + gb(p.DataGBLarge)
	}
	return s
}

func largePlanPrice(p domain.PlanRecord) string {
	switch {
	case p.LargePlanPrice == domain.Unlimited:
		return yen(domain.UnlimitedPlanPrice)
	case p.LargePlanPrice > 0:
		return yen(p.LargePlanPrice)
	}
	return "-"
}

// headline is the short lead of a feature line: the text before "（", then before "で".
func headline(feature string) string {
	s, _, _ := strings.Cut(feature, "（")
	s, _, _ = strings.Cut(s, "で")
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstToken(s string) string {
	tok, _, _ := strings.Cut(s, " ")
	return tok
}

func rankLabel(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return strconv.Itoa(rank) + "位"
}

func rankClass(rank int) string {
	if rank >= 1 && rank <= 3 {
		return "rank-" + strconv.Itoa(rank)
	}
	return ""
}

// rollover prefers the explicit catalog flag and otherwise guesses from the drawbacks.
func rollover(p domain.PlanRecord) bool {
	if p.DataRollover != nil {
		return *p.DataRollover
	}
	for _, c := range p.Cons {
		if strings.Contains(c, "繰り越し不可") {
			return false
		}
	}
	return true
}

// storeSupport prefers the explicit catalog flag and otherwise guesses from the features.
func storeSupport(p domain.PlanRecord) bool {
	if p.StoreSupport != nil {
		return *p.StoreSupport
	}
	for _, f := range p.Features {
		if strings.Contains(f, "ショップ") || strings.Contains(f, "店舗") || strings.Contains(f, "対面") {
			return true
		}
	}
	return false
}
