package domain

import "fmt"

// Data allowance and price sentinels used by the catalog.
const (
	Unlimited = -1 // data_gb_large: no cap
	NoTier    = 0  // data_gb_large / large_plan_price: no large tier

	// UnlimitedPlanPrice is shown when large_plan_price carries the Unlimited sentinel.
	UnlimitedPlanPrice = 3278
)

type PlanRecord struct {
	ID             string   `json:"id" validate:"required"`
	Carrier        string   `json:"carrier" validate:"required"`
	Parent         string   `json:"parent"`
	Network        string   `json:"network"`
	MonthlyPrice   int      `json:"monthly_price" validate:"min=0"`
	DataGB         float64  `json:"data_gb" validate:"min=0"`
	DataGBLarge    float64  `json:"data_gb_large" validate:"min=-1"`
	LargePlanPrice int      `json:"large_plan_price" validate:"min=-1"`
	CallIncluded   string   `json:"call_included"`
	MinContract    string   `json:"min_contract"`
	InitialCost    int      `json:"initial_cost" validate:"min=0"`
	ESIM           bool     `json:"esim"`
	Overseas       bool     `json:"overseas"`
	FamilyDiscount bool     `json:"family_discount"`
	DataRollover   *bool    `json:"data_rollover,omitempty"`
	StoreSupport   *bool    `json:"store_support,omitempty"`
	Features       []string `json:"features"`
	Cons           []string `json:"cons"`
	BestFor        string   `json:"best_for"`
	AffiliateURL   string   `json:"affiliate_url" validate:"required,url"`
	AffiliatePixel string   `json:"affiliate_pixel,omitempty" validate:"omitempty,url"`
	LogoEmoji      string   `json:"logo_emoji"`
}

// HasLargeTier reports whether the plan advertises a tier above the base allowance.
func (p PlanRecord) HasLargeTier() bool { return p.DataGBLarge == Unlimited || p.DataGBLarge > 0 }

// UnlimitedLarge reports whether the large tier is uncapped.
func (p PlanRecord) UnlimitedLarge() bool { return p.DataGBLarge == Unlimited }

// ComparisonPair is encoded as a two-element array: ["a", "b"].
type ComparisonPair [2]string

func (c ComparisonPair) A() string { return c[0] }
func (c ComparisonPair) B() string { return c[1] }

// Slug is the file stem of the pair's comparison page.
func (c ComparisonPair) Slug() string { return fmt.Sprintf("compare_%s_vs_%s", c[0], c[1]) }

// Mentions reports whether id is either side of the pair and returns the other side.
func (c ComparisonPair) Mentions(id string) (other string, ok bool) {
	switch id {
	case c[0]:
		return c[1], true
	case c[1]:
		return c[0], true
	}
	return "", false
}

type RankingDefinition struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	RankingOrder []string `json:"ranking_order"`
}

// Slug is the file stem of the ranking page.
func (r RankingDefinition) Slug() string { return "ranking_" + r.ID }
