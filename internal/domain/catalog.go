package domain

// Catalog is the whole input document of a generation run. It is read-only once loaded.
type Catalog struct {
	Plans    []PlanRecord        `json:"sim_plans" validate:"required,unique=ID,dive"`
	Pairs    []ComparisonPair    `json:"compare_pairs"`
	Rankings []RankingDefinition `json:"ranking_articles" validate:"unique=ID,dive"`

	byID map[string]int
}

// Index builds the id lookup table. Loaders call it once after decoding; Plan falls back to a
// linear scan when it was never called.
func (c *Catalog) Index() {
	c.byID = make(map[string]int, len(c.Plans))
	for i, p := range c.Plans {
		c.byID[p.ID] = i
	}
}

// Plan looks a plan up by identifier.
func (c *Catalog) Plan(id string) (PlanRecord, bool) {
	if c.byID != nil {
		i, ok := c.byID[id]
		if !ok {
			return PlanRecord{}, false
		}
		return c.Plans[i], true
	}
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return PlanRecord{}, false
}

// ResolvePair returns both plans of a pair; ok is false when either side is unknown.
func (c *Catalog) ResolvePair(pair ComparisonPair) (a, b PlanRecord, ok bool) {
	a, okA := c.Plan(pair.A())
	b, okB := c.Plan(pair.B())
	return a, b, okA && okB
}

// PairsFor returns the distinct comparison pairs mentioning id, in catalog order.
func (c *Catalog) PairsFor(id string) []ComparisonPair {
	var out []ComparisonPair
	for _, pair := range c.UniquePairs() {
		if _, ok := pair.Mentions(id); ok {
			out = append(out, pair)
		}
	}
	return out
}

// UniquePairs drops repeated ordered pairs, keeping the first occurrence.
func (c *Catalog) UniquePairs() []ComparisonPair {
	seen := make(map[ComparisonPair]struct{}, len(c.Pairs))
	out := make([]ComparisonPair, 0, len(c.Pairs))
	for _, pair := range c.Pairs {
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}
