// Package scoring computes fantasy point totals from merged season
// records under a configurable weight table.
package scoring

import (
	"github.com/grdn/statfuse/internal/domain/model"
)

// Weight is one scoring rule entry: points per unit of a stat field for
// rate stats, or points per occurrence for event fields. Tier buckets
// (e.g. made_40_49) are ordinary fields with their own weight; the
// calculator does not special-case field names.
type Weight struct {
	Field  string
	Points float64
}

// Rule is an ordered weight table. Order carries no scoring semantics
// (the total is a commutative sum); it is kept for stable diagnostics
// and column output.
type Rule []Weight

// DefaultRule is the standard Yahoo 0-PPR league scoring the original
// data set shipped with.
func DefaultRule() Rule {
	return Rule{
		{"pass_yards", 1.0 / 25},
		{"pass_td", 4},
		{"interceptions", -1},
		{"rush_yards", 1.0 / 10},
		{"rush_td", 6},
		{"rec_yards", 1.0 / 10},
		{"receptions", 0},
		{"rec_td", 6},
		{"two_pt_conversions", 2},
		{"fumbles_lost", -2},
		{"offensive_fumble_return_td", 6},
		{"return_yards", 1.0 / 25},
		{"return_td", 6},
	}
}

// Combine returns a rule whose weights are the field-wise sum of r and
// other, preserving r's order for shared fields.
func (r Rule) Combine(other Rule) Rule {
	out := make(Rule, 0, len(r)+len(other))
	index := make(map[string]int)
	for _, w := range r {
		index[w.Field] = len(out)
		out = append(out, w)
	}
	for _, w := range other {
		if i, ok := index[w.Field]; ok {
			out[i].Points += w.Points
			continue
		}
		index[w.Field] = len(out)
		out = append(out, w)
	}
	return out
}

// Override returns a copy of r with the given per-field weights
// replacing the defaults; fields not named keep their weight, and
// fields unknown to r are appended.
func (r Rule) Override(settings map[string]float64) Rule {
	out := make(Rule, len(r))
	copy(out, r)
	seen := make(map[string]bool, len(out))
	for i := range out {
		seen[out[i].Field] = true
		if pts, ok := settings[out[i].Field]; ok {
			out[i].Points = pts
		}
	}
	for field, pts := range settings {
		if !seen[field] {
			out = append(out, Weight{Field: field, Points: pts})
		}
	}
	return out
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithRule sets the scoring rule. Defaults to DefaultRule.
func WithRule(r Rule) Option {
	return func(c *Calculator) {
		if len(r) > 0 {
			c.rule = r
		}
	}
}

// Calculator applies a weight table to merged records. Scoring is a
// pure function of (record, rule): same inputs always yield the same
// total.
type Calculator struct {
	rule Rule
}

// NewCalculator creates a Calculator with configuration options.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{rule: DefaultRule()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rule returns the calculator's weight table.
func (c *Calculator) Rule() Rule { return c.rule }

// Score sums weight times value over the rule. An absent field scores
// zero. A field the merged record does not carry at all also scores
// zero but is reported as a RuleFieldMissing diagnostic — a rule entry
// is never silently dropped.
func (c *Calculator) Score(rec model.MergedSeasonRecord) (float64, model.Diagnostics) {
	var total float64
	var diags model.Diagnostics
	for _, w := range c.rule {
		v, ok := rec.Fields[w.Field]
		if !ok {
			diags.Add(model.Diagnostic{
				Kind:     model.DiagRuleFieldMissing,
				Season:   rec.Season,
				PlayerID: rec.PlayerID,
				Player:   rec.Name,
				Field:    w.Field,
			})
			continue
		}
		if !v.Present {
			continue
		}
		total += w.Points * v.Number
	}
	return total, diags
}
