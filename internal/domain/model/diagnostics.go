package model

// DiagKind classifies a diagnostic entry.
type DiagKind string

// Diagnostic kinds. Row drops and ambiguous identities are fatal for
// the row or player they name; backfill gaps and rule-field misses are
// informational only.
const (
	DiagFetchFailed       DiagKind = "fetch_failed"
	DiagRowDropped        DiagKind = "row_dropped"
	DiagAmbiguousIdentity DiagKind = "ambiguous_identity"
	DiagBackfillGap       DiagKind = "backfill_gap"
	DiagRuleFieldMissing  DiagKind = "rule_field_missing"
)

// Diagnostic is one accumulated per-row or per-player problem. Runs
// return diagnostics alongside results; nothing is silently swallowed.
type Diagnostic struct {
	Kind     DiagKind
	Source   Source
	Table    TableType
	Season   int
	PlayerID PlayerID
	Player   string
	Field    string
	Err      error
}

// Diagnostics is an accumulating collection of per-row and per-player
// problems.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (d *Diagnostics) Add(diag Diagnostic) {
	*d = append(*d, diag)
}

// Merge appends all entries from other.
func (d *Diagnostics) Merge(other Diagnostics) {
	*d = append(*d, other...)
}

// OfKind returns the subset with the given kind.
func (d Diagnostics) OfKind(kind DiagKind) Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if diag.Kind == kind {
			out = append(out, diag)
		}
	}
	return out
}

// Count returns the number of entries with the given kind.
func (d Diagnostics) Count(kind DiagKind) int {
	n := 0
	for _, diag := range d {
		if diag.Kind == kind {
			n++
		}
	}
	return n
}
