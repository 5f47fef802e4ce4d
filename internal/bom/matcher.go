package bom

import (
	"fmt"
	"strings"

	"bommatch-service/internal/catalog"
)

// Matcher augments BOM rows with parsed fields, a matched product and a
// confidence tier. Pure computation over an immutable catalog index:
// no I/O, deterministic, and it never fails a whole batch over bad rows.
type Matcher struct {
	idx            *catalog.Index
	looseThreshold float64
}

const defaultLooseThreshold = 0.84

func NewMatcher(idx *catalog.Index, looseThreshold float64) *Matcher {
	if looseThreshold <= 0 || looseThreshold > 1 {
		looseThreshold = defaultLooseThreshold
	}
	return &Matcher{idx: idx, looseThreshold: looseThreshold}
}

// Run matches every row. Row order and indexes are preserved.
func (m *Matcher) Run(inputs []RowInput) []Row {
	out := make([]Row, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, m.MatchRow(in))
	}
	return out
}

// MatchRow applies the tiered decision ladder:
//
//  1. exact match on family+standard+grade+dimension  -> high
//  2. family+dimension, then family+grade             -> medium
//  3. family only, exactly one loose dimension hit    -> low
//  4. otherwise, or when family is unrecognized       -> none
//
// Validation problems are recorded on the row, never raised.
func (m *Matcher) MatchRow(in RowInput) Row {
	row := Row{Index: in.Index, Raw: in, MatchConfidence: ConfidenceNone}

	m.validate(in, &row)
	m.parse(in, &row)

	if row.ParsedFamily == "" {
		row.MatchReason = "family missing or unrecognized"
		return row
	}

	fam := row.ParsedFamily
	dim := row.ParsedDimension
	grade := row.ParsedGrade
	std := row.ParsedStandard

	// tier 1: all four fields exact
	if std != "" && grade != "" && dim != "" {
		if ps := m.idx.Exact(catalog.Criteria{Family: fam, Standard: std, Grade: grade, Dimension: dim}); len(ps) > 0 {
			row.MatchedProductID = ps[0].ID
			row.MatchConfidence = ConfidenceHigh
			row.MatchReason = "exact match on family+standard+grade+dimension"
			return row
		}
	}

	// tier 2: relax to family+dimension, then family+grade
	if dim != "" {
		if ps := m.idx.FamilyDimension(fam, dim); len(ps) > 0 {
			row.MatchedProductID = ps[0].ID
			row.MatchConfidence = ConfidenceMedium
			row.MatchReason = mediumReason("dimension", grade, std, len(ps))
			return row
		}
	}
	if grade != "" {
		if ps := m.idx.FamilyGrade(fam, grade); len(ps) > 0 {
			row.MatchedProductID = ps[0].ID
			row.MatchConfidence = ConfidenceMedium
			row.MatchReason = mediumReason("grade", grade, std, len(ps))
			return row
		}
	}

	// tier 3: family only, loose dimension comparison
	if dim != "" {
		loose := m.looseCandidates(fam, dim)
		switch len(loose) {
		case 1:
			row.MatchedProductID = loose[0].ID
			row.MatchConfidence = ConfidenceLow
			row.MatchReason = fmt.Sprintf("single loose dimension match %q in family %s", loose[0].DimensionLabel, fam)
			return row
		case 0:
			row.MatchReason = "no catalog product in family matches the dimension"
		default:
			row.MatchReason = fmt.Sprintf("ambiguous: %d loose dimension candidates in family %s", len(loose), fam)
		}
		return row
	}

	row.MatchReason = "only family recognized; dimension required for matching"
	return row
}

func (m *Matcher) validate(in RowInput, row *Row) {
	q, ok := ParseQuantity(in.Quantity)
	if !ok || q <= 0 {
		row.Errors = append(row.Errors, "invalid quantity")
	} else {
		row.Quantity = q
	}

	switch u, ok := ParseUnit(in.Unit); {
	case strings.TrimSpace(in.Unit) == "":
		row.Unit = UnitBuc
		row.Warnings = append(row.Warnings, "unit defaulted")
	case ok:
		row.Unit = u
	default:
		row.Unit = UnitBuc
		row.Warnings = append(row.Warnings, fmt.Sprintf("unknown unit %q, defaulted to buc", strings.TrimSpace(in.Unit)))
	}

	if l, ok := ParseQuantity(in.Length); ok && l > 0 {
		row.LengthM = l
	}
}

func (m *Matcher) parse(in RowInput, row *Row) {
	if f, ok := NormalizeFamily(in.Family); ok {
		row.ParsedFamily = f
	}
	if d, ok := NormalizeDimension(in.Dimension); ok {
		row.ParsedDimension = d
	}
	if g, known := NormalizeGrade(in.Grade); g != "" {
		row.ParsedGrade = g
		if !known {
			row.Warnings = append(row.Warnings, fmt.Sprintf("unknown grade %q", g))
		}
	}
	if s, known := NormalizeStandard(in.Standard); s != "" {
		row.ParsedStandard = s
		if !known {
			row.Warnings = append(row.Warnings, fmt.Sprintf("unknown standard %q", s))
		}
	}
}

func mediumReason(driver, grade, std string, candidates int) string {
	var missing []string
	if std == "" {
		missing = append(missing, "standard")
	}
	if grade == "" && driver != "grade" {
		missing = append(missing, "grade")
	}
	reason := "matched on family+" + driver
	if len(missing) > 0 {
		reason += "; " + strings.Join(missing, " and ") + " not specified"
	}
	if candidates > 1 {
		reason += fmt.Sprintf("; %d candidates share the key", candidates)
	}
	return reason
}

// looseCandidates scans one family bucket for products whose dimension
// loosely agrees with dim: the row's numeric sequences appear in order in
// the product's, or the canonical tokens are near-identical.
func (m *Matcher) looseCandidates(fam catalog.Family, dim string) []catalog.Product {
	var out []catalog.Product
	nums := numericSeq(dim)
	for _, p := range m.idx.Family(fam) {
		if p.Dimension == "" {
			continue
		}
		if len(nums) > 0 && isSubsequence(nums, numericSeq(p.Dimension)) {
			out = append(out, p)
			continue
		}
		if similarity(dim, p.Dimension) >= m.looseThreshold {
			out = append(out, p)
		}
	}
	return out
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, v := range seq {
		if i < len(sub) && sub[i] == v {
			i++
		}
	}
	return i == len(sub)
}
