package bom

import (
	"strings"
	"testing"

	"bommatch-service/internal/catalog"
)

func testIndex(products ...catalog.Product) *catalog.Index {
	return catalog.BuildIndex(products)
}

func hea100() catalog.Product {
	return catalog.Product{
		ID: "p-hea100", Slug: "profiles-en10025-s235jr-hea100",
		Family: catalog.FamilyProfiles, Standard: "EN10025", Grade: "S235JR",
		Dimension: "HEA100", DimensionLabel: "HEA 100",
		UnitWeight: 16.7, BasePrice: 4.1, PricingBasis: catalog.PricePerKg,
	}
}

func TestExactFourFieldMatchIsHigh(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	row := m.MatchRow(RowInput{
		Family: "profiles", Dimension: "HEA 100", Grade: "S235JR",
		Standard: "EN 10025", Quantity: "10", Unit: "buc",
	})

	if row.MatchConfidence != ConfidenceHigh {
		t.Fatalf("confidence = %s, want high (reason: %s)", row.MatchConfidence, row.MatchReason)
	}
	if row.MatchedProductID != "p-hea100" {
		t.Fatalf("matched product = %q, want p-hea100", row.MatchedProductID)
	}
	if len(row.Errors) != 0 || len(row.Warnings) != 0 {
		t.Fatalf("unexpected diagnostics: errors=%v warnings=%v", row.Errors, row.Warnings)
	}
}

func TestAmbiguousDimensionOnlyIsAtBestMedium(t *testing.T) {
	plateA := catalog.Product{
		ID: "p-plate-s235", Slug: "plates-s235jr-6",
		Family: catalog.FamilyPlates, Standard: "EN10025", Grade: "S235JR", Dimension: "6",
	}
	plateB := catalog.Product{
		ID: "p-plate-s355", Slug: "plates-s355j2-6",
		Family: catalog.FamilyPlates, Standard: "EN10025", Grade: "S355J2", Dimension: "6",
	}
	m := NewMatcher(testIndex(plateA, plateB), 0)

	row := m.MatchRow(RowInput{Family: "plates", Dimension: "6mm", Quantity: "500", Unit: "kg"})

	if row.MatchConfidence == ConfidenceHigh {
		t.Fatalf("ambiguous single-field match must not resolve to high")
	}
	if row.MatchConfidence != ConfidenceMedium {
		t.Fatalf("confidence = %s, want medium", row.MatchConfidence)
	}
	if !strings.Contains(row.MatchReason, "family+dimension") {
		t.Errorf("reason %q should name the driving fields", row.MatchReason)
	}
}

func TestFamilyGradeFallbackIsMedium(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	// dimension absent, grade known in the family
	row := m.MatchRow(RowInput{Family: "profiles", Grade: "S235JR", Quantity: "5", Unit: "buc"})

	if row.MatchConfidence != ConfidenceMedium {
		t.Fatalf("confidence = %s, want medium (reason: %s)", row.MatchConfidence, row.MatchReason)
	}
	if !strings.Contains(row.MatchReason, "family+grade") {
		t.Errorf("reason %q should name the driving fields", row.MatchReason)
	}
}

func TestSingleLooseDimensionCandidateIsLow(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	// "100" alone is not the canonical HEA100 token, but its numeric
	// sequence appears in exactly one profile
	row := m.MatchRow(RowInput{Family: "profiles", Dimension: "100", Quantity: "2", Unit: "buc"})

	if row.MatchConfidence != ConfidenceLow {
		t.Fatalf("confidence = %s, want low (reason: %s)", row.MatchConfidence, row.MatchReason)
	}
	if row.MatchedProductID != "p-hea100" {
		t.Fatalf("matched product = %q, want p-hea100", row.MatchedProductID)
	}
}

func TestAmbiguousLooseCandidatesAreNone(t *testing.T) {
	hea := hea100()
	ipe := catalog.Product{
		ID: "p-ipe100", Slug: "profiles-ipe100",
		Family: catalog.FamilyProfiles, Standard: "EN10025", Grade: "S235JR", Dimension: "IPE100",
	}
	m := NewMatcher(testIndex(hea, ipe), 0)

	row := m.MatchRow(RowInput{Family: "profiles", Dimension: "100", Quantity: "2", Unit: "buc"})

	if row.MatchConfidence != ConfidenceNone {
		t.Fatalf("confidence = %s, want none for ambiguous loose match", row.MatchConfidence)
	}
	if row.MatchedProductID != "" {
		t.Fatalf("no product should be attached, got %q", row.MatchedProductID)
	}
}

func TestMissingFamilyIsNoneRegardless(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	for _, fam := range []string{"", "unobtainium"} {
		row := m.MatchRow(RowInput{
			Family: fam, Dimension: "HEA 100", Grade: "S235JR",
			Standard: "EN 10025", Quantity: "10", Unit: "buc",
		})
		if row.MatchConfidence != ConfidenceNone {
			t.Errorf("family %q: confidence = %s, want none", fam, row.MatchConfidence)
		}
		if row.MatchedProductID != "" {
			t.Errorf("family %q: matched product should be empty", fam)
		}
	}
}

func TestEmptyCatalogDegradesToNone(t *testing.T) {
	m := NewMatcher(testIndex(), 0)

	row := m.MatchRow(RowInput{
		Family: "profiles", Dimension: "HEA 100", Grade: "S235JR",
		Standard: "EN 10025", Quantity: "10", Unit: "buc",
	})
	if row.MatchConfidence != ConfidenceNone {
		t.Fatalf("confidence = %s, want none on empty catalog", row.MatchConfidence)
	}
}

func TestInvalidQuantityError(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	for _, qty := range []string{"", "0", "-5", "abc"} {
		row := m.MatchRow(RowInput{Family: "profiles", Dimension: "HEA 100", Quantity: qty, Unit: "buc"})
		found := false
		for _, e := range row.Errors {
			if e == "invalid quantity" {
				found = true
			}
		}
		if !found {
			t.Errorf("quantity %q: errors = %v, want invalid quantity", qty, row.Errors)
		}
		if row.CartReady() {
			t.Errorf("quantity %q: row must not be cart-ready", qty)
		}
	}
}

func TestMissingUnitDefaultsWithWarning(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)

	row := m.MatchRow(RowInput{Family: "profiles", Dimension: "HEA 100", Quantity: "10"})

	if row.Unit != UnitBuc {
		t.Fatalf("unit = %q, want buc", row.Unit)
	}
	found := false
	for _, w := range row.Warnings {
		if w == "unit defaulted" {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want unit defaulted", row.Warnings)
	}
}

func TestUnknownGradeWarnsButDoesNotBlock(t *testing.T) {
	p := hea100()
	p.Grade = "X99ZZ"
	p.Slug = "profiles-x99zz-hea100"
	m := NewMatcher(testIndex(p), 0)

	row := m.MatchRow(RowInput{
		Family: "profiles", Dimension: "HEA 100", Grade: "X99ZZ",
		Standard: "EN 10025", Quantity: "1", Unit: "buc",
	})

	if row.MatchConfidence != ConfidenceHigh {
		t.Fatalf("unknown grade should still match exactly, got %s", row.MatchConfidence)
	}
	found := false
	for _, w := range row.Warnings {
		if strings.Contains(w, "unknown grade") {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want unknown grade warning", row.Warnings)
	}
}

func TestRunPreservesOrderAndIndexes(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)
	inputs := []RowInput{
		{Index: 0, Family: "profiles", Dimension: "HEA 100", Grade: "S235JR", Standard: "EN 10025", Quantity: "1", Unit: "buc"},
		{Index: 1, Family: "plates", Dimension: "6mm", Quantity: "500", Unit: "kg"},
		{Index: 2, Quantity: "x"},
	}
	rows := m.Run(inputs)
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Index != i {
			t.Errorf("row %d has index %d", i, r.Index)
		}
	}
}

func TestMatchingIsDeterministic(t *testing.T) {
	m := NewMatcher(testIndex(hea100()), 0)
	in := RowInput{Family: "profiles", Dimension: "HEA 100", Grade: "S235JR", Standard: "EN 10025", Quantity: "10", Unit: "buc"}
	a := m.MatchRow(in)
	b := m.MatchRow(in)
	if a.MatchedProductID != b.MatchedProductID || a.MatchConfidence != b.MatchConfidence || a.MatchReason != b.MatchReason {
		t.Fatalf("matching is not deterministic: %+v vs %+v", a, b)
	}
}
