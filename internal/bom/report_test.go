package bom

import "testing"

func TestBuildStats(t *testing.T) {
	rows := []Row{
		{MatchConfidence: ConfidenceHigh},
		{MatchConfidence: ConfidenceHigh},
		{MatchConfidence: ConfidenceMedium},
		{MatchConfidence: ConfidenceLow},
		{MatchConfidence: ConfidenceNone},
		{MatchConfidence: ConfidenceNone},
	}
	s := BuildStats(rows)

	if s.TotalRows != 6 || s.High != 2 || s.Medium != 1 || s.Low != 1 || s.Unmatched != 2 {
		t.Fatalf("counts wrong: %+v", s)
	}
	// 4/6 = 66.666... -> 66.7
	if s.MatchRate != 66.7 {
		t.Fatalf("matchRate = %v, want 66.7", s.MatchRate)
	}
}

func TestBuildStatsEmptySet(t *testing.T) {
	s := BuildStats(nil)
	if s.TotalRows != 0 || s.MatchRate != 0 {
		t.Fatalf("empty set: %+v, want zero stats without division error", s)
	}
}

func TestNeedsAttentionOrderingAndSelection(t *testing.T) {
	rows := []Row{
		{Index: 3, MatchConfidence: ConfidenceNone},
		{Index: 0, MatchConfidence: ConfidenceHigh},
		{Index: 2, MatchConfidence: ConfidenceHigh, Errors: []string{"invalid quantity"}},
		{Index: 1, MatchConfidence: ConfidenceLow},
	}
	got := NeedsAttention(rows)

	wantIdx := []int{1, 2, 3}
	if len(got) != len(wantIdx) {
		t.Fatalf("len = %d, want %d", len(got), len(wantIdx))
	}
	for i, r := range got {
		if r.Index != wantIdx[i] {
			t.Errorf("attention[%d].Index = %d, want %d", i, r.Index, wantIdx[i])
		}
	}
}

func TestApplyManualMapping(t *testing.T) {
	r := Row{Index: 4, MatchConfidence: ConfidenceNone}
	mapped := ApplyManualMapping(r, "p-manual")

	if !mapped.IsManuallyMapped || mapped.MatchedProductID != "p-manual" {
		t.Fatalf("mapped = %+v", mapped)
	}
	if !mapped.CartReady() {
		t.Fatal("manually mapped row without errors should be cart-ready")
	}
	if r.IsManuallyMapped {
		t.Fatal("input row must not be mutated")
	}
}

func TestCartReadyRowsExcludesErrored(t *testing.T) {
	rows := []Row{
		{Index: 0, MatchedProductID: "p1"},
		{Index: 1, MatchedProductID: "p2", Errors: []string{"invalid quantity"}},
		{Index: 2}, // unmatched
	}
	got := CartReadyRows(rows)
	if len(got) != 1 || got[0].Index != 0 {
		t.Fatalf("cart-ready = %+v, want only row 0", got)
	}
}
