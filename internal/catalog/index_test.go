package catalog

import "testing"

func sampleProducts() []Product {
	return []Product{
		{ID: "1", Slug: "profiles-en10025-s235jr-hea100", Family: FamilyProfiles, Standard: "EN10025", Grade: "S235JR", Dimension: "HEA100"},
		{ID: "2", Slug: "profiles-en10025-s355j2-hea100", Family: FamilyProfiles, Standard: "EN10025", Grade: "S355J2", Dimension: "HEA100"},
		{ID: "3", Slug: "profiles-en10025-s235jr-ipe200", Family: FamilyProfiles, Standard: "EN10025", Grade: "S235JR", Dimension: "IPE200"},
		{ID: "4", Slug: "plates-en10051-dc01-6", Family: FamilyPlates, Standard: "EN10051", Grade: "DC01", Dimension: "6"},
	}
}

func TestExactLookup(t *testing.T) {
	idx := BuildIndex(sampleProducts())

	ps := idx.Exact(Criteria{Family: FamilyProfiles, Standard: "EN10025", Grade: "S235JR", Dimension: "HEA100"})
	if len(ps) != 1 || ps[0].ID != "1" {
		t.Fatalf("exact lookup = %+v, want product 1", ps)
	}

	if ps := idx.Exact(Criteria{Family: FamilyProfiles, Grade: "S235JR", Dimension: "HEA100"}); ps != nil {
		t.Fatalf("partial criteria must not satisfy an exact lookup, got %+v", ps)
	}
}

func TestFamilyDimensionLookup(t *testing.T) {
	idx := BuildIndex(sampleProducts())

	ps := idx.FamilyDimension(FamilyProfiles, "HEA100")
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}
	// deterministic order by slug
	if ps[0].ID != "1" || ps[1].ID != "2" {
		t.Fatalf("order = %s,%s, want 1,2", ps[0].ID, ps[1].ID)
	}
}

func TestFamilyGradeLookup(t *testing.T) {
	idx := BuildIndex(sampleProducts())
	ps := idx.FamilyGrade(FamilyProfiles, "S235JR")
	if len(ps) != 2 {
		t.Fatalf("len = %d, want 2", len(ps))
	}
}

func TestEmptyResultIsValid(t *testing.T) {
	idx := BuildIndex(sampleProducts())
	if ps := idx.FamilyDimension(FamilyPipes, "48.3X2.9"); len(ps) != 0 {
		t.Fatalf("expected empty result, got %+v", ps)
	}
	empty := BuildIndex(nil)
	if ps := empty.Family(FamilyProfiles); len(ps) != 0 {
		t.Fatalf("empty index should return nothing, got %+v", ps)
	}
}

func TestFindCandidatesMostSpecificFirst(t *testing.T) {
	idx := BuildIndex(sampleProducts())

	ps := idx.FindCandidates(Criteria{Family: FamilyProfiles, Standard: "EN10025", Grade: "S235JR", Dimension: "HEA100"})
	if len(ps) == 0 || ps[0].ID != "1" {
		t.Fatalf("first candidate = %+v, want the exact match (1)", ps)
	}
	// all profiles eventually appear, deduplicated
	if len(ps) != 3 {
		t.Fatalf("len = %d, want 3 profile products", len(ps))
	}
	seen := map[string]int{}
	for _, p := range ps {
		seen[p.ID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("product %s appears %d times", id, n)
		}
	}
}

func TestIndexSkipsFamilylessProducts(t *testing.T) {
	idx := BuildIndex([]Product{{ID: "x", Slug: "x"}})
	if idx.Size() != 0 {
		t.Fatalf("size = %d, want 0", idx.Size())
	}
}
