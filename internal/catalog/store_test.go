package catalog

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	repo := NewMemoryRepo(Product{
		Slug: "profiles-hea100", Family: FamilyProfiles,
		Standard: "EN10025", Grade: "S235JR", Dimension: "HEA100",
	})
	store := NewStore(repo, zerolog.Nop())

	if store.Index().Size() != 0 {
		t.Fatalf("fresh store should start empty")
	}

	if err := store.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Index().Size() != 1 {
		t.Fatalf("size = %d, want 1", store.Index().Size())
	}

	// catalog grows, old snapshot stays valid until the next reload
	old := store.Index()
	_, _ = repo.UpsertProduct(context.Background(), Product{
		Slug: "profiles-ipe200", Family: FamilyProfiles,
		Standard: "EN10025", Grade: "S235JR", Dimension: "IPE200",
	})
	if old.Size() != 1 {
		t.Fatalf("existing snapshot must be immutable")
	}
	if err := store.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	if store.Index().Size() != 2 {
		t.Fatalf("size after reload = %d, want 2", store.Index().Size())
	}
}

func TestMemoryRepoHidesDiscontinued(t *testing.T) {
	repo := NewMemoryRepo(
		Product{Slug: "a", Family: FamilyPlates},
		Product{Slug: "b", Family: FamilyPlates, Availability: Discontinued},
	)
	ps, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 1 || ps[0].Slug != "a" {
		t.Fatalf("products = %+v, want only slug a", ps)
	}
}
