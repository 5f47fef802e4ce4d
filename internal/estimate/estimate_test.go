package estimate

import (
	"testing"

	"bommatch-service/internal/catalog"
)

func bar12() catalog.Product {
	return catalog.Product{
		ID: "p-bar", Slug: "profiles-bar",
		Family: catalog.FamilyProfiles, UnitWeight: 12.0,
		BasePrice: 4.0, PricingBasis: catalog.PricePerKg,
	}
}

func TestLengthSoldWeight(t *testing.T) {
	w, _, err := Estimate(bar12(), Config{Unit: SellPerPiece, LengthOption: Length6m, Quantity: 10, Finish: FinishStandard})
	if err != nil {
		t.Fatal(err)
	}
	if w.TotalKg != 720 {
		t.Fatalf("totalKg = %v, want 720", w.TotalKg)
	}
	if w.Formula != "12.00 kg/m × 6m × 10 buc" {
		t.Fatalf("formula = %q", w.Formula)
	}
}

func TestWeightSoldProduct(t *testing.T) {
	w, _, err := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: 350.5})
	if err != nil {
		t.Fatal(err)
	}
	if w.TotalKg != 350.5 {
		t.Fatalf("totalKg = %v, want the quantity itself", w.TotalKg)
	}
}

func TestQuantityDoublingDoublesWeight(t *testing.T) {
	for _, opt := range []LengthOption{Length6m, Length12m} {
		w1, _, err := Estimate(bar12(), Config{Unit: SellPerPiece, LengthOption: opt, Quantity: 7})
		if err != nil {
			t.Fatal(err)
		}
		w2, _, err := Estimate(bar12(), Config{Unit: SellPerPiece, LengthOption: opt, Quantity: 14})
		if err != nil {
			t.Fatal(err)
		}
		if w2.TotalKg != 2*w1.TotalKg {
			t.Errorf("%s: %v is not double %v", opt, w2.TotalKg, w1.TotalKg)
		}
	}
}

func TestIdempotence(t *testing.T) {
	cfg := Config{Unit: SellPerPiece, LengthOption: LengthCustom, CustomLength: 7.35, Quantity: 3, Finish: FinishGalvanized}
	w1, p1, err := Estimate(bar12(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	w2, p2, err := Estimate(bar12(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if w1 != w2 || p1 != p2 {
		t.Fatalf("estimates differ for identical input:\n%+v %+v\n%+v %+v", w1, p1, w2, p2)
	}
}

func TestVATAndTotal(t *testing.T) {
	_, p, err := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: 100})
	if err != nil {
		t.Fatal(err)
	}
	// 100 kg × 4.0 = 400; VAT 19% = 76; total 476, shipping excluded
	if p.Subtotal != 400 || p.VAT != 76 || p.Total != 476 {
		t.Fatalf("price = %+v", p)
	}
}

func TestFinishMultiplier(t *testing.T) {
	_, std, _ := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: 100, Finish: FinishStandard})
	_, galv, _ := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: 100, Finish: FinishGalvanized})
	if galv.UnitPrice <= std.UnitPrice {
		t.Fatalf("galvanized price %v should exceed standard %v", galv.UnitPrice, std.UnitPrice)
	}
	if std.UnitPrice != bar12().BasePrice {
		t.Fatalf("standard finish must not change the base price")
	}
}

func TestDeliveryBands(t *testing.T) {
	cases := []struct {
		kg      float64
		band    string
		special bool
	}{
		{50, "<100kg", false},
		{100, "100-1000kg", false},
		{720, "100-1000kg", false},
		{1500, ">1000kg", true},
	}
	for _, c := range cases {
		_, p, err := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: c.kg})
		if err != nil {
			t.Fatal(err)
		}
		if p.DeliveryFeeBand != c.band || p.SpecialTransport != c.special {
			t.Errorf("%v kg: band=%q special=%v, want %q %v", c.kg, p.DeliveryFeeBand, p.SpecialTransport, c.band, c.special)
		}
	}
}

func TestPerPiecePricingBasis(t *testing.T) {
	p := bar12()
	p.PricingBasis = catalog.PricePerPiece
	p.BasePrice = 25

	_, price, err := Estimate(p, Config{Unit: SellPerPiece, LengthOption: Length6m, Quantity: 4})
	if err != nil {
		t.Fatal(err)
	}
	if price.Subtotal != 100 {
		t.Fatalf("subtotal = %v, want 25 × 4 = 100", price.Subtotal)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero quantity", Config{Unit: SellPerKg, Quantity: 0}, ErrInvalidQuantity},
		{"fractional pieces", Config{Unit: SellPerPiece, Quantity: 2.5}, ErrInvalidQuantity},
		{"custom length zero", Config{Unit: SellPerPiece, LengthOption: LengthCustom, CustomLength: 0, Quantity: 1}, ErrInvalidLength},
		{"custom length too long", Config{Unit: SellPerPiece, LengthOption: LengthCustom, CustomLength: 12.5, Quantity: 1}, ErrInvalidLength},
		{"bad finish", Config{Unit: SellPerKg, Quantity: 1, Finish: "chromed"}, ErrInvalidFinish},
	}
	for _, c := range cases {
		if _, _, err := Estimate(bar12(), c.cfg); err != c.want {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}
	// fractional is fine for weight-based selling
	if _, _, err := Estimate(bar12(), Config{Unit: SellPerKg, Quantity: 2.5}); err != nil {
		t.Errorf("fractional kg quantity: %v", err)
	}
}
