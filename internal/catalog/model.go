package catalog

import "time"

// Family is the top-level product taxonomy of the storefront.
type Family string

const (
	FamilyProfiles   Family = "profiles"
	FamilyPlates     Family = "plates"
	FamilyPipes      Family = "pipes"
	FamilyFasteners  Family = "fasteners"
	FamilyStainless  Family = "stainless"
	FamilyNonferrous Family = "nonferrous"
)

var Families = []Family{
	FamilyProfiles, FamilyPlates, FamilyPipes,
	FamilyFasteners, FamilyStainless, FamilyNonferrous,
}

// PricingBasis says what BasePrice multiplies: total weight or piece count.
type PricingBasis string

const (
	PricePerKg    PricingBasis = "per_kg"
	PricePerPiece PricingBasis = "per_piece"
)

type Availability string

const (
	InStock      Availability = "in_stock"
	OnOrder      Availability = "on_order"
	Discontinued Availability = "discontinued"
)

type Product struct {
	ID             string       `json:"id"`
	Slug           string       `json:"slug"`
	Name           string       `json:"name"`
	Family         Family       `json:"family"`
	Standard       string       `json:"standard"`  // canonical token, e.g. EN10025
	Grade          string       `json:"grade"`     // canonical token, e.g. S235JR
	Dimension      string       `json:"dimension"` // canonical token, e.g. HEA100
	DimensionLabel string       `json:"dimensionLabel"`
	UnitWeight     float64      `json:"unitWeight"` // kg/m for length-based products
	BasePrice      float64      `json:"basePrice"`  // RON, per PricingBasis
	PricingBasis   PricingBasis `json:"pricingBasis"`
	Availability   Availability `json:"availability"`
	CategoryID     string       `json:"categoryId,omitempty"`
	CreatedAt      time.Time    `json:"createdAt,omitempty"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Family    Family    `json:"family"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
