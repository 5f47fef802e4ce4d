package bom

import "bommatch-service/internal/catalog"

// Unit is a selling/measuring unit accepted on upload. Part of the CSV
// contract: the accepted values are kg, buc, m, ton.
type Unit string

const (
	UnitKg  Unit = "kg"
	UnitBuc Unit = "buc" // pieces
	UnitM   Unit = "m"
	UnitTon Unit = "ton"
)

// Confidence is how certain the matcher is that a catalog product
// satisfies a BOM row.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// RowInput is one raw line of an uploaded material request, as text.
// All fields except Quantity and Unit are optional.
type RowInput struct {
	Index     int    `json:"index"`
	Family    string `json:"family"`
	Standard  string `json:"standard"`
	Grade     string `json:"grade"`
	Dimension string `json:"dimension"`
	Length    string `json:"length"` // meters, free text
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit"`
	Finish    string `json:"finish"`
	Notes     string `json:"notes"`
}

// Row is a RowInput after normalization, matching and validation.
type Row struct {
	Index int      `json:"index"`
	Raw   RowInput `json:"raw"`

	ParsedFamily    catalog.Family `json:"parsedFamily,omitempty"`
	ParsedStandard  string         `json:"parsedStandard,omitempty"`
	ParsedGrade     string         `json:"parsedGrade,omitempty"`
	ParsedDimension string         `json:"parsedDimension,omitempty"`

	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	LengthM  float64 `json:"lengthM,omitempty"`

	MatchedProductID string     `json:"matchedProductId,omitempty"`
	MatchConfidence  Confidence `json:"matchConfidence"`
	MatchReason      string     `json:"matchReason,omitempty"`

	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	IsSelected       bool `json:"isSelected"`
	IsManuallyMapped bool `json:"isManuallyMapped"`
}

// CartReady reports whether the row may enter the cart: no validation
// errors and a product to attach the line to.
func (r Row) CartReady() bool {
	return len(r.Errors) == 0 && r.MatchedProductID != ""
}

// ApplyManualMapping overrides the matcher's decision with a user-chosen
// product. Validation diagnostics stay untouched; the confidence tier is
// kept so the review UI can still show how the automatic pass did.
func ApplyManualMapping(r Row, productID string) Row {
	r.MatchedProductID = productID
	r.IsManuallyMapped = true
	r.MatchReason = "manually mapped by user"
	return r
}

// Stats summarizes a matched row set. Recomputed on every change,
// never persisted.
type Stats struct {
	TotalRows int     `json:"totalRows"`
	High      int     `json:"high"`
	Medium    int     `json:"medium"`
	Low       int     `json:"low"`
	Unmatched int     `json:"unmatched"`
	MatchRate float64 `json:"matchRate"` // percent, one decimal
}
