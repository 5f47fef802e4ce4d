// Package estimate computes physical weight and price estimates for a
// configured product. Everything here is a pure function: identical
// inputs give bit-identical outputs, and monetary values stay at full
// float precision until a caller rounds them for presentation.
package estimate

import (
	"errors"
	"fmt"
	"math"

	"bommatch-service/internal/catalog"
)

// SellingUnit is the unit the customer buys in.
type SellingUnit string

const (
	SellPerMeter  SellingUnit = "m"
	SellPerKg     SellingUnit = "kg"
	SellPerPiece  SellingUnit = "pcs"
	SellPerBundle SellingUnit = "bundle"
)

type LengthOption string

const (
	Length6m     LengthOption = "6m"
	Length12m    LengthOption = "12m"
	LengthCustom LengthOption = "custom"
)

type Finish string

const (
	FinishStandard   Finish = "standard"
	FinishGalvanized Finish = "galvanized"
	FinishPainted    Finish = "painted"
	FinishPolished   Finish = "polished"
)

// finishFactor is the fixed price multiplier per finish.
var finishFactor = map[Finish]float64{
	FinishStandard:   1.0,
	FinishGalvanized: 1.18,
	FinishPainted:    1.12,
	FinishPolished:   1.25,
}

const (
	vatRate         = 0.19
	maxCustomLength = 12.0
)

// Config is the user's chosen purchase parameters for one product.
type Config struct {
	Unit         SellingUnit  `json:"unit"`
	LengthOption LengthOption `json:"lengthOption"`
	CustomLength float64      `json:"customLength,omitempty"` // meters, (0, 12]
	Quantity     float64      `json:"quantity"`
	Finish       Finish       `json:"finish"`
	CutToLength  bool         `json:"cutToLength"`
}

type Weight struct {
	TotalKg    float64 `json:"totalKg"`
	UnitKgPerM float64 `json:"unitKgPerM"`
	Formula    string  `json:"formula"`
}

type Price struct {
	UnitPrice        float64 `json:"unitPrice"`
	Subtotal         float64 `json:"subtotal"`
	VAT              float64 `json:"vat"`
	Total            float64 `json:"total"` // subtotal + VAT; shipping disclosed separately
	DeliveryFeeBand  string  `json:"deliveryFeeBand"`
	SpecialTransport bool    `json:"specialTransport"`
}

var (
	ErrInvalidQuantity = errors.New("estimate: quantity must be at least 1")
	ErrInvalidLength   = errors.New("estimate: custom length must be in (0, 12] meters")
	ErrInvalidFinish   = errors.New("estimate: unknown finish")
)

// Validate rejects structurally invalid configurations. Quantity must be a
// whole number for unit-based selling; weight-based selling may be fractional.
func (c Config) Validate() error {
	if c.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if (c.Unit == SellPerPiece || c.Unit == SellPerBundle) && c.Quantity != math.Trunc(c.Quantity) {
		return ErrInvalidQuantity
	}
	if c.LengthOption == LengthCustom && (c.CustomLength <= 0 || c.CustomLength > maxCustomLength) {
		return ErrInvalidLength
	}
	if _, ok := finishFactor[c.finish()]; !ok {
		return ErrInvalidFinish
	}
	return nil
}

func (c Config) finish() Finish {
	if c.Finish == "" {
		return FinishStandard
	}
	return c.Finish
}

func (c Config) effectiveLength() float64 {
	switch c.LengthOption {
	case Length12m:
		return 12
	case LengthCustom:
		return c.CustomLength
	default:
		return 6
	}
}

// Estimate derives weight and price for one cart line.
func Estimate(p catalog.Product, c Config) (Weight, Price, error) {
	if err := c.Validate(); err != nil {
		return Weight{}, Price{}, err
	}

	w := estimateWeight(p, c)
	pr := estimatePrice(p, c, w)
	return w, pr, nil
}

func estimateWeight(p catalog.Product, c Config) Weight {
	w := Weight{UnitKgPerM: p.UnitWeight}
	switch c.Unit {
	case SellPerKg:
		// weight-sold: the quantity is the weight
		w.TotalKg = c.Quantity
		w.Formula = fmt.Sprintf("%s kg", trimNum(c.Quantity))
	case SellPerMeter:
		w.TotalKg = p.UnitWeight * c.Quantity
		w.Formula = fmt.Sprintf("%.2f kg/m × %sm", p.UnitWeight, trimNum(c.Quantity))
	default: // pieces or bundles of fixed-length bars
		l := c.effectiveLength()
		w.TotalKg = p.UnitWeight * l * c.Quantity
		w.Formula = fmt.Sprintf("%.2f kg/m × %sm × %s buc", p.UnitWeight, trimNum(l), trimNum(c.Quantity))
	}
	return w
}

func estimatePrice(p catalog.Product, c Config, w Weight) Price {
	unitPrice := p.BasePrice * finishFactor[c.finish()]

	var subtotal float64
	if p.PricingBasis == catalog.PricePerPiece {
		subtotal = unitPrice * c.Quantity
	} else {
		subtotal = unitPrice * w.TotalKg
	}

	band, special := deliveryBand(w.TotalKg)
	vat := subtotal * vatRate
	return Price{
		UnitPrice:        unitPrice,
		Subtotal:         subtotal,
		VAT:              vat,
		Total:            subtotal + vat,
		DeliveryFeeBand:  band,
		SpecialTransport: special,
	}
}

// deliveryBand discretizes total weight into the shipping fee bands shown
// to the user. Above a ton the order needs special transport.
func deliveryBand(totalKg float64) (string, bool) {
	switch {
	case totalKg < 100:
		return "<100kg", false
	case totalKg <= 1000:
		return "100-1000kg", false
	default:
		return ">1000kg", true
	}
}

// Round2 rounds a monetary value for presentation. Internal computation
// keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// trimNum prints 6 as "6" and 2.5 as "2.5".
func trimNum(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
