package rfq

import "time"

type Status string

const (
	StatusNew    Status = "new"
	StatusQuoted Status = "quoted"
	StatusClosed Status = "closed"
)

// validTransitions guards the status lifecycle server-side.
var validTransitions = map[Status]Status{
	StatusNew:    StatusQuoted,
	StatusQuoted: StatusClosed,
}

func CanTransition(from, to Status) bool {
	return validTransitions[from] == to
}

// Line is one confirmed cart line snapshotted into the quote request.
type Line struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	LengthM   float64 `json:"lengthM,omitempty"`
	Finish    string  `json:"finish,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

type RFQ struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"` // short public reference
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    Status    `json:"status"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
}
