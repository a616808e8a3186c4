package quotation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRemarks is used when a quotation is submitted without remarks.
const DefaultRemarks = "Payment should be made within 7 days of invoice date."

type Quotation struct {
	ID              uuid.UUID  `json:"id"`
	QuotationNo     string     `json:"quotationNo"`
	Date            Date       `json:"date"`
	CustomerName    string     `json:"customerName"`
	CustomerAddress string     `json:"customerAddress"`
	BikeRegNo       string     `json:"bikeRegNo,omitempty"`
	Items           []LineItem `json:"items"`
	TotalAmount     float64    `json:"totalAmount"`
	Remarks         string     `json:"remarks"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type LineItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Rate        float64 `json:"rate" validate:"gte=0"`
}

// Amount is quantity × rate. It is derived at render time, never stored.
func (it LineItem) Amount() decimal.Decimal {
	return decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Rate))
}

// Total sums the item amounts, rounded to two places. The stored TotalAmount
// always comes from here; the client-supplied figure is ignored.
func (q Quotation) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range q.Items {
		total = total.Add(it.Amount())
	}
	return total.Round(2)
}

// Date is a calendar date carried as YYYY-MM-DD on the wire.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}
