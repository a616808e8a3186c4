package quotation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateInput is the request payload for a new quotation. QuotationNo is the
// client-generated candidate number; the server treats it as a suggestion only.
type CreateInput struct {
	QuotationNo     string     `json:"quotationNo"`
	Date            Date       `json:"date"`
	CustomerName    string     `json:"customerName" validate:"required"`
	CustomerAddress string     `json:"customerAddress" validate:"required"`
	BikeRegNo       string     `json:"bikeRegNo"`
	Items           []LineItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64    `json:"totalAmount"`
	Remarks         string     `json:"remarks"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the payload before anything is allocated or written.
func (in CreateInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fieldName(fe), Message: fieldMessage(fe)}
	}
	return &ValidationError{Message: err.Error()}
}

func fieldName(fe validator.FieldError) string {
	name := strings.TrimPrefix(fe.Namespace(), "CreateInput.")
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return "must not be negative"
	default:
		return "is invalid"
	}
}
