package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCard marks structural card-validation failures. Wrapping errors
// carry the field detail.
var ErrInvalidCard = errors.New("invalid card")

// Card is the payment form. Validation is purely structural: no gateway is
// called, a well-shaped unexpired card settles the order.
type Card struct {
	Number string `json:"number" validate:"required,len=16,numeric"`
	Name   string `json:"name" validate:"required"`
	Month  string `json:"month" validate:"required,len=2,numeric"`
	Year   int    `json:"year" validate:"required"`
	Code   string `json:"code" validate:"required,len=3,numeric"`
}

var cardValidate = validator.New()

// ValidateCard checks number, holder name, expiry and CVV shape. Cards
// expiring in the current month are still valid.
func ValidateCard(card Card, now time.Time) error {
	if err := cardValidate.Struct(card); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return fmt.Errorf("%w: %s is invalid", ErrInvalidCard, strings.ToLower(vErrs[0].Field()))
		}
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}

	if strings.TrimSpace(card.Name) == "" {
		return fmt.Errorf("%w: holder name must not be blank", ErrInvalidCard)
	}

	month, err := strconv.Atoi(card.Month)
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 01 and 12", ErrInvalidCard)
	}

	if card.Year < now.Year() || (card.Year == now.Year() && month < int(now.Month())) {
		return fmt.Errorf("%w: card has expired", ErrInvalidCard)
	}

	return nil
}
