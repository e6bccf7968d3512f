package escher

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Wire shapes use pointer fields so that `required` means "key present and
// not null". Without that, `{}` would decode cleanly into any of them.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeStrict unmarshals doc into out and checks required keys.
func decodeStrict(doc json.RawMessage, out any) error {
	if err := json.Unmarshal(doc, out); err != nil {
		return err
	}
	return validate.Struct(out)
}

//
// ────────────────────────────────────────────────
//   Escher API: Authentication
// ────────────────────────────────────────────────
//

type authResultWire struct {
	AccessToken  *string `json:"AccessToken" validate:"required"`
	RefreshToken string  `json:"RefreshToken"`
	TokenType    string  `json:"TokenType"`
	ExpiresIn    int64   `json:"ExpiresIn"`
	IDToken      string  `json:"IdToken"`
}

type authResponseWire struct {
	AuthenticationResult *authResultWire `json:"AuthenticationResult" validate:"required"`
}

//
// ────────────────────────────────────────────────
//   Escher API: Quote
// ────────────────────────────────────────────────
//

// Numeric fields arrive as decimal strings.
type quoteWire struct {
	QuoteID           *string    `json:"quote_id" validate:"required"`
	ProductID         *string    `json:"product_id" validate:"required"`
	BaseCurrency      *string    `json:"base_currency" validate:"required"`
	Price             *string    `json:"price" validate:"required"`
	BaseCurrencySize  *string    `json:"base_currency_size" validate:"required"`
	QuoteCurrencySize *string    `json:"quote_currency_size" validate:"required"`
	Side              *Side      `json:"side" validate:"required"`
	CreatedAt         *time.Time `json:"created_at" validate:"required"`
	Expiry            *time.Time `json:"expiry" validate:"required"`
}

//
// ────────────────────────────────────────────────
//   Escher API: Accept quote / Order
// ────────────────────────────────────────────────
//

type orderWire struct {
	ID              *string    `json:"id" validate:"required"`
	ProductID       *string    `json:"product_id" validate:"required"`
	OrderType       *string    `json:"order_type" validate:"required"`
	OrderStatus     *string    `json:"order_status" validate:"required"`
	TimeInForce     *string    `json:"time_in_force" validate:"required"`
	FillPrice       *string    `json:"fill_price" validate:"required"`
	FillQty         *string    `json:"fill_qty" validate:"required"`
	Price           *string    `json:"price" validate:"required"`
	OrderSize       *string    `json:"order_size" validate:"required"`
	ClientSide      *Side      `json:"client_side" validate:"required"`
	Status          *string    `json:"status" validate:"required"`
	ExecutedValue   *string    `json:"executed_value" validate:"required"`
	CreatedAtServer *time.Time `json:"created_at_server"`
}

type acceptQuoteWire struct {
	Success *bool      `json:"success" validate:"required"`
	QuoteID *string    `json:"quote_id" validate:"required"`
	Order   *orderWire `json:"order" validate:"required"`
}

//
// ────────────────────────────────────────────────
//   Escher API: Structured error
// ────────────────────────────────────────────────
//

// errorWire is the business-rejection envelope, sent with a success status.
type errorWire struct {
	Success *bool   `json:"success" validate:"required"`
	Message *string `json:"message" validate:"required"`
}
