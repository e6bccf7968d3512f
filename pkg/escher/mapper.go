package escher

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

//
// ────────────────────────────────────────────────
//   Wire → domain
// ────────────────────────────────────────────────
//
// Each decoder is the "expected success type" probe for one operation. Any
// error (bad JSON type, missing key, malformed number) sends the response
// on to the structured-error probe.

func decodeAuthResponse(doc json.RawMessage) (*AuthResponse, error) {
	var w authResponseWire
	if err := decodeStrict(doc, &w); err != nil {
		return nil, err
	}
	r := w.AuthenticationResult
	return &AuthResponse{
		AuthenticationResult: AuthResult{
			AccessToken:  *r.AccessToken,
			RefreshToken: r.RefreshToken,
			TokenType:    r.TokenType,
			ExpiresIn:    r.ExpiresIn,
			IDToken:      r.IDToken,
		},
	}, nil
}

func decodeQuote(doc json.RawMessage) (*Quote, error) {
	var w quoteWire
	if err := decodeStrict(doc, &w); err != nil {
		return nil, err
	}

	var p amountParser
	q := &Quote{
		QuoteID:           *w.QuoteID,
		ProductID:         *w.ProductID,
		BaseCurrency:      *w.BaseCurrency,
		Price:             p.parse("price", *w.Price),
		BaseCurrencySize:  p.parse("base_currency_size", *w.BaseCurrencySize),
		QuoteCurrencySize: p.parse("quote_currency_size", *w.QuoteCurrencySize),
		Side:              *w.Side,
		CreatedAt:         *w.CreatedAt,
		Expiry:            *w.Expiry,
	}
	if p.err != nil {
		return nil, p.err
	}
	return q, nil
}

func decodeAcceptQuote(doc json.RawMessage) (*AcceptQuote, error) {
	var w acceptQuoteWire
	if err := decodeStrict(doc, &w); err != nil {
		return nil, err
	}

	order, err := fromOrderWire(w.Order)
	if err != nil {
		return nil, err
	}
	return &AcceptQuote{
		Success: *w.Success,
		QuoteID: *w.QuoteID,
		Order:   *order,
	}, nil
}

func fromOrderWire(w *orderWire) (*Order, error) {
	var p amountParser
	o := &Order{
		ID:            *w.ID,
		ProductID:     *w.ProductID,
		OrderType:     *w.OrderType,
		OrderStatus:   *w.OrderStatus,
		TimeInForce:   *w.TimeInForce,
		FillPrice:     p.parse("fill_price", *w.FillPrice),
		FillQty:       p.parse("fill_qty", *w.FillQty),
		Price:         p.parse("price", *w.Price),
		OrderSize:     p.parse("order_size", *w.OrderSize),
		ClientSide:    *w.ClientSide,
		Status:        *w.Status,
		ExecutedValue: p.parse("executed_value", *w.ExecutedValue),
	}
	if p.err != nil {
		return nil, fmt.Errorf("order: %w", p.err)
	}
	if w.CreatedAtServer != nil {
		o.CreatedAtServer = *w.CreatedAtServer
	}
	return o, nil
}

func decodeErrorShape(doc json.RawMessage) (*APIError, error) {
	var w errorWire
	if err := decodeStrict(doc, &w); err != nil {
		return nil, err
	}
	return &APIError{Success: *w.Success, Message: *w.Message}, nil
}

//
// ────────────────────────────────────────────────
//   String-encoded numerics
// ────────────────────────────────────────────────
//

// amountParser parses decimal strings and keeps the first failure.
type amountParser struct {
	err error
}

func (p *amountParser) parse(field, s string) float64 {
	if p.err != nil {
		return 0
	}
	f, err := parseAmount(s)
	if err != nil {
		p.err = fmt.Errorf("field %q: %w", field, err)
	}
	return f
}

// parseAmount converts a wire decimal string like "50000.00" to float64.
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
