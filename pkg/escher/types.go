package escher

import "time"

//
// ────────────────────────────────────────────────
//   Authentication
// ────────────────────────────────────────────────
//

// AuthResult holds the session tokens issued by a sign-in or refresh call.
// The client never stores or renews them; expiry is the caller's concern.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // may be empty on refresh responses
	TokenType    string
	ExpiresIn    int64 // seconds
	IDToken      string
}

// AuthResponse is the success shape of POST /sign-in.
type AuthResponse struct {
	AuthenticationResult AuthResult
}

//
// ────────────────────────────────────────────────
//   Quotes and orders
// ────────────────────────────────────────────────
//

// Quote is a firm, time-boxed price offer.
type Quote struct {
	QuoteID           string
	ProductID         string
	BaseCurrency      string
	Price             float64
	BaseCurrencySize  float64
	QuoteCurrencySize float64
	Side              Side
	CreatedAt         time.Time
	Expiry            time.Time
}

// Expired reports whether the quote's expiry has passed at now.
// Advisory only: the server is the authority on quote validity.
func (q *Quote) Expired(now time.Time) bool {
	return !now.Before(q.Expiry)
}

// Order is the execution record produced by accepting a quote.
type Order struct {
	ID            string
	ProductID     string
	OrderType     string
	OrderStatus   string
	TimeInForce   string
	FillPrice     float64
	FillQty       float64
	Price         float64
	OrderSize     float64
	ClientSide    Side
	Status        string
	ExecutedValue float64
	// Zero when the server omits it.
	CreatedAtServer time.Time
}

// AcceptQuote is the result envelope of POST /quotes/accept.
type AcceptQuote struct {
	Success bool
	QuoteID string
	Order   Order
}

//
// ────────────────────────────────────────────────
//   Request payloads
// ────────────────────────────────────────────────
//

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshRequest shares /sign-in with signInRequest; the server tells them apart by shape.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	Email        string `json:"email"`
}

type quoteRequest struct {
	ProductID        string `json:"product_id"`
	BaseCurrencySize string `json:"base_currency_size"` // forwarded verbatim
	Side             Side   `json:"side"`
}

// acceptQuoteRequest encodes a nil Quantity as null, meaning "accept the full size".
type acceptQuoteRequest struct {
	QuoteID  string   `json:"quote_id"`
	Quantity *float64 `json:"quantity"`
}

// Quantity returns a pointer to q for use as a partial-fill size in AcceptQuote.
func Quantity(q float64) *float64 {
	return &q
}
