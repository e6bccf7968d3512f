package escher

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSide is returned when encoding or decoding an unknown Side.
var ErrInvalidSide = errors.New("escher: invalid side")

// Side is the direction of a quote or order.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

// ParseSide converts "buy"/"sell" (any case) to a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// String returns the wire token ("buy" or "sell").
func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler; JSON encodes Side as a string.
func (s Side) MarshalText() ([]byte, error) {
	switch s {
	case Buy, Sell:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
