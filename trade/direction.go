package trade

import "strings"

// Direction is the side of an operation, fixed at the data-model boundary.
// Loose status strings from upstream sources are decoded exactly once, via
// ParseDirection, so analyzers never compare raw strings.
type Direction int8

const (
	Unknown Direction = iota
	Buy
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection decodes a side label case-insensitively. It accepts the
// usual English labels plus the Portuguese ones found in broker exports.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "COMPRA", "C", "LONG":
		return Buy
	case "SELL", "VENDA", "V", "SHORT":
		return Sell
	default:
		return Unknown
	}
}

// MarshalText implements encoding.TextMarshaler so Direction serializes as
// its stable label in JSON payloads.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	*d = ParseDirection(string(b))
	return nil
}
