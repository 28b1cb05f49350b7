// Package money formats and parses monetary amounts for display.
//
// Amounts are rounded half away from zero to two decimal places only when
// they are turned into text; callers keep full precision everywhere else.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Mode selects the separator convention.
type Mode string

const (
	// ModeBR renders R$ 1.234,56.
	ModeBR Mode = "br"
	// ModePlain renders R$ 1234.56.
	ModePlain Mode = "plain"
)

const defaultSymbol = "R$"

var ErrInvalidNumber = errors.New("invalid number")

// ParseMode maps a config value to a Mode. Unknown values report false.
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "br", "pt-br", "pt_br":
		return ModeBR, true
	case "plain", "en", "c":
		return ModePlain, true
	}
	return ModeBR, false
}

// Formatter turns float amounts into display strings.
type Formatter struct {
	Mode   Mode
	Symbol string
}

// NewFormatter returns a formatter for mode with the default currency symbol.
func NewFormatter(mode Mode) Formatter {
	return Formatter{Mode: mode, Symbol: defaultSymbol}
}

// Format renders v with the currency symbol.
func (f Formatter) Format(v float64) string {
	amount := f.Amount(v)
	if f.Symbol == "" {
		return amount
	}
	return f.Symbol + " " + amount
}

// Amount renders v without the currency symbol. NaN and infinities, which
// decimal cannot represent, come out as their strconv spelling.
func (f Formatter) Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	intPart, fracPart, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	if f.Mode == ModePlain {
		return sign + intPart + "." + fracPart
	}

	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = strings.ReplaceAll(humanize.Comma(n), ",", ".")
	}
	return sign + grouped + "," + fracPart
}

// Percent renders a percentage such as 30% or 12,5%. Fractions are truncated
// to two places so a margin below 100 never reads as 100%.
func (f Formatter) Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	s := decimal.NewFromFloat(v).Truncate(2).String()
	if f.Mode != ModePlain {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s + "%"
}

// ParseNumber reads a user-typed number. Both 7.5 and 7,5 are accepted, as are
// grouped forms such as 1.234,56 and 1,234.56. A currency symbol is ignored.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, defaultSymbol)
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrInvalidNumber
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, ErrInvalidNumber
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return v, nil
}
