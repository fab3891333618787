package text

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter formats numbers with the decimal separator and digit
// grouping of a locale. The locale is always explicit so output does not
// depend on the environment.
type NumberFormatter struct {
	locale   language.Tag
	grouping bool
	printer  *message.Printer
}

// NumberOption configures a NumberFormatter.
type NumberOption func(*NumberFormatter)

// WithoutGrouping disables thousands separators.
func WithoutGrouping() NumberOption {
	return func(f *NumberFormatter) {
		f.grouping = false
	}
}

// NewNumberFormatter creates a formatter for locale with grouping enabled.
func NewNumberFormatter(locale language.Tag, opts ...NumberOption) *NumberFormatter {
	f := &NumberFormatter{
		locale:   locale,
		grouping: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.printer = message.NewPrinter(locale)
	return f
}

// ParseNumberFormatter creates a formatter from a BCP 47 locale string.
func ParseNumberFormatter(locale string, opts ...NumberOption) (*NumberFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return NewNumberFormatter(tag, opts...), nil
}

// Locale returns the formatter's locale.
func (f *NumberFormatter) Locale() language.Tag { return f.locale }

// Format formats v with exactly decimals fraction digits.
func (f *NumberFormatter) Format(v float64, decimals int) string {
	return f.format(v, decimals, decimals)
}

// FormatTrimmed formats v with at most decimals fraction digits, dropping
// trailing zeroes.
func (f *NumberFormatter) FormatTrimmed(v float64, decimals int) string {
	return f.format(v, 0, decimals)
}

func (f *NumberFormatter) format(v float64, minDigits, maxDigits int) string {
	if maxDigits < 0 {
		maxDigits = 0
	}
	opts := []number.Option{
		number.MinFractionDigits(minDigits),
		number.MaxFractionDigits(maxDigits),
	}
	if !f.grouping {
		opts = append(opts, number.NoSeparator())
	}
	return f.printer.Sprint(number.Decimal(v, opts...))
}
