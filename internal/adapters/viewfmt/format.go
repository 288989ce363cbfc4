// Package viewfmt - общее форматирование значений для web и терминального представлений.
package viewfmt

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number форматирует число с разделителями разрядов; дробная часть выводится без округления
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	grouped := printer.Sprintf("%.0f", math.Trunc(v))
	if _, frac, ok := strings.Cut(strconv.FormatFloat(v, 'f', -1, 64), "."); ok {
		return sign + grouped + "." + frac
	}
	return sign + grouped
}

// Truncate обрезает текст до max символов, добавляя многоточие
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// PlainText убирает управляющие символы (в том числе ESC), чтобы текст с сервера
// не мог управлять терминалом; переводы строк и табуляция заменяются пробелом
func PlainText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}
