package utils

import (
	"log"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

// NormalizeLabel turns raw category/product labels like "online_shopping"
// into their display form "Online Shopping".
func NormalizeLabel(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FormatAmount renders a monetary value with thousand separators and no
// decimals, e.g. 1250000 -> "1,250,000".
func FormatAmount(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(math.Round(v)), 'f', 0, 64)

	var sb strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// Round2 rounds to 2 decimal places, used for percentage shares.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
