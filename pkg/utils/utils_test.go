package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "underscored label", input: "online_shopping", want: "Online Shopping"},
		{name: "single word", input: "groceries", want: "Groceries"},
		{name: "already spaced", input: "mutual funds", want: "Mutual Funds"},
		{name: "mixed case input", input: "FIXED_deposit", want: "Fixed Deposit"},
		{name: "empty", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "under a thousand", input: 950, want: "950"},
		{name: "thousands", input: 50000, want: "50,000"},
		{name: "lakhs", input: 1250000, want: "1,250,000"},
		{name: "rounds decimals away", input: 1999.6, want: "2,000"},
		{name: "negative", input: -75000, want: "-75,000"},
		{name: "zero", input: 0, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.input))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 50.0, Round2(50))
	assert.Equal(t, 66.67, Round2(200.0/3.0))
}
