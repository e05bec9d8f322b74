package catalog

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMargin(t *testing.T) {
	tests := []struct {
		name      string
		sellPrice float64
		buyPrice  float64
		want      float64
	}{
		{"fifty percent markup", 15, 10, 50},
		{"hundred percent markup", 20, 10, 100},
		{"zero buy price", 100, 0, 0},
		{"repeating fraction rounds to two decimals", 10, 3, 233.33},
		{"selling below cost is negative", 5, 10, -50},
		{"equal prices", 10, 10, 0},
		{"zero sell price", 0, 10, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Margin(tt.sellPrice, tt.buyPrice); got != tt.want {
				t.Errorf("Margin(%v, %v) = %v, want %v", tt.sellPrice, tt.buyPrice, got, tt.want)
			}
		})
	}
}

// Property: for every positive buy price the margin matches the markup
// formula rounded to two decimals.
func TestProperty_MarginMatchesFormula(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("margin equals round2((sell-buy)/buy*100)", prop.ForAll(
		func(sell float64, buy float64) bool {
			got := Margin(sell, buy)
			want := math.Round((sell-buy)/buy*100*100) / 100
			return got == want
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0.01, 1e6),
	))

	properties.Property("zero buy price always yields zero", prop.ForAll(
		func(sell float64) bool {
			return Margin(sell, 0) == 0
		},
		gen.Float64Range(0, 1e6),
	))

	properties.TestingRun(t)
}
