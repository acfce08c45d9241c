package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBasketTotal_BundlePricing(t *testing.T) {
	paleAle := Product{ID: "1", Name: "Pale Ale", Price: "15.88", QuantityLabel: "x6"}
	index := ProductIndex([]Product{paleAle})
	basket := NewBasketStore()

	basket.Add(paleAle)
	if got := FormatTotal(BasketTotal(basket.State(), index)); got != "95.28" {
		t.Errorf("total after one add = %s, want 95.28", got)
	}

	basket.Add(paleAle)
	if got := FormatTotal(BasketTotal(basket.State(), index)); got != "190.56" {
		t.Errorf("total after two adds = %s, want 190.56", got)
	}

	basket.Decrease(paleAle.ID)
	if got := FormatTotal(BasketTotal(basket.State(), index)); got != "95.28" {
		t.Errorf("total after decrease = %s, want 95.28", got)
	}

	basket.Decrease(paleAle.ID)
	if got := FormatTotal(BasketTotal(basket.State(), index)); got != "0.00" {
		t.Errorf("total after final decrease = %s, want 0.00", got)
	}
	if basket.Len() != 0 {
		t.Errorf("basket len = %d, want 0", basket.Len())
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name  string
		price Price
		qty   int
		want  string
	}{
		{"simple", "3.49", 2, "6.98"},
		{"bundle", "15.88", 6, "95.28"},
		{"zero quantity", "3.49", 0, "0"},
		{"invalid price values line at zero", "free!", 4, "0"},
		{"negative price values line at zero", "-2.00", 4, "0"},
		{"empty price", "", 3, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := BasketLine{ProductID: "p", Quantity: tt.qty, BundleSize: 1}
			got := LineTotal(line, Product{ID: "p", Price: tt.price})
			if got.String() != tt.want {
				t.Errorf("LineTotal() = %s, want %s", got.String(), tt.want)
			}
		})
	}
}

func TestBasketTotal_SkipsUnresolvableLines(t *testing.T) {
	index := ProductIndex([]Product{{ID: "1", Price: "2.50"}})
	state := BasketState{
		{ProductID: "1", Quantity: 2, BundleSize: 1},
		{ProductID: "ghost", Quantity: 100, BundleSize: 1},
	}
	if got := FormatTotal(BasketTotal(state, index)); got != "5.00" {
		t.Errorf("total = %s, want 5.00 (unresolvable line skipped)", got)
	}
}

func TestBasketTotal_NoFloatDrift(t *testing.T) {
	// 0.10 is not representable in binary floating point; summed many times it
	// drifts. Exact decimals must not.
	p := Product{ID: "1", Price: "0.10"}
	index := ProductIndex([]Product{p})
	state := BasketState{{ProductID: "1", Quantity: 1000, BundleSize: 1}}

	if got := BasketTotal(state, index); !got.Equal(decimal.RequireFromString("100")) {
		t.Errorf("total = %s, want exactly 100", got.String())
	}
}

// One add followed by one decrease returns the total to exactly its prior
// value, no matter how long the session has run.
func TestBasketTotal_AddDecreaseCycleIsExact(t *testing.T) {
	products := []Product{
		{ID: "1", Price: "15.88", QuantityLabel: "x6"},
		{ID: "2", Price: "3.49"},
		{ID: "3", Price: "0.07"},
	}
	index := ProductIndex(products)
	basket := NewBasketStore()
	for _, p := range products {
		basket.Add(p)
	}

	for i := 0; i < 500; i++ {
		p := products[i%len(products)]
		before := BasketTotal(basket.State(), index)
		basket.Add(p)
		basket.Decrease(p.ID)
		after := BasketTotal(basket.State(), index)
		if !before.Equal(after) {
			t.Fatalf("cycle %d: total drifted from %s to %s", i, before.String(), after.String())
		}
	}
}
