package core

import "github.com/shopspring/decimal"

// Price aggregation uses exact decimal arithmetic throughout. The basket total
// is recomputed after every mutation, so float drift would compound across
// long add/decrease sessions; decimals keep a full add-then-decrease cycle at
// exactly the prior total.

// LineTotal computes the monetary value of one basket line: the product's
// price times the line quantity. An unresolvable or invalid price values the
// line at zero.
func LineTotal(line BasketLine, product Product) decimal.Decimal {
	return product.Price.Decimal().Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// BasketTotal sums LineTotal over every line whose product resolves in the
// index. Lines whose product id is missing cannot price themselves and are
// skipped rather than aborting the aggregate.
func BasketTotal(state BasketState, products map[string]Product) decimal.Decimal {
	total := decimal.Zero
	for _, line := range state {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(LineTotal(line, product))
	}
	return total
}

// FormatTotal renders a total for display with two-decimal rounding.
// The aggregate itself stays exact; rounding happens only at the edge.
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}
