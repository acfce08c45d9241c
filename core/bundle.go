package core

import "strconv"

// ResolveBundleSize derives the unit bundle size for a catalog product: the
// increment by which every basket add and decrease moves its quantity. A label
// like "x6" or "6-pack" yields 6; no label, or a label with no digits, yields 1.
//
// Only catalog products are resolved here. A basket line carries the bundle
// size that was snapshotted onto it when it was first added, and that snapshot
// always wins over the product's current label - historical basket math stays
// stable even when product metadata changes.
//
// The first run of decimal digits in the label decides. Labels like
// "Pack of 2 x 6" therefore resolve to 2; the behavior is preserved as found.
func ResolveBundleSize(p Product) int {
	if n, ok := firstDigitRun(p.QuantityLabel); ok {
		return n
	}
	return 1
}

// firstDigitRun parses the first contiguous run of ASCII digits in s as a
// base-10 integer. Returns ok=false when s has no digits or when the run
// parses to a value below 1.
func firstDigitRun(s string) (int, bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			return parseRun(s[start:i])
		}
	}
	if start >= 0 {
		return parseRun(s[start:])
	}
	return 0, false
}

func parseRun(run string) (int, bool) {
	n, err := strconv.Atoi(run)
	if err != nil || n < 1 {
		// Overflowing or zero-valued runs degrade to single units.
		return 0, false
	}
	return n, true
}
