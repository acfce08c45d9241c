package core

import "strings"

// FilterCriteria narrows the product grid. The zero value is the identity
// filter: empty SearchText matches everything, empty CategoryID keeps all
// categories, a nil Predicate is always true.
type FilterCriteria struct {
	SearchText string
	CategoryID string

	// Predicate is an optional extra product test the UI supplies (price
	// range, in-stock only). It applies conjunctively with the built-in
	// predicates.
	Predicate func(Product) bool
}

// FilterProducts derives the filtered product view. It is a pure
// recomputation over the full collection on every call, not an iterator with
// position: the UI re-derives it on each keystroke or category tap.
//
// Category, text, and custom predicates apply conjunctively. The text
// predicate matches the trimmed query case-insensitively as a substring of
// name or description; a missing description counts as an empty string, never
// a match failure. Output order is input order - filtering never reorders.
//
// A panic while evaluating predicates (a caller-supplied Predicate over a
// malformed product entry) degrades that recomputation to an empty result
// instead of propagating into the render loop.
func FilterProducts(products []Product, criteria FilterCriteria) (result []Product) {
	defer func() {
		if r := recover(); r != nil {
			result = []Product{}
		}
	}()

	query := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	result = make([]Product, 0, len(products))
	for _, p := range products {
		if criteria.CategoryID != "" && p.CategoryID != criteria.CategoryID {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if criteria.Predicate != nil && !criteria.Predicate(p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// matchesQuery reports whether the lowercased query appears in the product's
// name or description. query must already be trimmed and lowercased.
func matchesQuery(p Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), query)
}
