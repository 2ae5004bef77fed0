package contacts

import (
	"slices"
	"strings"
)

// CompareGivenName orders contacts by given name, ignoring case. A missing
// given name sorts as the empty string.
func CompareGivenName(a, b Contact) int {
	return strings.Compare(strings.ToLower(a.GivenName), strings.ToLower(b.GivenName))
}

// SortByGivenName sorts list in place by CompareGivenName. The sort is
// stable, so contacts with equal keys keep their aggregation order.
func SortByGivenName(list []Contact) {
	slices.SortStableFunc(list, CompareGivenName)
}
