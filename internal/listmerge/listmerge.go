// Package listmerge combines ordered string lists for layered build configs.
//
// Lists behave like ordered sets: membership is unique, order comes from the
// first time a value is seen across the merge inputs. A value prefixed with
// NegationMarker cancels the same value without the marker.
package listmerge

import (
	"slices"
	"strings"
)

// NegationMarker prefixes a value that cancels its unmarked counterpart.
const NegationMarker = "-"

// IsNegation reports whether v carries the negation marker.
func IsNegation(v string) bool {
	return strings.HasPrefix(v, NegationMarker)
}

// Negate returns v with the negation marker prepended.
func Negate(v string) string {
	return NegationMarker + v
}

// Merge concatenates primary and secondary, drops repeated values and orders
// the result by the first index at which each value occurs in the
// concatenation. "foo" and "-foo" are distinct values here.
//
// Neither input is modified and the result is never nil.
func Merge(primary, secondary []string) []string {
	merged := make([]string, 0, len(primary)+len(secondary))
	merged = append(merged, primary...)
	merged = append(merged, secondary...)

	firstSeen := make(map[string]int, len(merged))
	for i, v := range merged {
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
	}

	result := make([]string, 0, len(firstSeen))
	for v := range firstSeen {
		result = append(result, v)
	}
	slices.SortStableFunc(result, func(a, b string) int {
		return firstSeen[a] - firstSeen[b]
	})
	return result
}

// ResolveNegation cancels negations one at a time, in list order: for each
// entry -v, if both v and -v are still present, both are removed. Because
// earlier cancellations remove entries, a later negation may find its
// target already gone; ["a", "-a", "--a"] resolves to ["--a"]. A negation
// without a counterpart is kept as a literal entry. The order of the
// remaining values is preserved.
//
// list is expected to hold unique values, as Merge returns.
func ResolveNegation(list []string) []string {
	present := make(map[string]bool, len(list))
	for _, v := range list {
		present[v] = true
	}

	for _, v := range list {
		if !IsNegation(v) {
			continue
		}
		target := strings.TrimPrefix(v, NegationMarker)
		if present[target] && present[v] {
			delete(present, target)
			delete(present, v)
		}
	}

	result := make([]string, 0, len(list))
	for _, v := range list {
		if present[v] {
			result = append(result, v)
		}
	}
	return result
}

// MergeNegatable is ResolveNegation(Merge(primary, secondary)), the rule used
// for package lists.
func MergeNegatable(primary, secondary []string) []string {
	return ResolveNegation(Merge(primary, secondary))
}
