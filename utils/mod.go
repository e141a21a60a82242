package utils

import (
	"strconv"
	"strings"
)

// FindIndex returns the index of the first occurrence of item in slice,
// or -1 if it is absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// JoinInts formats ints separated by sep, e.g. JoinInts([]int{5, 1, 9}, " ")
// -> "5 1 9".
func JoinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
