// Package maths provides small numeric helpers which work for any ordered type.
package maths

import "golang.org/x/exp/constraints"

// Min returns the smallest of the given values.
func Min[T constraints.Ordered](a T, rest ...T) T {
	for _, v := range rest {
		if v < a {
			a = v
		}
	}

	return a
}

// Max returns the largest of the given values.
func Max[T constraints.Ordered](a T, rest ...T) T {
	for _, v := range rest {
		if v > a {
			a = v
		}
	}

	return a
}

