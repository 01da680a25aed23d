// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package internal

// Unique returns s without repeated elements, keeping the first occurrence of each.
func Unique[T comparable](s []T) []T {
	in := make(map[T]struct{}, len(s))
	result := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := in[v]; !ok {
			in[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
