// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"regexp"
	"strings"
)

// Symbols are used as storage keys, keep them file name safe.
var symbolRegex = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

func NormalizeSymbol(s string) string {
	return strings.ToUpper(symbolRegex.ReplaceAllString(strings.TrimSpace(s), "_"))
}

func CountDigits(v int64) int {
	var count int
	for ; v != 0; v /= 10 {
		count++
	}
	return count
}

func IndexOf[T comparable](s []T, e T) int {
	for i, v := range s {
		if v == e {
			return i
		}
	}
	return -1
}
