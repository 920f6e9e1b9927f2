// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package properties

import (
	"log"
	"strconv"
	"strings"
)

// SetPositive stores value in n if it is a positive integer. Other values are
// logged and n keeps its previous value.
func SetPositive(n *int, key, value string) bool {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v <= 0 {
		log.Printf("ignoring invalid value %q of property %s", value, key)
		return false
	}
	*n = v
	return true
}
