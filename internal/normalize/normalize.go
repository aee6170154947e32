// Package normalize normalizes player names for lookups, so "EL PIPA "
// and "el pipa" find the same player. Case folding is Unicode-aware,
// so "Straße" and "STRASSE" fold to the same key too.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
)

func Name(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
