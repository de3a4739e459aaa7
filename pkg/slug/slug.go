// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode text into lowercase ASCII tokens that are
// safe in file names and URLs.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// From strips accents, lowercases, and joins the remaining ASCII letter and digit
// runs with single hyphens. Text without any ASCII alphanumerics yields "".
//
//	From("Café Noir: Vol 2") // "cafe-noir-vol-2"
func From(s string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, transform.RemoveFunc(isMark)), s)
	if err != nil {
		stripped = s
	}

	return strings.Trim(separators.ReplaceAllString(strings.ToLower(stripped), "-"), "-")
}

func isMark(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
