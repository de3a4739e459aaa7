// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides forgiving string conversions for query parameters,
where a malformed value should fall back to a default instead of failing the
request.
*/
package convert

import "strconv"

// ToIntD parses str as an int, returning def when empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	return def
}

// ToBool parses "true"/"1"/"false"/"0"; anything else is false.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

// Round1 rounds v to one decimal place from its exact binary value, with
// exact halves going to the even digit. 2.25 becomes 2.2 and 2.35 becomes 2.4.
func Round1(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
