// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query normalises list-shaped input such as tag lists.
package query

import "strings"

// UniqueFold removes case-insensitive duplicates, keeping the first spelling.
func UniqueFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var res []string
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, v)
	}
	return res
}
