package services

import (
	"path/filepath"
	"sort"
	"strconv"
	"unicode"
)

// naturalLess compares strings in a way that treats numbers as numbers rather than characters
// For example: "file2" < "file10" when using naturalLess
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		// Skip leading spaces
		for i < len(s1) && unicode.IsSpace(rune(s1[i])) {
			i++
		}
		for j < len(s2) && unicode.IsSpace(rune(s2[j])) {
			j++
		}

		if i >= len(s1) || j >= len(s2) {
			break
		}

		if isDigit(s1[i]) && isDigit(s2[j]) {
			start1, start2 := i, j
			for i < len(s1) && isDigit(s1[i]) {
				i++
			}
			for j < len(s2) && isDigit(s2[j]) {
				j++
			}

			n1, err1 := strconv.ParseUint(s1[start1:i], 10, 64)
			n2, err2 := strconv.ParseUint(s2[start2:j], 10, 64)
			if err1 == nil && err2 == nil && n1 != n2 {
				return n1 < n2
			}
			// Overflowing runs fall back to comparing the digits as text
			if err1 != nil || err2 != nil {
				if a, b := s1[start1:i], s2[start2:j]; a != b {
					if len(a) != len(b) {
						return len(a) < len(b)
					}
					return a < b
				}
			}
		} else {
			if s1[i] != s2[j] {
				return s1[i] < s2[j]
			}
			i++
			j++
		}
	}

	return len(s1)-i < len(s2)-j || (len(s1)-i == len(s2)-j && s1 < s2)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// sortByName orders paths by their base name using natural ordering
func sortByName(paths []string) {
	sort.SliceStable(paths, func(a, b int) bool {
		return naturalLess(filepath.Base(paths[a]), filepath.Base(paths[b]))
	})
}
