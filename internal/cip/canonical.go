// Package cip normalizes CIP (Classification of Instructional Programs)
// codes into the canonical "NN.NNNN" form used throughout the datasets.
package cip

import (
	"regexp"
	"strings"
)

// canonicalRe matches a full 6-digit-equivalent CIP code, e.g. "14.0903".
var canonicalRe = regexp.MustCompile(`^\d{2}\.\d{4}$`)

// subfamilyRe matches a 4-digit rollup fragment, e.g. "14.09".
var subfamilyRe = regexp.MustCompile(`^\d{2}\.\d{2}$`)

// Canonical converts CIP variants into the canonical "NN.NNNN" format:
//
//	"14"      -> "14.0000"
//	"14.09"   -> "14.0900"
//	"14.0903" -> "14.0903"
//	"14.9"    -> "14.9000"
//
// Bracket/paren wrappers sometimes used by NCES for moved/deleted codes
// ("[14.0901]") are stripped first. An empty input returns "". Input that
// is not code-shaped at all is returned unchanged; callers treat any
// non-canonical result as free-text.
//
// Partially specified right segments are padded with trailing zeros, so a
// dropped trailing zero ("14.9" for "14.90") still lands in the intended
// subfamily.
func Canonical(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	s = strings.TrimSpace(strings.Trim(s, "[]()"))
	if s == "" {
		return ""
	}

	if !strings.Contains(s, ".") {
		if len(s) == 2 && isDigits(s) {
			return s + ".0000"
		}
		return s
	}

	left, right, _ := strings.Cut(s, ".")
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)

	if len(left) != 2 || !isDigits(left) || !isDigits(right) {
		return s
	}

	switch len(right) {
	case 2:
		// 4-digit rollup: "14.09" -> "14.0900"
		return left + "." + right + "00"
	case 4:
		// already a full 6-digit program code
		return left + "." + right
	case 1, 3:
		return left + "." + right + strings.Repeat("0", 4-len(right))
	default:
		return s
	}
}

// Family returns the 2-digit family prefix of a canonical code ("14.0900" -> "14").
func Family(code string) string {
	if code == "" {
		return ""
	}
	fam, _, _ := strings.Cut(code, ".")
	return fam
}

// IsCanonical reports whether s is a full 6-digit-equivalent code ("NN.NNNN").
func IsCanonical(s string) bool {
	return canonicalRe.MatchString(s)
}

// IsSubfamily reports whether s is a 4-digit rollup fragment ("NN.NN").
func IsSubfamily(s string) bool {
	return subfamilyRe.MatchString(s)
}

// IsFamilyCode reports whether s is a canonical code addressing a whole
// 2-digit family, i.e. it ends in ".0000".
func IsFamilyCode(s string) bool {
	return IsCanonical(s) && strings.HasSuffix(s, ".0000")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
