package validate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reUsername = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)
	reSort     = regexp.MustCompile(`^-?(price|year)$`)
)

// ID parses a positive integer identifier (car/brand/model ids).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Year parses a positive listing year. Malformed input reads as absent.
func Year(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 9999 {
		return 0, false
	}
	return n, true
}

// Price parses a non-negative price and rounds it to two decimals.
func Price(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}

// Sort accepts only the sort tokens the list page offers.
func Sort(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reSort.MatchString(s)
}

func EngineType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "petrol", "diesel", "hybrid", "electric":
		return s, true
	}
	return "", false
}

func Transmission(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "manual", "automatic", "cvt", "dct":
		return s, true
	}
	return "", false
}

// Page clamps the page query param to a sane lower bound.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Password enforces a simple strength window for login and registration.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
