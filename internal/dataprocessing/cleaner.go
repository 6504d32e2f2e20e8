package dataprocessing

import (
	"strconv"
	"strings"
)

// Cleaning rules for scanner export cells. Every function returns nil for
// text that fails all conversion rules; a missing value is the sentinel, a
// substituted zero would poison rankings downstream.

// CleanPercent converts percent-change text such as "+4.25%" or "-1,203.5%"
// into its decimal value. A leading "+" and thousands separators are
// tolerated; the trailing "%" is optional.
func CleanPercent(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return nil
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}

// CleanVolume converts volume text into an absolute share count. A
// case-insensitive K/M/B suffix scales by 10^3, 10^6 or 10^9; plain numeric
// strings convert directly.
func CleanVolume(s string) *float64 {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if s == "" {
		return nil
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1e3
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1e6
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		multiplier = 1e9
		s = strings.TrimSuffix(s, "B")
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	val *= multiplier
	return &val
}

// CleanRatio converts relative-volume text into a decimal ratio.
func CleanRatio(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}
