// Package overlay formats the diagnostic text drawn over the dial.
package overlay

import (
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/sundial/pkg/dial"
)

// TabWidth is the column stop used when a renderer cannot draw tabs.
const TabWidth = 4

// Lines returns the orientation line and the location line.
// Orientation is shown in whole degrees; coordinates with single precision.
func Lines(in dial.Input) []string {
	o := in.Orientation
	orientation := "Azimuth: " + strconv.Itoa(int(o.Azimuth)) +
		"\tPitch: " + strconv.Itoa(int(o.Pitch)) +
		"\tRoll: " + strconv.Itoa(int(o.Roll))

	l := in.Location
	location := "Latitude: " + formatCoord(l.Latitude) +
		"\tLongitude: " + formatCoord(l.Longitude)

	return []string{orientation, location}
}

// formatCoord prints v at single precision the way the phone build does:
// shortest digits, always a fractional part, and E notation outside
// [1e-3, 1e7), as in "0.0", "45.0" and "1.0E-4".
func formatCoord(v float64) string {
	f := float32(v)
	switch {
	case math.IsNaN(float64(f)):
		return "NaN"
	case math.IsInf(float64(f), 1):
		return "Infinity"
	case math.IsInf(float64(f), -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(float64(f)) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e-3 && abs < 1e7 {
		return withFraction(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}

	s := strconv.FormatFloat(float64(f), 'E', -1, 32)
	mant, exp, _ := strings.Cut(s, "E")
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return withFraction(mant) + "E" + strconv.Itoa(e)
}

func withFraction(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// ExpandTabs replaces tabs with spaces up to the next multiple of width.
func ExpandTabs(s string, width int) string {
	if width <= 0 || !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
