package docxaur

import (
	"math"
	"strconv"
	"strings"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// Layout measurements resolve to twips (twentieths of a point, "dxa" on the
// wire); drawing extents resolve to EMU (914400 per inch). Proportional
// table widths resolve to fiftieths of a percent out of a 5000 whole.
const (
	twipsPerInch = 1440.0
	twipsPerCm   = twipsPerInch / 2.54
	twipsPerMm   = twipsPerCm / 10
	twipsPerPt   = 20.0

	emuPerInch = 914400.0
	emuPerCm   = emuPerInch / 2.54
	emuPerMm   = emuPerCm / 10
	emuPerPt   = 12700.0
	emuPerPx   = 9525.0 // CSS pixel at 96 dpi

	pctWhole = 5000 // fiftieths of a percent
)

// roundHalfAway rounds to the nearest integer, ties away from zero.
func roundHalfAway(f float64) int {
	return int(math.Round(f))
}

// splitDimension separates the numeric magnitude from its unit tag.
// "2.5cm" -> (2.5, "cm", true). The unit tag may be empty.
func splitDimension(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	num, unit := s[:i], strings.ToLower(strings.TrimSpace(s[i:]))
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, "", false
	}
	return val, unit, true
}

// twips converts an absolute dimension string to twips. Accepted unit tags
// are cm, mm, in and pt; a bare number is taken as twips. In lenient mode an
// unparsable input or unknown unit yields def; in strict mode it yields
// InvalidDimensionError.
func twips(s string, strict bool, def int) (int, error) {
	val, unit, ok := splitDimension(s)
	if ok {
		switch unit {
		case "cm":
			return roundHalfAway(val * twipsPerCm), nil
		case "mm":
			return roundHalfAway(val * twipsPerMm), nil
		case "in":
			return roundHalfAway(val * twipsPerInch), nil
		case "pt":
			return roundHalfAway(val * twipsPerPt), nil
		case "":
			return roundHalfAway(val), nil
		}
	}
	if strict {
		return 0, NewInvalidDimensionError(s)
	}
	return def, nil
}

// emu converts a dimension string to EMU. In addition to the absolute units
// it accepts px, which is only meaningful for image and shape extents.
func emu(s string, strict bool, def int64) (int64, error) {
	val, unit, ok := splitDimension(s)
	if ok {
		switch unit {
		case "cm":
			return int64(math.Round(val * emuPerCm)), nil
		case "mm":
			return int64(math.Round(val * emuPerMm)), nil
		case "in":
			return int64(math.Round(val * emuPerInch)), nil
		case "pt":
			return int64(math.Round(val * emuPerPt)), nil
		case "px":
			return int64(math.Round(val * emuPerPx)), nil
		}
	}
	if strict {
		return 0, NewInvalidDimensionError(s)
	}
	return def, nil
}

// resolveWidth resolves a table or column width declaration to its wire
// representation. A trailing percent sign yields a proportional width
// (value x 50 out of 5000); anything else resolves through the absolute
// converter to dxa. Each declaration resolves to exactly one kind.
func resolveWidth(s string, strict bool, def int) (ooxml.Width, error) {
	if val, unit, ok := splitDimension(s); ok && unit == "%" {
		return ooxml.Width{Type: "pct", Val: roundHalfAway(val * 50)}, nil
	}
	tw, err := twips(s, strict, def)
	if err != nil {
		return ooxml.Width{}, err
	}
	return ooxml.Width{Type: "dxa", Val: tw}, nil
}
