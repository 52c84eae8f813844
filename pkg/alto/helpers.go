package alto

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// getAttrVal returns the value of an attribute by local name, or "" if absent
func getAttrVal(se xml.StartElement, name string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// rawGeometry collects the four geometry attributes verbatim
func rawGeometry(se xml.StartElement) RawGeometry {
	return RawGeometry{
		HPos:   getAttrVal(se, "HPOS"),
		VPos:   getAttrVal(se, "VPOS"),
		Width:  getAttrVal(se, "WIDTH"),
		Height: getAttrVal(se, "HEIGHT"),
	}
}

// parseGeometry validates raw attributes into a Geometry.
// With allowMissing set, absent attributes read as zero.
func parseGeometry(raw RawGeometry, allowMissing bool) (Geometry, error) {
	var g Geometry
	fields := []struct {
		name  string
		value string
		dst   *int
	}{
		{"HPOS", raw.HPos, &g.HPos},
		{"VPOS", raw.VPos, &g.VPos},
		{"WIDTH", raw.Width, &g.Width},
		{"HEIGHT", raw.Height, &g.Height},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			if allowMissing {
				continue
			}
			return g, fmt.Errorf("missing %s attribute", f.name)
		}
		n, err := ParseCoordinate(f.value)
		if err != nil {
			return g, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return g, nil
}

// ParseCoordinate converts an ALTO coordinate string to whole pixels.
// Decimal values are truncated toward zero; negative, NaN and infinite
// values are rejected.
func ParseCoordinate(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative coordinate %q", s)
	}
	if f > math.MaxInt32 {
		return 0, fmt.Errorf("coordinate %q out of range", s)
	}
	return int(math.Trunc(f)), nil
}
