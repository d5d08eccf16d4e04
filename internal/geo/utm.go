package geo

import (
	"fmt"

	"github.com/tzneal/coordconv"
)

// UTM projects p onto its natural UTM zone. Latitudes outside the UTM band
// (84N to 80S) return an error from the converter.
func (p Position) UTM() (coordconv.UTMCoord, error) {
	return coordconv.DefaultUTMConverter.ConvertFromGeodetic(p.LatLng(), 0)
}

// HemisphereLetter renders a coordconv hemisphere as N or S.
func HemisphereLetter(h coordconv.Hemisphere) string {
	switch h {
	case coordconv.HemisphereNorth:
		return "N"
	case coordconv.HemisphereSouth:
		return "S"
	default:
		return "?"
	}
}

// FormatUTM renders a UTM coordinate as "10S 590517 4138297".
func FormatUTM(c coordconv.UTMCoord) string {
	return fmt.Sprintf("%d%s %.0f %.0f", c.Zone, HemisphereLetter(c.Hemisphere), c.Easting, c.Northing)
}
