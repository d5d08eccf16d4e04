package source

import (
	"fmt"
	"os"
)

// DefaultBaud is the NMEA-0183 standard line rate.
const DefaultBaud = 4800

// AutoDetectDevice returns the first USB serial device present, or "".
// GPS pucks typically appear as /dev/ttyACM* (CDC) or /dev/ttyUSB*
// (USB-serial bridge).
func AutoDetectDevice() string {
	candidates := []string{}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyACM%d", i))
	}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, fmt.Sprintf("/dev/ttyUSB%d", i))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
