//go:build !linux

package source

import (
	"io"

	"go.bug.st/serial"
)

// OpenSerial opens a GPS receiver's serial port at the given baud, 8N1.
func OpenSerial(path string, baud int) (io.ReadCloser, error) {
	return serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}
