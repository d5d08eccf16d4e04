package source

import (
	"context"
	"net"
	"strings"
	"time"
)

const DefaultGPSDAddr = "127.0.0.1:2947"

// DialGPSD connects to gpsd over TCP and asks it to relay the receiver's raw
// NMEA sentences. gpsd also sends a few JSON status lines (VERSION, DEVICES,
// WATCH) first; they are not sentences and are skipped by the decoder.
func DialGPSD(ctx context.Context, addr string) (net.Conn, error) {
	if strings.TrimSpace(addr) == "" {
		addr = DefaultGPSDAddr
	}
	d := &net.Dialer{Timeout: 2 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write([]byte("?WATCH={\"enable\":true,\"nmea\":true}\n")); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
