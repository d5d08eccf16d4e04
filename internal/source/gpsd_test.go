package source

import (
	"bufio"
	"context"
	"net"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialGPSD_RequestsNMEAAndStreamsLines(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	gotWatch := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		watch, _ := bufio.NewReader(conn).ReadString('\n')
		gotWatch <- watch
		_, _ = conn.Write([]byte("{\"class\":\"VERSION\"}\r\n$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2C\r\n"))
	}()

	conn, err := DialGPSD(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	lines := slices.Collect(NewReader(conn).Lines())
	assert.Equal(t, "?WATCH={\"enable\":true,\"nmea\":true}\n", <-gotWatch)
	assert.Equal(t, []string{
		"{\"class\":\"VERSION\"}",
		"$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2C",
	}, lines)
}

func TestDialGPSD_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = DialGPSD(context.Background(), addr)
	assert.Error(t, err)
}
