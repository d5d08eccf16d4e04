package nmea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	pos, err := Decode(gllLine)
	require.NoError(t, err)
	assert.InDelta(t, 37.387458, pos.Latitude(), 1e-6)
	assert.InDelta(t, -121.972360, pos.Longitude(), 1e-6)

	pos, err = Decode(ggaLine)
	require.NoError(t, err)
	elev, ok := pos.Elevation()
	require.True(t, ok)
	assert.InDelta(t, 545.4, elev, 1e-9)
}

func TestDecode_Failures(t *testing.T) {
	var fe *InvalidFieldError
	var ue *UnsupportedSentenceTypeError

	_, err := Decode("not a sentence")
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Decode(strings.Replace(gllLine, "*2C", "*2D", 1))
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = Decode("$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74")
	assert.ErrorAs(t, err, &ue)

	_, err = Decode("$GPGLL,3723.2475,N,12158.3416,W*77")
	assert.ErrorAs(t, err, &fe)

	_, err = Decode("$GPGLL,3723.2475,X,12158.3416,W,161229.487,A*3A")
	assert.ErrorAs(t, err, &fe)
}
