package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47
$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2D
garbage line
$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74
$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2C
$GPGLL,3723.2475,N,12158.3416,W*77
`

func writeLog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "route.nmea")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_Text(t *testing.T) {
	path := writeLog(t, sampleLog)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{path}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "0 48.117300 11.516667 545.4\n")
	assert.Contains(t, out, "1 37.387458 -121.972360\n")
	assert.Contains(t, out, "lines: 6\n")
	assert.Contains(t, out, "positions: 2\n")
	assert.Contains(t, out, "skipped: 4\n")
	assert.Contains(t, out, "  malformed: 1\n")
	assert.Contains(t, out, "  checksum_mismatch: 1\n")
	assert.Contains(t, out, "  unsupported: 1\n")
	assert.Contains(t, out, "  invalid_field: 1\n")
	assert.Contains(t, out, "elev_m: 545.4..545.4\n")
	assert.Contains(t, stderr.String(), "route built")
}

func TestRun_JSONWithUTM(t *testing.T) {
	path := writeLog(t, sampleLog)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-f", "json", "--utm", "-l", "warn", path}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stderr.String())

	var doc routeJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Positions, 2)
	require.NotNil(t, doc.Positions[0].ElevM)
	assert.InDelta(t, 545.4, *doc.Positions[0].ElevM, 1e-9)
	assert.Nil(t, doc.Positions[1].ElevM)
	assert.True(t, strings.HasPrefix(doc.Positions[1].UTM, "10N "), doc.Positions[1].UTM)
	require.NotNil(t, doc.Summary)
	assert.Equal(t, 6, doc.Summary.Lines)
	assert.Equal(t, 2, doc.Summary.Positions)
	assert.Greater(t, doc.Summary.LengthM, 9_000_000.0)
}

func TestRun_NoSummaryAndMaxLines(t *testing.T) {
	path := writeLog(t, sampleLog)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--no-summary", "-n", "1", path}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Equal(t, "0 48.117300 11.516667 545.4\n", stdout.String())
}

func TestRun_MultipleFilesInOrder(t *testing.T) {
	a := writeLog(t, "$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2C\n")
	b := writeLog(t, "$GPGLL,3723.2475,S,12158.3416,E,161229.487,A*23\n")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--no-summary", a, b}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Equal(t, "0 37.387458 -121.972360\n1 -37.387458 121.972360\n", stdout.String())
}

func TestRun_EmptyLog(t *testing.T) {
	path := writeLog(t, "")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{path}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "positions: 0\n")
	assert.Contains(t, stdout.String(), "length_m: 0.0\n")
}

func TestRun_ConfigFile(t *testing.T) {
	logPath := writeLog(t, sampleLog)
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "input:\n  paths: ['" + logPath + "']\noutput:\n  format: json\n  summary: false\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-c", cfgPath}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var doc routeJSON
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Len(t, doc.Positions, 2)
	assert.Nil(t, doc.Summary)
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.nmea")}, &stdout, &stderr)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = run(context.Background(), []string{"--format", "gpx", "x"}, &stdout, &stderr)
	assert.EqualError(t, err, `output.format must be 'text' or 'json' (got "gpx")`)

	err = run(context.Background(), []string{"--source", "serial"}, &stdout, &stderr)
	assert.EqualError(t, err, "input.max_lines must be > 0 when input.source is 'serial'")

	err = run(context.Background(), []string{"--bogus"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestRun_OversizedLineKeepsRoute(t *testing.T) {
	body := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\n" +
		strings.Repeat("x", 70*1024) + "\n" +
		"$GPGLL,3723.2475,N,12158.3416,W,161229.487,A*2C\n"
	path := writeLog(t, body)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{path}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "0 48.117300 11.516667 545.4\n")
	assert.Contains(t, out, "positions: 1\n")
	assert.Contains(t, stderr.String(), "input ended early")
	assert.Contains(t, stderr.String(), "token too long")
}
