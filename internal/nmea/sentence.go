package nmea

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	talkerPrefix = "$GP"
	typeCodeLen  = 3
	// "$GP" + type code + "*HH"
	minSentenceLen = len(talkerPrefix) + typeCodeLen + 3
)

// SentenceData is a sentence split into its type code and ordered fields.
// Empty fields are kept so field indexes line up with the sentence schema.
type SentenceData struct {
	Type   string
	Fields []string
}

// IsWellFormed reports whether line is framed as a single GPS sentence:
// "$GP", a three letter uppercase type code, optional comma separated fields
// and a trailing "*HH" checksum. The checksum value itself is not verified.
func IsWellFormed(line string) bool {
	if !strings.HasPrefix(line, talkerPrefix) {
		return false
	}
	if len(line) < len(talkerPrefix)+typeCodeLen {
		return false
	}
	for i := len(talkerPrefix); i < len(talkerPrefix)+typeCodeLen; i++ {
		if line[i] < 'A' || line[i] > 'Z' {
			return false
		}
	}
	if len(line) < minSentenceLen {
		return false
	}
	tail := line[len(line)-3:]
	if tail[0] != '*' || !isHexDigit(tail[1]) || !isHexDigit(tail[2]) {
		return false
	}

	body := line[len(talkerPrefix)+typeCodeLen : len(line)-3]
	if body == "" {
		return true
	}
	if body[0] != ',' {
		return false
	}
	return !strings.ContainsAny(body[1:], "$*")
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Checksum is the running XOR of every byte of payload.
func Checksum(payload string) byte {
	ck := byte(0)
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return ck
}

// AppendChecksum frames payload (everything between '$' and '*') as a
// complete sentence with its checksum.
func AppendChecksum(payload string) string {
	return fmt.Sprintf("$%s*%02X", payload, Checksum(payload))
}

// HasValidChecksum recomputes the checksum over the bytes between '$' and the
// final '*' and compares it, case-insensitively, with the two hex digits
// after the '*'. Lines without both delimiters are reported invalid.
func HasValidChecksum(line string) bool {
	start := strings.IndexByte(line, '$')
	star := strings.LastIndexByte(line, '*')
	if start == -1 || star <= start {
		return false
	}
	ck := line[star+1:]
	if len(ck) != 2 {
		return false
	}
	want, err := hex.DecodeString(ck)
	if err != nil || len(want) != 1 {
		return false
	}
	return Checksum(line[start+1:star]) == want[0]
}

// Extract splits a well-formed, checksum-valid line into its type code and
// fields. Field boundaries come only from the text between the type code and
// the final '*'. A line that violates the precondition yields an empty
// SentenceData, which BuildPosition rejects.
func Extract(line string) SentenceData {
	typeStart := len(talkerPrefix)
	typeEnd := typeStart + typeCodeLen
	star := strings.LastIndexByte(line, '*')
	if len(line) < typeEnd || star < typeEnd {
		return SentenceData{}
	}

	out := SentenceData{Type: line[typeStart:typeEnd]}
	body := line[typeEnd:star]
	if body == "" {
		return out
	}
	out.Fields = strings.Split(strings.TrimPrefix(body, ","), ",")
	return out
}
