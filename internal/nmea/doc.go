// Package nmea decodes NMEA-0183 GPS positioning sentences.
//
// Decoding is layered and each layer can be used on its own:
//   - IsWellFormed checks the framing of one line ($GPxxx,...*HH)
//   - HasValidChecksum recomputes the XOR checksum
//   - Extract splits an accepted line into a type code and fields
//   - BuildPosition maps GLL, RMC and GGA fields onto a geo.Position
//
// Decode chains all four. Only the GPS talker ($GP) is accepted.
package nmea
