package draws

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed draw identity.
// Version suffix enables future encoding migration.
const fingerprintDomain = "bayesr2/draws/v1"

// Fingerprint computes a content fingerprint of the draws.
//
// The fingerprint is stable across platforms and process restarts:
// identical draws always fingerprint identically, so stored results can
// be traced back to the exact input that produced them.
//
// Encoding: SHA-256 over the domain prefix, the NFC-normalized family
// and residual-scale tags, the matrix dimensions, and the IEEE-754 bits
// of every value in row-major draw order. String tags are NFC normalized
// so fingerprints agree between platforms that disagree on Unicode
// normal form. Null separators prevent field boundary ambiguity.
func (d *Draws) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})

	writeTag(h, string(d.Family))
	writeTag(h, string(d.ResidualScale))

	var dims [16]byte
	binary.BigEndian.PutUint64(dims[0:8], uint64(d.NumDraws()))
	binary.BigEndian.PutUint64(dims[8:16], uint64(d.NumObs()))
	h.Write(dims[:])

	var buf [8]byte
	for _, row := range d.Fitted {
		for _, v := range row {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	for _, v := range d.Residual {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// writeTag writes an NFC-normalized string followed by a null separator.
func writeTag(h hash.Hash, s string) {
	h.Write([]byte(norm.NFC.String(s)))
	h.Write([]byte{0x00})
}
