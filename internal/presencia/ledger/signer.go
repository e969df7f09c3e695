package ledger

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

// Classification is the outcome of verifying one stored event.
type Classification string

const (
	ClassOK        Classification = "OK"
	ClassTampered  Classification = "TAMPERED"
	ClassUnsigned  Classification = "UNSIGNED"
	ClassMalformed Classification = "MALFORMED"
)

// Signer produces and verifies the per-event integrity digest: SHA-256 over
// the exact field concatenation plus the shared secret, hex-encoded.  The
// digest is byte-exact (even a trailing space added to a stored field flips
// it to TAMPERED), so writers must canonicalize fields (Canon) before
// signing and storing them.
//
// Anyone holding the secret can forge a digest, so this detects
// after-the-fact edits to the table, not a malicious secret holder.  The
// secret is injected at construction and never read from process globals.
type Signer struct {
	secret string
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: secret}
}

// Canon is the canonical form writers store and sign: trimmed, NFC
// normalized.  Applying it at write time keeps logically identical input
// (a pasted name with a stray space, a decomposed accent in José) from
// producing rows that differ only in invisible bytes.
func Canon(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Sign computes the digest over the fields exactly as given.
func (s *Signer) Sign(date, tm, employee, kind, device string) string {
	sum := sha256.Sum256([]byte(date + tm + employee + kind + device + s.secret))
	return hex.EncodeToString(sum[:])
}

// Verify classifies a stored event.
//
//   - MALFORMED: a required field is missing or unparseable; the row cannot
//     be checked at all.
//   - UNSIGNED: the signature column is empty.  Manual corrections are
//     inserted without a signature on purpose, so this is data, not an error.
//   - TAMPERED: the recomputed digest differs from the stored one.
//   - OK: digests match.
func (s *Signer) Verify(ev types.Event) Classification {
	if !wellFormed(ev) {
		return ClassMalformed
	}
	if ev.Signature == "" {
		return ClassUnsigned
	}
	want := s.Sign(ev.Date, ev.Time, ev.Employee, ev.Kind, ev.Device)
	if subtle.ConstantTimeCompare([]byte(want), []byte(ev.Signature)) == 1 {
		return ClassOK
	}
	return ClassTampered
}

func wellFormed(ev types.Event) bool {
	if strings.TrimSpace(ev.Employee) == "" {
		return false
	}
	if ev.Kind != types.KindArrival && ev.Kind != types.KindDeparture {
		return false
	}
	if _, err := time.Parse(DateLayout, ev.Date); err != nil {
		return false
	}
	if _, err := time.Parse(TimeLayout, ev.Time); err != nil {
		return false
	}
	return true
}
