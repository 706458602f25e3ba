// Package transcript implements a duplex-style Fiat-Shamir transcript
// oracle. It absorbs domain-separated, length-prefixed byte strings and
// squeezes pseudorandom challenge bytes, and derives a
// deterministic-but-externally-seeded RNG for prover blinding factors.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/cockroachdb/errors"
)

func newSHA256() hash.Hash {
	return sha256.New()
}

// Transcript is a sponge-backed, append-only transcript. Absorbing never
// destroys state; squeezing a challenge forks the sponge (via Clone) so the
// live transcript keeps accumulating while the fork produces output bytes,
// then re-absorbs those bytes so the live state ratchets forward.
type Transcript struct {
	sponge sha3.ShakeHash
}

// New creates a transcript bound to the given application label.
func New(label []byte) *Transcript {
	t := &Transcript{sponge: sha3.NewShake256()}
	t.AppendMessage([]byte("transcript-label"), label)
	return t
}

// AppendMessage absorbs a domain-separated label and its associated bytes.
func (t *Transcript) AppendMessage(label, data []byte) {
	writeFramed(t.sponge, label)
	writeFramed(t.sponge, data)
}

// ChallengeBytes squeezes len(out) pseudorandom bytes bound to label.
func (t *Transcript) ChallengeBytes(label []byte, out []byte) {
	writeFramed(t.sponge, label)
	fork := t.sponge.Clone()
	if _, err := fork.Read(out); err != nil {
		// sha3's ShakeHash.Read never returns an error; a panic here would
		// indicate a broken clone, not a recoverable transcript state.
		panic(errors.Wrap(err, "transcript: squeeze challenge bytes"))
	}
	// Re-absorb the produced output into the live sponge so that two
	// challenges squeezed under the same label still diverge.
	t.sponge.Write(out)
}

// Clone returns an independent copy of the transcript's current state. Used
// by the batch verifier, which needs one live transcript per proof instance
// but wants to share the setup that preceded instance-specific absorption.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{sponge: t.sponge.Clone()}
}

// RngBuilder accumulates witness-derived key material before finalizing a
// transcript-seeded RNG.
type RngBuilder struct {
	ikm []byte
}

// BuildRng starts a new RngBuilder seeded with the transcript's current
// state, so the derived RNG is bound to everything absorbed so far (the
// domain label and every allocated variable's binding).
func (t *Transcript) BuildRng() *RngBuilder {
	seed := make([]byte, 64)
	fork := t.sponge.Clone()
	if _, err := fork.Read(seed); err != nil {
		panic(errors.Wrap(err, "transcript: seed rng builder"))
	}
	return &RngBuilder{ikm: seed}
}

// RekeyWithWitnessBytes folds a labeled secret value into the RNG seed. The
// prover calls this once per allocated scalar, in allocation order, before
// finalizing.
func (b *RngBuilder) RekeyWithWitnessBytes(label, witness []byte) *RngBuilder {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(label)))
	b.ikm = append(b.ikm, lenBuf[:]...)
	b.ikm = append(b.ikm, label...)
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(witness)))
	b.ikm = append(b.ikm, lenBuf[:]...)
	b.ikm = append(b.ikm, witness...)
	return b
}

// Finalize mixes externalRng-supplied entropy into the accumulated witness
// material and returns a deterministic stream derived from both. If
// externalRng is weak or repeats, the witness binding still randomizes the
// output across distinct witnesses; if the witness repeats (e.g. a proof is
// replayed with the same secret), fresh entropy still randomizes the nonce.
// Neither input alone is trusted.
func (b *RngBuilder) Finalize(externalRng io.Reader) (io.Reader, error) {
	entropy := make([]byte, 32)
	if _, err := io.ReadFull(externalRng, entropy); err != nil {
		return nil, errors.Wrap(err, "transcript: read external entropy")
	}
	ikm := make([]byte, 0, len(b.ikm)+len(entropy))
	ikm = append(ikm, b.ikm...)
	ikm = append(ikm, entropy...)
	return hkdf.New(newSHA256, ikm, nil, []byte("sigma-zkp transcript rng v1")), nil
}

func writeFramed(w io.Writer, data []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	w.Write(lenBuf[:])
	w.Write(data)
}
