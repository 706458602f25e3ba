// Package curve binds the toolkit's abstract Scalar/Point data model to a
// concrete prime-order group: BLS12-381 G1, via gnark-crypto.
//
// Scalars are held as math/big.Int reduced modulo Order rather than
// gnark-crypto's fr.Element. Points are gnark-crypto's G1Affine. Canonical
// wire encodings are fixed-width: 32 bytes little-endian for scalars, 48
// bytes compressed affine for points.
package curve

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/cockroachdb/errors"

	"github.com/anupsv/sigma-zkp/internal/pool"
)

// ScalarWidth and PointWidth are the canonical encoding widths for the
// BLS12-381 G1 binding.
const (
	ScalarWidth = 32
	PointWidth  = 48
)

// Order is the order of the BLS12-381 scalar field Fr, shared by G1 and G2.
var Order, _ = new(big.Int).SetString("52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// ErrPointMalformed is returned when a point fails decoding or the
// prime-order subgroup check.
var ErrPointMalformed = errors.New("curve: point malformed or not in subgroup")

// Scalar is an element of Fr.
type Scalar struct {
	v *big.Int
}

// NewScalar reduces x modulo Order and returns the resulting Scalar.
func NewScalar(x *big.Int) Scalar {
	return Scalar{v: new(big.Int).Mod(x, Order)}
}

// ScalarFromUint64 is a convenience constructor for small fixed scalars.
func ScalarFromUint64(x uint64) Scalar {
	return NewScalar(new(big.Int).SetUint64(x))
}

// RandomScalar draws a uniform element of Fr from rng.
//
// rng must supply enough bytes for randBigInt's oversample-by-64-bits,
// reduce-mod-Order scheme to make the reduction bias cryptographically
// negligible; there is no rejection sampling.
func RandomScalar(rng io.Reader) (Scalar, error) {
	n, err := randBigInt(rng, Order)
	if err != nil {
		return Scalar{}, errors.Wrap(err, "curve: sample random scalar")
	}
	return Scalar{v: n}, nil
}

// ScalarFromWideBytes reduces a wide (2*ScalarWidth) byte string modulo
// Order. Challenges must be derived this way: narrow reduction from exactly
// ScalarWidth bytes biases the output and breaks the soundness bound.
func ScalarFromWideBytes(wide []byte) Scalar {
	n := new(big.Int).SetBytes(wide)
	return Scalar{v: n.Mod(n, Order)}
}

// Bytes returns the canonical little-endian, fixed-width encoding.
func (s Scalar) Bytes() [ScalarWidth]byte {
	var out [ScalarWidth]byte
	be := s.v.Bytes()
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// ScalarFromBytes decodes a canonical little-endian encoding.
func ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarWidth {
		return Scalar{}, errors.Newf("curve: scalar encoding must be %d bytes, got %d", ScalarWidth, len(b))
	}
	be := make([]byte, ScalarWidth)
	for i, c := range b {
		be[ScalarWidth-1-i] = c
	}
	return NewScalar(new(big.Int).SetBytes(be)), nil
}

// Add returns s + t mod Order.
func (s Scalar) Add(t Scalar) Scalar {
	return NewScalar(new(big.Int).Add(s.v, t.v))
}

// Mul returns s * t mod Order.
func (s Scalar) Mul(t Scalar) Scalar {
	return NewScalar(new(big.Int).Mul(s.v, t.v))
}

// Neg returns -s mod Order.
func (s Scalar) Neg() Scalar {
	return NewScalar(new(big.Int).Neg(s.v))
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Equal reports whether s and t represent the same field element.
func (s Scalar) Equal(t Scalar) bool {
	return s.v.Cmp(t.v) == 0
}

// BigInt exposes the underlying value for callers that need to interoperate
// with gnark-crypto's ScalarMultiplication, which takes a *big.Int exponent.
func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

func (s Scalar) String() string {
	return s.v.String()
}

// Point is an element of the BLS12-381 G1 subgroup.
type Point struct {
	p bls12381.G1Affine
}

// Generator returns the standard G1 generator.
func Generator() Point {
	_, _, g1, _ := bls12381.Generators()
	return Point{p: g1}
}

// Identity returns the G1 identity element.
func Identity() Point {
	var p bls12381.G1Affine
	p.X.SetZero()
	p.Y.SetZero()
	return Point{p: p}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	var pj bls12381.G1Jac
	pj.FromAffine(&p.p)
	var qj bls12381.G1Jac
	qj.FromAffine(&q.p)
	pj.AddAssign(&qj)
	var out bls12381.G1Affine
	out.FromJacobian(&pj)
	return Point{p: out}
}

// Mul returns s*p.
func (p Point) Mul(s Scalar) Point {
	var pj bls12381.G1Jac
	pj.FromAffine(&p.p)
	pj.ScalarMultiplication(&pj, s.v)
	var out bls12381.G1Affine
	out.FromJacobian(&pj)
	return Point{p: out}
}

// Equal reports whether p and q encode the same group element.
func (p Point) Equal(q Point) bool {
	return p.p.Equal(&q.p)
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.p.IsInfinity()
}

// Bytes returns the canonical compressed affine encoding.
func (p Point) Bytes() [PointWidth]byte {
	var out [PointWidth]byte
	b := p.p.Bytes()
	copy(out[:], b[:])
	return out
}

// PointFromBytes decodes a canonical compressed affine encoding, rejecting
// any point that fails the curve or prime-order subgroup check.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != PointWidth {
		return Point{}, ErrPointMalformed
	}
	var aff bls12381.G1Affine
	if err := aff.Unmarshal(b); err != nil {
		return Point{}, errors.Mark(errors.Wrap(err, "curve: decode point"), ErrPointMalformed)
	}
	if !aff.IsInSubGroup() {
		return Point{}, ErrPointMalformed
	}
	return Point{p: aff}, nil
}

// G1Affine exposes the underlying gnark-crypto point for the hashtocurve
// package and any other collaborator that needs direct access.
func (p Point) G1Affine() bls12381.G1Affine {
	return p.p
}

// PointFromG1Affine wraps an already-validated gnark-crypto point. Callers
// that construct points via hash-to-curve (which always lands in the
// subgroup by construction) use this instead of round-tripping through
// PointFromBytes.
func PointFromG1Affine(aff bls12381.G1Affine) Point {
	return Point{p: aff}
}

// MultiScalarMul computes Σ scalars[i]*points[i]. Implemented as a direct
// accumulation rather than gnark-crypto's windowed MSM (which targets much
// larger batches); this toolkit's constraints and batch-verify aggregations
// are small (a handful of terms per constraint), so a simple loop is used
// rather than a tuned MSM call.
func MultiScalarMul(points []Point, scalars []Scalar) (Point, error) {
	if len(points) != len(scalars) {
		return Point{}, errors.Newf("curve: mismatched MSM lengths: %d points, %d scalars", len(points), len(scalars))
	}
	accJac := bls12381.G1Jac{}
	accJac.X.SetOne()
	accJac.Y.SetOne()
	accJac.Z.SetZero()
	for i := range points {
		if scalars[i].IsZero() || points[i].p.IsInfinity() {
			continue
		}
		var tmp bls12381.G1Jac
		tmp.FromAffine(&points[i].p)
		tmp.ScalarMultiplication(&tmp, scalars[i].v)
		accJac.AddAssign(&tmp)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&accJac)
	return Point{p: out}, nil
}

func randBigInt(rng io.Reader, max *big.Int) (*big.Int, error) {
	// Oversample by 64 bits so the final modular reduction's bias is
	// cryptographically negligible, without a rejection-sampling loop: an
	// already-uniform rng over a much larger range than Order makes straight
	// reduction safe here.
	byteLen := (max.BitLen() + 64 + 7) / 8
	buf := pool.GetBuffer(byteLen)
	defer pool.PutBuffer(buf)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(buf)
	return n.Mod(n, max), nil
}
