package groundlink

import (
	"sync"

	"github.com/pkg/errors"
)

// rsMax is the GF(2^8) symbol limit: a single codeword may not exceed
// 255 data+parity positions.
const rsMax = 255

// genPolyCache caches the Reed-Solomon generator polynomial for a given
// parity count m. The polynomial g(x) = product_{i=0}^{m-1}(x - alpha^i)
// depends only on m, not on gSize, so every group shape sharing a parity
// count reuses the same cached slice.
type genPolyCache struct {
	mu    sync.Mutex
	polys map[int][]byte
}

var globalGenPolys = &genPolyCache{polys: make(map[int][]byte)}

func (c *genPolyCache) get(m int) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if g, ok := c.polys[m]; ok {
		return g
	}
	g := buildGeneratorPoly(m)
	c.polys[m] = g
	return g
}

// buildGeneratorPoly returns g(x) = product_{i=0}^{m-1} (x - alpha^i),
// alpha = gfGenerator, coefficients ordered highest-degree first with an
// implicit leading 1. This is the classical systematic Reed-Solomon
// generator polynomial (fcr=0, generator=2) that original_source's
// reedsolo-based encoder also builds from its library defaults.
func buildGeneratorPoly(m int) []byte {
	g := []byte{1}
	for i := 0; i < m; i++ {
		g = gfPolyMulBinomial(g, gfPow(gfGenerator, i))
	}
	return g
}

// gfPolyMulBinomial multiplies polynomial g (highest degree first) by
// (x - root); subtraction is XOR in GF(2^8), so this is (x + root).
func gfPolyMulBinomial(g []byte, root byte) []byte {
	out := make([]byte, len(g)+1)
	copy(out, g)
	for i := len(g) - 1; i >= 0; i-- {
		out[i+1] ^= gfMul(g[i], root)
	}
	return out
}

// rsEncodeColumn produces the m parity symbols for one codeword column
// via systematic encoding: the parity is the remainder of msg(x)*x^m
// divided by the generator polynomial, computed by synthetic (LFSR-style)
// division rather than matrix multiplication. msg must have length gSize;
// the result has length m.
func rsEncodeColumn(msg []byte, gSize, m int) ([]byte, error) {
	if gSize <= 0 || m <= 0 || gSize+m > rsMax {
		return nil, ErrNoCodec
	}
	if len(msg) != gSize {
		return nil, errors.Errorf("groundlink: message length %d, want %d", len(msg), gSize)
	}

	gen := globalGenPolys.get(m)
	work := make([]byte, gSize+m)
	copy(work, msg)

	for i := 0; i < gSize; i++ {
		coef := work[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(gen); j++ {
			work[i+j] ^= gfMul(coef, gen[j])
		}
	}

	parity := make([]byte, m)
	copy(parity, work[gSize:])
	return parity, nil
}

// rsDecodeColumn reconstructs the gSize data symbols of one codeword
// column. codeword has length gSize+m; present[i] is false for positions
// that must be treated as erasures. It is the caller's responsibility to
// not mark known-zero padding positions as erasures (see decoder.go).
func rsDecodeColumn(codeword []byte, present []bool, gSize, m int) ([]byte, error) {
	if gSize <= 0 || m <= 0 || gSize+m > rsMax {
		return nil, ErrNoCodec
	}
	n := gSize + m
	if len(codeword) != n || len(present) != n {
		return nil, errors.Errorf("groundlink: codeword/present length mismatch, want %d", n)
	}

	var erased []int
	for i, ok := range present {
		if !ok {
			erased = append(erased, i)
		}
	}
	if len(erased) > m {
		return nil, ErrTooManyErasures
	}

	out := make([]byte, gSize)
	copy(out, codeword[:gSize])
	if len(erased) == 0 {
		return out, nil
	}

	solved, err := solveErasures(codeword, erased, n)
	if err != nil {
		return nil, err
	}
	for idx, pos := range erased {
		if pos < gSize {
			out[pos] = solved[idx]
		}
	}
	return out, nil
}

// solveErasures recovers the symbols at erased positions of an n-symbol
// systematic codeword. A systematic codeword built from a degree-m
// generator polynomial evaluates to zero at each of its m roots
// alpha^0..alpha^(m-1); taking the first len(erased) of those roots gives
// a square linear system in the unknown erased symbols (a generalised
// Vandermonde matrix, invertible since the roots and the erased column
// positions are each distinct), solved directly instead of via
// syndromes/Forney since there are no unlocated errors to find.
func solveErasures(codeword []byte, erased []int, n int) ([]byte, error) {
	e := len(erased)
	a := make([][]byte, e)
	rhs := make([]byte, e)

	for row := 0; row < e; row++ {
		coeffs := make([]byte, e)
		var known byte
		for col := 0; col < n; col++ {
			c := gfExpTable[(row*(n-1-col))%gfFieldSize]
			if k := indexOfInt(erased, col); k >= 0 {
				coeffs[k] = c
			} else {
				known ^= gfMul(c, codeword[col])
			}
		}
		a[row] = coeffs
		rhs[row] = known // constraint is 0 = known + sum(unknowns); -x = x here
	}

	return gfSolveLinear(a, rhs)
}

func indexOfInt(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// gfSolveLinear solves a*x = rhs over GF(2^8) by Gauss-Jordan elimination
// with partial pivoting. a is square and is modified in place; the
// solution is returned in rhs's backing slice.
func gfSolveLinear(a [][]byte, rhs []byte) ([]byte, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if a[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, errors.New("groundlink: singular erasure system")
		}
		a[col], a[pivot] = a[pivot], a[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		inv := gfInverse(a[col][col])
		for j := col; j < n; j++ {
			a[col][j] = gfMul(a[col][j], inv)
		}
		rhs[col] = gfMul(rhs[col], inv)

		for row := 0; row < n; row++ {
			if row == col || a[row][col] == 0 {
				continue
			}
			factor := a[row][col]
			for j := col; j < n; j++ {
				a[row][j] ^= gfMul(factor, a[col][j])
			}
			rhs[row] ^= gfMul(factor, rhs[col])
		}
	}
	return rhs, nil
}
