package groundlink

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRSEncodeDecodeNoErasures(t *testing.T) {
	gSize, m := 10, 4
	msg := make([]byte, gSize)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	parity, err := rsEncodeColumn(msg, gSize, m)
	if err != nil {
		t.Fatalf("rsEncodeColumn: %v", err)
	}
	if len(parity) != m {
		t.Fatalf("parity length = %d, want %d", len(parity), m)
	}

	codeword := append(append([]byte{}, msg...), parity...)
	present := make([]bool, gSize+m)
	for i := range present {
		present[i] = true
	}

	got, err := rsDecodeColumn(codeword, present, gSize, m)
	if err != nil {
		t.Fatalf("rsDecodeColumn: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("decoded %v, want %v", got, msg)
	}
}

func TestRSDecodeRecoversUpToMErasures(t *testing.T) {
	gSize, m := 20, 6
	msg := make([]byte, gSize)
	rnd := rand.New(rand.NewSource(1))
	for i := range msg {
		msg[i] = byte(rnd.Intn(256))
	}

	parity, err := rsEncodeColumn(msg, gSize, m)
	if err != nil {
		t.Fatalf("rsEncodeColumn: %v", err)
	}
	codeword := append(append([]byte{}, msg...), parity...)

	// Erase exactly m positions, a mix of data and parity.
	erased := map[int]bool{0: true, 1: true, 5: true, gSize: true, gSize + 1: true, gSize + 2: true}
	if len(erased) != m {
		t.Fatalf("test setup: erased %d positions, want %d", len(erased), m)
	}

	present := make([]bool, gSize+m)
	for i := range present {
		present[i] = !erased[i]
	}

	got, err := rsDecodeColumn(codeword, present, gSize, m)
	if err != nil {
		t.Fatalf("rsDecodeColumn with %d erasures: %v", len(erased), err)
	}
	if !bytes.Equal(got, msg) {
		t.Errorf("decoded %v, want %v", got, msg)
	}
}

func TestRSDecodeFailsWithTooManyErasures(t *testing.T) {
	gSize, m := 10, 3
	msg := make([]byte, gSize)
	parity, err := rsEncodeColumn(msg, gSize, m)
	if err != nil {
		t.Fatalf("rsEncodeColumn: %v", err)
	}
	codeword := append(append([]byte{}, msg...), parity...)

	present := make([]bool, gSize+m)
	for i := range present {
		present[i] = true
	}
	// Erase m+1 positions.
	present[0] = false
	present[1] = false
	present[2] = false
	present[3] = false

	if _, err := rsDecodeColumn(codeword, present, gSize, m); err != ErrTooManyErasures {
		t.Errorf("got %v, want ErrTooManyErasures", err)
	}
}

func TestGeneratorPolyCacheReusesSlice(t *testing.T) {
	g1 := globalGenPolys.get(3)
	g2 := globalGenPolys.get(3)
	// Same m must return the identical cached slice.
	if &g1[0] != &g2[0] {
		t.Errorf("expected cached generator polynomial to be reused for identical m")
	}
}

// TestGeneratorPolyRootsEvaluateToZero checks the defining property of
// g(x) = product_{i=0}^{m-1}(x - alpha^i): it vanishes at each alpha^i,
// which is what lets solveErasures treat those points as linear
// constraints on a systematic codeword.
func TestGeneratorPolyRootsEvaluateToZero(t *testing.T) {
	for _, m := range []int{1, 3, 8, 16} {
		g := buildGeneratorPoly(m)
		for i := 0; i < m; i++ {
			root := gfPow(gfGenerator, i)
			var v byte
			for _, coef := range g {
				v = gfMul(v, root) ^ coef
			}
			if v != 0 {
				t.Errorf("m=%d: g(alpha^%d) = %#x, want 0", m, i, v)
			}
		}
	}
}

func TestRSEncodeColumnRejectsOversizedCodeword(t *testing.T) {
	if _, err := rsEncodeColumn(make([]byte, 250), 250, 10); err != ErrNoCodec {
		t.Errorf("got %v, want ErrNoCodec", err)
	}
}
