package groundlink

// GF(2^8) field arithmetic for the Reed-Solomon codec in rs.go: generator
// alpha = 0x02 over the primitive polynomial 0x11D (x^8+x^4+x^3+x^2+1).
// These are the same field parameters original_source's reedsolo.RSCodec
// builds from its defaults (prim=0x11d, generator=2, fcr=0), which is
// what makes rs.go's parity bytes match the original wire format.
const (
	gfFieldSize = 255
	gfPrimPoly  = 0x11D
	gfGenerator = 0x02
)

// gfExpTable[i] = gfGenerator^i, doubled in length so gfMul can add
// logarithms without a modulo on every call.
var gfExpTable [gfFieldSize * 2]byte
var gfLogTable [256]byte

func init() {
	x := 1
	for i := 0; i < gfFieldSize; i++ {
		gfExpTable[i] = byte(x)
		gfLogTable[byte(x)] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= gfPrimPoly
		}
	}
	for i := gfFieldSize; i < len(gfExpTable); i++ {
		gfExpTable[i] = gfExpTable[i-gfFieldSize]
	}
}

// gfMul multiplies two field elements.
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExpTable[int(gfLogTable[a])+int(gfLogTable[b])]
}

// gfPow raises a nonzero field element to a non-negative power. gfPow(0,
// p) is 0 for any p > 0; this package never calls it with a==0.
func gfPow(a byte, power int) byte {
	if a == 0 {
		return 0
	}
	e := (int(gfLogTable[a]) * power) % gfFieldSize
	return gfExpTable[e]
}

// gfInverse returns the multiplicative inverse of a nonzero element.
func gfInverse(a byte) byte {
	return gfExpTable[gfFieldSize-int(gfLogTable[a])]
}
