package groundlink

import "strings"

// base40Alphabet is the 40-symbol callsign alphabet: digits, uppercase
// letters, and four punctuation marks including space.
const base40Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-_. "

const callsignLen = 6

// EncodeCallsign packs up to 6 characters of call into a 32-bit base-40
// integer: call is upper-cased, space-padded or truncated to 6 chars,
// then folded as v = v*40 + idx(c). Characters outside base40Alphabet
// map to index 0.
func EncodeCallsign(call string) uint32 {
	call = strings.ToUpper(call)
	if len(call) < callsignLen {
		call += strings.Repeat(" ", callsignLen-len(call))
	}
	call = call[:callsignLen]

	var v uint32
	for i := 0; i < callsignLen; i++ {
		idx := strings.IndexByte(base40Alphabet, call[i])
		if idx < 0 {
			idx = 0
		}
		v = v*40 + uint32(idx)
	}
	return v
}

// DecodeCallsign reverses EncodeCallsign, right-trimming the padding
// spaces from the result.
func DecodeCallsign(v uint32) string {
	chars := make([]byte, callsignLen)
	for i := callsignLen - 1; i >= 0; i-- {
		chars[i] = base40Alphabet[v%40]
		v /= 40
	}
	return strings.TrimRight(string(chars), " ")
}
