package util

// An ASCIISet is a bitmask-based set of ASCII bytes, suitable for the hot
// byte-classification loops of the pattern compiler and the zone-ID checker.
// This implementation is adapted from the strings package's asciiSet.
type ASCIISet [8]uint32

// MakeASCIISet creates the set of the bytes that occur in chars.
// All bytes in chars are assumed to be < utf8.RuneSelf.
func MakeASCIISet(chars string) ASCIISet {
	var as ASCIISet
	for i := range len(chars) {
		c := chars[i]
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// Contains reports whether c is inside the set.
func (as *ASCIISet) Contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}
