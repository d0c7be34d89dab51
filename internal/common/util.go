package common

// WipeByteArray overwrites b with zeros. Used to drop plaintext passwords
// from memory once they have been sent. A nil slice is ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
