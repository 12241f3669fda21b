package common

// WipeByteArray zeroes b in place. It is used for passwords read from the
// terminal once they have been sent to the server.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
