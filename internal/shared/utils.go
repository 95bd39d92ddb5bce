// Package shared provides small helpers used by both the gateway and the CLI.
package shared

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it to drop card numbers and CV2 values read from the terminal as soon
// as they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
