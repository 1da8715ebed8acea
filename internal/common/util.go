// Package common contains small helpers shared across client components.
package common

// WipeByteArray overwrites the buffer with zeros. Used to scrub passwords
// from memory once they have been handed off. Safe to call with nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
