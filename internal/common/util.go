// Package common contains small helpers shared by client and server layers.
package common

// WipeByteArray overwrites the buffer with zeros. Used to shorten the
// lifetime of passwords and other secrets held in memory.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
