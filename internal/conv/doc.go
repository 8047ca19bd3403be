// Package conv provides overflow-checked integer conversions for decoding
// untrusted snapshot headers.
package conv
