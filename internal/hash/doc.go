// Package hash provides the CRC32-Castagnoli checksum that guards snapshot
// payloads against corruption in transit and at rest.
//
//	sum := hash.CRC32C(payload)
//	if err := hash.Verify(payload, sum); err != nil { ... }
package hash
