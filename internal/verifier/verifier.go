// Package verifier checks downloaded artifacts against published checksums
// and detached signatures.
package verifier

import "io"

// Verifier interface for detached signature verification
type Verifier interface {
	// VerifyDetached checks that signature is a valid signature over data
	VerifyDetached(data io.Reader, signature []byte) error
}
