package entities

import "time"

// BundleSignature describes a verified detached signature over a release output
type BundleSignature struct {
	KeyID       string
	Fingerprint string
	Signer      string // primary identity of the signing key, if any
	SignedAt    time.Time
}
