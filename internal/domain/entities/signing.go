package entities

// Property keys recognized in key.properties
const (
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
)

// ReleaseSigningConfig is the name of the signing config bound from key.properties
const ReleaseSigningConfig = "release"

// DebugSigningConfig is the toolchain-provided debug keystore config
const DebugSigningConfig = "debug"

const redacted = "********"

// SigningConfig is the credential set used to sign the release bundle.
// Every field is optional until the release variant requires it.
type SigningConfig struct {
	Name          string
	KeyAlias      Optional[string]
	KeyPassword   Optional[string]
	StoreFile     Optional[string] // absolute path once bound
	StorePassword Optional[string]
}

// Missing returns the property keys that are absent, in declaration order
func (s *SigningConfig) Missing() []string {
	var missing []string
	fields := []struct {
		key string
		val Optional[string]
	}{
		{KeyAlias, s.KeyAlias},
		{KeyPassword, s.KeyPassword},
		{StoreFile, s.StoreFile},
		{StorePassword, s.StorePassword},
	}
	for _, f := range fields {
		if !f.val.IsSet() {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// Complete reports whether all four credentials are present
func (s *SigningConfig) Complete() bool {
	return len(s.Missing()) == 0
}

// Redacted returns a copy with both passwords masked
func (s *SigningConfig) Redacted() *SigningConfig {
	c := *s
	if c.KeyPassword.IsSet() {
		c.KeyPassword = Some(redacted)
	}
	if c.StorePassword.IsSet() {
		c.StorePassword = Some(redacted)
	}
	return &c
}
