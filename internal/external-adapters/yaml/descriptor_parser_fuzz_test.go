package yaml

import (
	"testing"
)

// FuzzDescriptorParser tests the YAML parser against random/malformed inputs
// to detect crashes, panics, or unexpected behavior.
//
// Run with: go test -fuzz=FuzzDescriptorParser -fuzztime=30s
func FuzzDescriptorParser(f *testing.F) {
	f.Add(defaultDescriptor)
	f.Add([]byte(`application_id: com.example.app
release:
  proguard_files:
    - path: rules.pro
`))
	f.Add([]byte(`application_id: [`))
	f.Add([]byte(``))

	parser := NewDescriptorParser()
	f.Fuzz(func(t *testing.T, data []byte) {
		desc, err := parser.Parse(data)
		if err != nil {
			return
		}
		if desc.ApplicationID == "" {
			t.Error("parsed descriptor without application id")
		}
		if desc.Namespace == "" {
			t.Error("parsed descriptor without namespace")
		}
	})
}
