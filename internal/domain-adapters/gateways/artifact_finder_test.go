package gateways

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

func TestArtifactFinder_FindRecursive(t *testing.T) {
	root := t.TempDir()
	finder := NewArtifactFinder()

	apk := finder.ExpectedPath(root, "release", entities.FormatAPK)
	aab := finder.ExpectedPath(root, "release", entities.FormatAAB)
	writeBundle(t, root, mustRel(t, root, apk), []byte("apk"))
	writeBundle(t, root, mustRel(t, root, apk+".sha256"), []byte("sum"))
	writeBundle(t, root, mustRel(t, root, aab), []byte("aab"))
	writeBundle(t, root, mustRel(t, root, aab+".asc"), []byte("sig"))
	writeBundle(t, root, "build/app/outputs/flutter-apk/app-debug.apk", []byte("debug"))
	writeBundle(t, root, "build/app/outputs/flutter-apk/output-metadata.json", []byte("{}"))

	found, err := finder.FindRecursive(root, "release")
	if err != nil {
		t.Fatalf("FindRecursive() error = %v", err)
	}

	sort.Strings(found)
	want := []string{aab, aab + ".asc", apk, apk + ".sha256"}
	sort.Strings(want)
	if len(found) != len(want) {
		t.Fatalf("FindRecursive() = %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Errorf("found[%d] = %s, want %s", i, found[i], want[i])
		}
	}
}

func TestArtifactFinder_FindRecursive_NoOutputs(t *testing.T) {
	if _, err := NewArtifactFinder().FindRecursive(t.TempDir(), "release"); err == nil {
		t.Error("FindRecursive() should fail when build/app/outputs is absent")
	}
}

func TestArtifactFinder_ExpectedPath(t *testing.T) {
	finder := NewArtifactFinder()

	if got, want := finder.ExpectedPath("/p", "release", entities.FormatAAB),
		filepath.FromSlash("/p/build/app/outputs/bundle/release/app-release.aab"); got != want {
		t.Errorf("ExpectedPath(aab) = %s, want %s", got, want)
	}
	if got, want := finder.ExpectedPath("/p", "release", entities.FormatAPK),
		filepath.FromSlash("/p/build/app/outputs/flutter-apk/app-release.apk"); got != want {
		t.Errorf("ExpectedPath(apk) = %s, want %s", got, want)
	}
}

func TestArtifactFinder_Classify(t *testing.T) {
	finder := NewArtifactFinder()

	tests := []struct {
		path       string
		wantType   string
		wantFormat entities.OutputFormat
	}{
		{"out/app-release.apk", "bundle", entities.FormatAPK},
		{"out/app-release.aab", "bundle", entities.FormatAAB},
		{"out/app-release.aab.sha256", "checksum", entities.FormatAAB},
		{"out/app-release.apk.asc", "signature", entities.FormatAPK},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			a := finder.Classify(tt.path, "release")
			if a.Type != tt.wantType || a.Format != tt.wantFormat {
				t.Errorf("Classify(%s) = %s/%s, want %s/%s", tt.path, a.Type, a.Format, tt.wantType, tt.wantFormat)
			}
		})
	}
}

func TestArtifactFinder_Sidecars(t *testing.T) {
	dir := t.TempDir()
	bundle := writeBundle(t, dir, "app-release.aab", []byte("bundle"))
	finder := NewArtifactFinder()

	checksum, signature := finder.Sidecars(bundle)
	if checksum != "" || signature != "" {
		t.Errorf("Sidecars() = %q, %q, want none", checksum, signature)
	}

	writeBundle(t, dir, "app-release.aab.sha256", []byte("sum"))
	writeBundle(t, dir, "app-release.aab.asc", []byte("sig"))

	checksum, signature = finder.Sidecars(bundle)
	if checksum != bundle+ChecksumSuffix {
		t.Errorf("checksum = %q", checksum)
	}
	if signature != bundle+SignatureSuffix {
		t.Errorf("signature = %q", signature)
	}
}

func mustRel(t *testing.T, base, target string) string {
	t.Helper()
	rel, err := filepath.Rel(base, target)
	if err != nil {
		t.Fatal(err)
	}
	return rel
}
