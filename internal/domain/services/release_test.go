package services

import (
	"testing"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

func TestValidateRelease(t *testing.T) {
	both := []entities.OutputFormat{entities.FormatAPK, entities.FormatAAB}

	tests := []struct {
		name            string
		variant         string
		expected        []entities.OutputFormat
		artifactPaths   []string
		expectedStatus  ReleaseStatus
		expectedReady   bool
		expectedMissing int
	}{
		{
			name:     "apk and bundle present - ready",
			variant:  "release",
			expected: both,
			artifactPaths: []string{
				"build/app/outputs/flutter-apk/app-release.apk",
				"build/app/outputs/bundle/release/app-release.aab",
			},
			expectedStatus:  StatusReady,
			expectedReady:   true,
			expectedMissing: 0,
		},
		{
			name:            "no outputs - error",
			variant:         "release",
			expected:        both,
			artifactPaths:   []string{},
			expectedStatus:  StatusNoOutputs,
			expectedReady:   false,
			expectedMissing: 2,
		},
		{
			name:     "bundle missing - error",
			variant:  "release",
			expected: both,
			artifactPaths: []string{
				"build/app/outputs/flutter-apk/app-release.apk",
			},
			expectedStatus:  StatusMissingFormats,
			expectedReady:   false,
			expectedMissing: 1,
		},
		{
			name:     "bundle only requested - ready",
			variant:  "release",
			expected: []entities.OutputFormat{entities.FormatAAB},
			artifactPaths: []string{
				"build/app/outputs/bundle/release/app-release.aab",
			},
			expectedStatus:  StatusReady,
			expectedReady:   true,
			expectedMissing: 0,
		},
		{
			name:     "other variant outputs ignored",
			variant:  "release",
			expected: both,
			artifactPaths: []string{
				"build/app/outputs/flutter-apk/app-debug.apk",
				"build/app/outputs/bundle/profile/app-profile.aab",
			},
			expectedStatus:  StatusNoOutputs,
			expectedReady:   false,
			expectedMissing: 2,
		},
		{
			name:     "checksums and signatures ignored",
			variant:  "release",
			expected: both,
			artifactPaths: []string{
				"build/app/outputs/flutter-apk/app-release.apk",
				"build/app/outputs/flutter-apk/app-release.apk.sha256",
				"build/app/outputs/bundle/release/app-release.aab.asc",
			},
			expectedStatus:  StatusMissingFormats,
			expectedReady:   false,
			expectedMissing: 1,
		},
	}

	service := NewReleaseService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validation := service.ValidateRelease(tt.variant, tt.expected, tt.artifactPaths)

			if validation.Status != tt.expectedStatus {
				t.Errorf("Status = %v, want %v", validation.Status, tt.expectedStatus)
			}

			if validation.IsReady() != tt.expectedReady {
				t.Errorf("IsReady() = %v, want %v", validation.IsReady(), tt.expectedReady)
			}

			if len(validation.MissingFormats) != tt.expectedMissing {
				t.Errorf("Missing formats count = %d, want %d (formats: %v)",
					len(validation.MissingFormats), tt.expectedMissing, validation.MissingFormats)
			}

			if tt.expectedStatus != StatusReady && validation.ErrorMessage() == "" {
				t.Error("Expected error message but got empty string")
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []entities.OutputFormat
		wantErr bool
	}{
		{"apk,aab", []entities.OutputFormat{entities.FormatAPK, entities.FormatAAB}, false},
		{" AAB ", []entities.OutputFormat{entities.FormatAAB}, false},
		{"apk,apk", []entities.OutputFormat{entities.FormatAPK}, false},
		{"ipa", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName("release", entities.FormatAAB); got != "app-release.aab" {
		t.Errorf("OutputName() = %q, want app-release.aab", got)
	}
}
