package services

import (
	"fmt"
	"strings"

	"github.com/iwmh/droidcfg/internal/domain/entities"
)

// SDKViolation describes one broken min <= target <= compile relation
type SDKViolation struct {
	Lower      string
	LowerLevel int
	Upper      string
	UpperLevel int
}

func (v SDKViolation) String() string {
	return fmt.Sprintf("%s (%d) > %s (%d)", v.Lower, v.LowerLevel, v.Upper, v.UpperLevel)
}

// CheckSDKOrdering returns every violation of minSdk <= targetSdk <= compileSdk
func CheckSDKOrdering(v entities.VersionInfo) []SDKViolation {
	var violations []SDKViolation
	if v.MinSDK > v.TargetSDK {
		violations = append(violations, SDKViolation{"minSdk", v.MinSDK, "targetSdk", v.TargetSDK})
	}
	if v.TargetSDK > v.CompileSDK {
		violations = append(violations, SDKViolation{"targetSdk", v.TargetSDK, "compileSdk", v.CompileSDK})
	}
	return violations
}

// SDKOrderingError wraps ErrSDKOrdering with the violations found
func SDKOrderingError(violations []SDKViolation) error {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return fmt.Errorf("%w: %s", ErrSDKOrdering, strings.Join(parts, "; "))
}
