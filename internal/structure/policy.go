package structure

import (
	"fmt"
	"strings"

	oerrors "github.com/boomcli/boom/internal/errors"
)

// MergePolicy decides what happens when a rendered directory already exists
// in the target.
type MergePolicy string

const (
	// PolicySkip leaves an existing directory and its whole subtree untouched.
	PolicySkip MergePolicy = "skip"

	// PolicyOverwrite descends into an existing directory and rewrites files.
	PolicyOverwrite MergePolicy = "overwrite"

	// PolicyMerge descends into an existing directory and only creates
	// files that are missing.
	PolicyMerge MergePolicy = "merge"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicySkip

// ValidPolicies lists the accepted policy names.
func ValidPolicies() []string {
	return []string{string(PolicySkip), string(PolicyOverwrite), string(PolicyMerge)}
}

// ParseMergePolicy converts a policy name. An empty name selects DefaultPolicy.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch p := MergePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultPolicy, nil
	case PolicySkip, PolicyOverwrite, PolicyMerge:
		return p, nil
	default:
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unknown merge policy %q", s), "", "mergePolicy",
			"valid policies: "+strings.Join(ValidPolicies(), ", "))
	}
}
