package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "sandbox/internal/errors"
)

// Version represents a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Raw        string
}

// semverRegex accepts an optional 'v' prefix, an optional patch component
// (bundle short versions are often "1.2"), a prerelease and build metadata.
var semverRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+))?(?:-([0-9A-Za-z.-]+))?(?:\+[0-9A-Za-z.-]+)?$`)

// ParseVersion parses a semantic version string such as "1.2.3", "v1.2.3",
// "1.2" or "1.2.3-beta.1+sha". Build metadata is discarded.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, apperrors.New(apperrors.CodeInvalidVersion, "empty version string", nil)
	}

	matches := semverRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, apperrors.New(apperrors.CodeInvalidVersion, fmt.Sprintf("invalid version format: %s", s), nil)
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return Version{}, apperrors.New(apperrors.CodeInvalidVersion, fmt.Sprintf("invalid major version: %s", s), err)
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return Version{}, apperrors.New(apperrors.CodeInvalidVersion, fmt.Sprintf("invalid minor version: %s", s), err)
	}
	patch := 0
	if matches[3] != "" {
		patch, err = strconv.Atoi(matches[3])
		if err != nil {
			return Version{}, apperrors.New(apperrors.CodeInvalidVersion, fmt.Sprintf("invalid patch version: %s", s), err)
		}
	}

	return Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: matches[4],
		Raw:        s,
	}, nil
}

// String returns the normalized version without a 'v' prefix.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		return base + "-" + v.Prerelease
	}
	return base
}

// Tag returns the version as a release tag ("v1.2.3").
func (v Version) Tag() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or higher than
// other. Prerelease versions sort below the matching release.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return compareInt(v.Patch, other.Patch)
	}
	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan returns true if v > other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal returns true if v == other.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// comparePrerelease orders dot-separated identifiers: numeric identifiers
// compare numerically and sort before alphanumeric ones, and a shorter set
// of identifiers sorts first when all preceding ones are equal.
func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareIdentifier(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(as), len(bs))
}

func compareIdentifier(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return compareInt(an, bn)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return strings.Compare(a, b)
}
