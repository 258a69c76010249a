package ghost

import "fmt"

// Version identifies a Ghost API version.
type Version string

// Supported Ghost API versions.
const (
	V3 Version = "v3"
	V4 Version = "v4"
	V5 Version = "v5"

	// DefaultVersion is used when Config.Version is left empty.
	DefaultVersion = V5
)

// ParseVersion validates a version tag. An empty tag selects DefaultVersion;
// anything outside the supported set fails fast.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return DefaultVersion, nil
	}

	v := Version(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q (supported: v3, v4, v5)", ErrUnsupportedVersion, s)
	}

	return v, nil
}

// Valid reports whether the version is one of the supported tags.
func (v Version) Valid() bool {
	switch v {
	case V3, V4, V5:
		return true
	default:
		return false
	}
}

// BasePath returns the versioned API root, e.g. "/ghost/api/v5".
func (v Version) BasePath() string {
	return "/ghost/api/" + string(v)
}

// AdminAudience returns the JWT audience claim for admin tokens.
// Ghost v5 dropped the version segment from the audience; v3 and v4
// still expect it.
func (v Version) AdminAudience() string {
	if v == V5 {
		return "/admin/"
	}

	return "/" + string(v) + "/admin/"
}

func (v Version) String() string {
	return string(v)
}
