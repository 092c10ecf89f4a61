package models

import (
	"strings"

	"golang.org/x/mod/semver"
)

// PluginVersion is stamped into every project written by this build
const PluginVersion = "1.0.0"

// Tag returns the version as a tag string with 'v' prefix, as expected by
// golang.org/x/mod/semver
func Tag(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// IsValidVersion reports whether v is a semantic version (with or without 'v')
func IsValidVersion(v string) bool {
	return semver.IsValid(Tag(v))
}

// IsNewer reports whether recorded is a newer semantic version than running.
// Invalid versions on either side never compare as newer.
func IsNewer(recorded, running string) bool {
	r, c := Tag(recorded), Tag(running)
	if !semver.IsValid(r) || !semver.IsValid(c) {
		return false
	}
	return semver.Compare(r, c) > 0
}
