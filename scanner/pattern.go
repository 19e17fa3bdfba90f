package scanner

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/suparena/resthub/errors"
)

const recursiveSuffix = "/**"

// NormalizePattern trims a package pattern and rewrites the Go-style
// "pkg/..." form to "pkg/**".
func NormalizePattern(pattern string) (string, error) {
	p := strings.TrimSuffix(strings.TrimSpace(pattern), "/")
	switch {
	case p == "":
		return "", errors.NewValidationError("pattern", "package pattern is empty")
	case p == "...":
		p = "**"
	case strings.HasSuffix(p, "/..."):
		p = strings.TrimSuffix(p, "/...") + recursiveSuffix
	}
	if !doublestar.ValidatePattern(p) {
		return "", errors.NewValidationError("pattern", fmt.Sprintf("malformed package pattern %q", pattern))
	}
	return p, nil
}

// ValidatePattern reports whether pattern is a usable package pattern.
func ValidatePattern(pattern string) error {
	_, err := NormalizePattern(pattern)
	return err
}

// matchPackage reports whether the import path pkg is selected by a
// normalized pattern. "a/b/**" selects a/b itself as well as its descendants.
func matchPackage(pattern, pkg string) bool {
	if strings.HasSuffix(pattern, recursiveSuffix) && pkg == strings.TrimSuffix(pattern, recursiveSuffix) {
		return true
	}
	ok, err := doublestar.Match(pattern, pkg)
	return err == nil && ok
}

// enumerationRoot returns the static import path prefix of a normalized
// pattern, or "" when the pattern starts with a wildcard.
func enumerationRoot(pattern string) string {
	base, _ := doublestar.SplitPattern(pattern)
	if base == "." {
		return ""
	}
	return base
}
