package scrub

import (
	"fmt"
	"regexp"
	"strings"
)

type patternKind int

const (
	kindExact patternKind = iota
	kindRegexp
)

// ClassPattern is a preserve-class whitelist entry: either an exact class
// name or a regular expression matched against each class token.
type ClassPattern struct {
	kind  patternKind
	exact string
	re    *regexp.Regexp
}

// Exact matches a class token equal to name.
func Exact(name string) ClassPattern {
	return ClassPattern{kind: kindExact, exact: name}
}

// Pattern matches class tokens accepted by re.
func Pattern(re *regexp.Regexp) ClassPattern {
	return ClassPattern{kind: kindRegexp, re: re}
}

// MustPattern compiles expr and panics if it is invalid.
func MustPattern(expr string) ClassPattern {
	return Pattern(regexp.MustCompile(expr))
}

// ParseClassPattern reads a whitelist entry in its text form. A value
// wrapped in slashes ("/^col-/") is a regular expression; anything else is
// an exact class name.
func ParseClassPattern(s string) (ClassPattern, error) {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return ClassPattern{}, fmt.Errorf("invalid class pattern %q: %w", s, err)
		}
		return Pattern(re), nil
	}
	return Exact(s), nil
}

// ParseClassPatterns parses each entry with ParseClassPattern, skipping
// empty strings.
func ParseClassPatterns(values []string) ([]ClassPattern, error) {
	patterns := make([]ClassPattern, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		p, err := ParseClassPattern(v)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether token is preserved by this entry.
func (p ClassPattern) Match(token string) bool {
	if p.kind == kindRegexp {
		return p.re.MatchString(token)
	}
	return token == p.exact
}

// IsRegexp reports whether the entry is a regular expression.
func (p ClassPattern) IsRegexp() bool {
	return p.kind == kindRegexp
}

// String returns the text form accepted by ParseClassPattern.
func (p ClassPattern) String() string {
	if p.kind == kindRegexp {
		return "/" + p.re.String() + "/"
	}
	return p.exact
}

// MarshalText implements encoding.TextMarshaler.
func (p ClassPattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ClassPattern) UnmarshalText(text []byte) error {
	parsed, err := ParseClassPattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func matchesAny(patterns []ClassPattern, token string) bool {
	for _, p := range patterns {
		if p.Match(token) {
			return true
		}
	}
	return false
}
