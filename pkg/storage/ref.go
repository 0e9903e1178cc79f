package storage

import (
	"path"
	"strings"
)

// Ref is the normalized logical path of an artifact within a backend.
// It never contains backslashes or a leading separator, and it never
// includes the bucket name. Two Refs built from the same segments compare
// equal regardless of the separator style used to build them.
type Ref string

// NewRef joins the given path segments into a normalized Ref.
// Backslash separators are replaced with forward slashes before joining,
// matching the key format used by the object stores. Leading
// parent-directory segments are dropped, so a Ref can never point above
// the root a backend resolves it against.
func NewRef(segments ...string) Ref {
	cleaned := make([]string, 0, len(segments))
	for _, s := range segments {
		cleaned = append(cleaned, strings.ReplaceAll(s, "\\", "/"))
	}
	joined := path.Join(cleaned...)
	joined = strings.TrimPrefix(joined, "/")
	for strings.HasPrefix(joined, "../") {
		joined = joined[3:]
	}
	if joined == "." || joined == ".." {
		joined = ""
	}
	return Ref(joined)
}

func (r Ref) String() string {
	return string(r)
}

// Base returns the last segment of the path, or "" for an empty Ref.
func (r Ref) Base() string {
	if r == "" {
		return ""
	}
	return path.Base(string(r))
}

// Dir returns everything except the last segment, or "" when the Ref has
// a single segment.
func (r Ref) Dir() Ref {
	d := path.Dir(string(r))
	if d == "." || d == "/" {
		return ""
	}
	return Ref(d)
}

// HasPrefix reports whether r starts with prefix, using the raw string
// prefix match object stores apply to keys. An empty prefix matches
// every Ref.
func (r Ref) HasPrefix(prefix Ref) bool {
	return strings.HasPrefix(string(r), string(prefix))
}
