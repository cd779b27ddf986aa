package model

import (
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PathSeparator separates segments in a string path.
const PathSeparator = "."

const pathCacheSize = 1024

// Path addresses a node below a Mapping, one key per segment.
type Path []string

var pathCache *lru.Cache[string, Path]

func init() {
	cache, err := lru.New[string, Path](pathCacheSize)
	if err != nil {
		panic(err)
	}
	pathCache = cache
}

// ParsePath splits a dotted path into segments.
func ParsePath(s string) Path {
	if p, ok := pathCache.Get(s); ok {
		return slices.Clone(p)
	}

	p := Path(strings.Split(s, PathSeparator))
	pathCache.Add(s, p)
	return slices.Clone(p)
}

// PathOf converts v into a Path. It accepts a dotted string, a Path, a
// []string and a *Primitive holding a string.
func PathOf(v any) (Path, bool) {
	switch p := v.(type) {
	case string:
		return ParsePath(p), true
	case Path:
		return p, true
	case []string:
		return Path(p), true
	case *Primitive:
		if s, ok := p.Str(); ok {
			return ParsePath(s), true
		}
	}
	return nil, false
}

// String joins the segments with PathSeparator.
func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Append returns a new Path with segs added after p.
func (p Path) Append(segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Prepend returns a new Path with key in front of p.
func (p Path) Prepend(key string) Path {
	return Path{key}.Append(p...)
}

// HasPrefix reports whether p starts with prefix.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && slices.Equal(p[:len(prefix)], prefix)
}
