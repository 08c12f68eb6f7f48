package semequal

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// keys containing any of these characters are written in bracket form,
// eg. a['b.c'] instead of a.b.c
const specialKeyChars = ".[]()'\" /\\\t\n\r\f\b\u0085\u2028\u2029"

// childPath extends a parent path with an object key
func childPath(parent, key string) string {
	if key == "" || strings.ContainsAny(key, specialKeyChars) {
		return parent + "['" + escapeKey(key) + "']"
	}
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// indexPath extends a parent path with an array index
func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func escapeKey(key string) string {
	if !strings.ContainsAny(key, `'\`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PathStep is one component of a path: either an object key or an array index
type PathStep struct {
	Key     string
	Index   int
	IsIndex bool
}

// ParsePath splits a dotted / bracketed path like a.b[0]['c.d'] into steps.
// the empty path addresses the document root. Only the spelling comparison
// produces is accepted: keys holding special characters must be bracketed &
// other keys must not be, so "a b" and "c['d']" are errors
func ParsePath(path string) ([]PathStep, error) {
	var steps []PathStep
	i := 0
	for i < len(path) {
		c := path[i]
		if c == '[' {
			step, n, err := parseBracket(path[i:])
			if err != nil {
				return nil, errors.Wrapf(err, "invalid path %q", path)
			}
			steps = append(steps, step)
			i += n
			continue
		}

		if c == '.' {
			if i == 0 {
				return nil, errors.Errorf("invalid path %q: leading dot", path)
			}
			i++
			if i == len(path) || path[i] == '.' || path[i] == '[' {
				return nil, errors.Errorf("invalid path %q: empty key at offset %d", path, i)
			}
		} else if i != 0 {
			// a bare key may only start the path or follow a dot
			return nil, errors.Errorf("invalid path %q: unexpected %q at offset %d", path, c, i)
		}

		j := i
		for j < len(path) && path[j] != '.' && path[j] != '[' {
			j++
		}
		steps = append(steps, PathStep{Key: path[i:j]})
		i = j
	}

	// comparison only ever produces one spelling of a path, any other can't
	// match a node
	if canon := formatPath(steps); canon != path {
		return nil, errors.Errorf("invalid path %q: write it as %q", path, canon)
	}
	return steps, nil
}

// formatPath writes steps in the notation comparison paths use
func formatPath(steps []PathStep) string {
	p := ""
	for _, step := range steps {
		if step.IsIndex {
			p = indexPath(p, step.Index)
		} else {
			p = childPath(p, step.Key)
		}
	}
	return p
}

// parseBracket reads an [index] or ['key'] step from the start of s,
// returning the number of bytes consumed
func parseBracket(s string) (PathStep, int, error) {
	if len(s) > 1 && s[1] == '\'' {
		var key strings.Builder
		for i := 2; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
				if i == len(s) {
					return PathStep{}, 0, errors.New("unterminated escape")
				}
				key.WriteByte(s[i])
			case '\'':
				if i+1 >= len(s) || s[i+1] != ']' {
					return PathStep{}, 0, errors.New("expected ] after quoted key")
				}
				return PathStep{Key: key.String()}, i + 2, nil
			default:
				key.WriteByte(s[i])
			}
		}
		return PathStep{}, 0, errors.New("unterminated quoted key")
	}

	end := strings.IndexByte(s, ']')
	if end < 0 {
		return PathStep{}, 0, errors.New("unterminated bracket")
	}
	digits := s[1:end]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return PathStep{}, 0, errors.Errorf("invalid index %q", digits)
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return PathStep{}, 0, errors.Wrapf(err, "invalid index %q", digits)
	}
	return PathStep{Index: idx, IsIndex: true}, end + 1, nil
}

// Lookup resolves a path against a document tree
func Lookup(root *Node, path string) (*Node, error) {
	steps, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	n := root
	at := ""
	for _, step := range steps {
		if n == nil {
			return nil, errors.Errorf("invalid path: %s", path)
		}
		if step.IsIndex {
			if n.Type != NTArray {
				return nil, errors.Errorf("%s is %s, not Array", displayPath(at), n.Type)
			}
			if step.Index >= len(n.Elems) {
				return nil, errors.Errorf("array index %d exceeds %d at path %s", step.Index, len(n.Elems), displayPath(at))
			}
			n = n.Elems[step.Index]
			at = indexPath(at, step.Index)
			continue
		}

		if n.Type != NTObject {
			return nil, errors.Errorf("%s is %s, not Object", displayPath(at), n.Type)
		}
		ch, ok := n.Get(step.Key)
		if !ok {
			return nil, errors.Errorf("no key %q at path %s", step.Key, displayPath(at))
		}
		n = ch
		at = childPath(at, step.Key)
	}
	return n, nil
}

func displayPath(p string) string {
	if p == "" {
		return "<root>"
	}
	return p
}
