package semequal

import (
	"sort"

	"github.com/pkg/errors"
)

// Compare checks that two document trees are structurally equal: objects
// match regardless of key order, arrays match element by element & scalars
// match exactly. Nodes whose path is in exclude are skipped along with
// everything below them. Compare stops at the first difference & returns it
// as a *Failure, or nil if the documents are equal
func Compare(expected, actual *Node, exclude ExclusionSet, opts ...CompareOption) error {
	cfg := &CompareConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if f := compareTrees(expected, actual, exclude, cfg); f != nil {
		return f
	}
	return nil
}

// CompareJSON parses two JSON documents & compares them. When they differ the
// returned error is a *ReportError carrying the full diagnostic report
func CompareJSON(expected, actual []byte, excludePaths ...string) error {
	e, err := ParseJSON(expected)
	if err != nil {
		return errors.Wrap(err, "expected document")
	}
	a, err := ParseJSON(actual)
	if err != nil {
		return errors.Wrap(err, "actual document")
	}

	if f := compareTrees(e, a, NewExclusionSet(excludePaths...), &CompareConfig{}); f != nil {
		return &ReportError{Failure: f, Expected: e, Actual: a}
	}
	return nil
}

// CompareConfig are any possible configuration parameters for a comparison
type CompareConfig struct {
	// Provide a non-nil stats pointer & Compare will populate it with data
	// from the comparison
	Stats *Stats
}

// CompareOption is a function that adjusts a config, zero or more
// CompareOptions can be passed to the Compare function
type CompareOption func(cfg *CompareConfig)

// OptionSetStats will set the passed-in stats pointer when Compare is called
func OptionSetStats(st *Stats) CompareOption {
	return func(cfg *CompareConfig) {
		cfg.Stats = st
	}
}

// ExclusionSet is a set of literal paths to leave out of a comparison. A path
// matches only when it's exactly equal to the path of a node, there are no
// wildcards or prefixes
type ExclusionSet map[string]struct{}

// NewExclusionSet creates a set from a list of paths
func NewExclusionSet(paths ...string) ExclusionSet {
	s := make(ExclusionSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports whether path is excluded. safe to call on a nil set
func (s ExclusionSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths lists the excluded paths in sorted order
func (s ExclusionSet) Paths() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Validate checks every path is well formed. A malformed path can never match
// a node, so it's almost always a typo
func (s ExclusionSet) Validate() error {
	for _, p := range s.Paths() {
		if _, err := ParsePath(p); err != nil {
			return err
		}
	}
	return nil
}

// comparison holds the read-only inputs of a single Compare call
type comparison struct {
	cfg     *CompareConfig
	exclude ExclusionSet
}

func compareTrees(expected, actual *Node, exclude ExclusionSet, cfg *CompareConfig) *Failure {
	c := &comparison{cfg: cfg, exclude: exclude}
	// a null document is no document at all
	return c.compare(rootValue(expected), rootValue(actual), "", 0)
}

func rootValue(n *Node) *Node {
	if n != nil && n.Type == NTNull {
		return nil
	}
	return n
}

// compare walks two trees in lock-step, depth-first & pre-order
func (c *comparison) compare(e, a *Node, path string, depth int) *Failure {
	if e == nil && a == nil {
		return nil
	}
	if e == nil {
		return &Failure{Kind: FKUnexpectedPresence, Path: path, Actual: a, ActualType: a.Type, Side: SideActual}
	}
	if a == nil {
		return &Failure{Kind: FKUnexpectedPresence, Path: path, Expected: e, ExpectedType: e.Type, Side: SideExpected}
	}

	c.visit(depth)

	// types are checked before exclusions, an excluded node still has to hold
	// the same kind of value
	if e.Type != a.Type {
		return &Failure{Kind: FKTypeMismatch, Path: path, Expected: e, Actual: a, ExpectedType: e.Type, ActualType: a.Type}
	}
	if c.exclude.Contains(path) {
		if c.cfg.Stats != nil {
			c.cfg.Stats.Excluded++
		}
		return nil
	}

	switch e.Type {
	case NTObject:
		return c.compareObjects(e, a, path, depth)
	case NTArray:
		return c.compareArrays(e, a, path, depth)
	case NTString:
		if e.Str == a.Str {
			return nil
		}
	case NTNumber:
		if numbersEqual(e.Str, a.Str) {
			return nil
		}
	case NTBool:
		if e.Bool == a.Bool {
			return nil
		}
	case NTNull:
		return nil
	}
	return valueMismatch(e, a, path)
}

func (c *comparison) compareObjects(e, a *Node, path string, depth int) *Failure {
	if len(e.Fields) != len(a.Fields) {
		return &Failure{Kind: FKObjectSizeMismatch, Path: path, Expected: e, Actual: a, ExpectedType: NTObject, ActualType: NTObject}
	}

	actual := make(map[string]*Node, len(a.Fields))
	for _, f := range a.Fields {
		actual[f.Key] = f.Value
	}

	for _, f := range e.Fields {
		p := childPath(path, f.Key)
		av, ok := actual[f.Key]
		if !ok {
			return &Failure{Kind: FKMissingProperty, Path: p, Expected: e, Actual: a, ExpectedType: NTObject, ActualType: NTObject, Key: f.Key}
		}
		if fail := c.compare(f.Value, av, p, depth+1); fail != nil {
			return fail
		}
	}
	return nil
}

func (c *comparison) compareArrays(e, a *Node, path string, depth int) *Failure {
	if len(e.Elems) != len(a.Elems) {
		return &Failure{Kind: FKArrayLengthMismatch, Path: path, Expected: e, Actual: a, ExpectedType: NTArray, ActualType: NTArray}
	}
	for i := range e.Elems {
		if fail := c.compare(e.Elems[i], a.Elems[i], indexPath(path, i), depth+1); fail != nil {
			return fail
		}
	}
	return nil
}

func valueMismatch(e, a *Node, path string) *Failure {
	return &Failure{Kind: FKValueMismatch, Path: path, Expected: e, Actual: a, ExpectedType: e.Type, ActualType: a.Type}
}

func (c *comparison) visit(depth int) {
	if st := c.cfg.Stats; st != nil {
		st.Compared++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
	}
}
