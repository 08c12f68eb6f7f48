// Package assertjson provides testify-style assertions that compare JSON
// documents semantically: object key order, whitespace & number spelling are
// ignored. Failures carry the full semequal report
package assertjson

import (
	"github.com/qri-io/semequal"
	"github.com/qri-io/semequal/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T the assertions need
type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

type tHelper interface {
	Helper()
}

// Equal asserts two JSON documents are semantically equal, skipping
// excludePaths. It reports whether the assertion passed
func Equal(t TestingT, expected, actual string, excludePaths ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := semequal.CompareJSON([]byte(expected), []byte(actual), excludePaths...); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// Require is like Equal but stops the test on failure
func Require(t TestingT, expected, actual string, excludePaths ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := semequal.CompareJSON([]byte(expected), []byte(actual), excludePaths...); err != nil {
		require.FailNow(t, err.Error())
	}
}

// EqualValues asserts two values decoded into interface{} (or built as
// *semequal.Node) are semantically equal
func EqualValues(t TestingT, expected, actual interface{}, excludePaths ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	e, err := semequal.FromValue(expected)
	if !assert.NoError(t, err, "expected value") {
		return false
	}
	a, err := semequal.FromValue(actual)
	if !assert.NoError(t, err, "actual value") {
		return false
	}
	f, ok := semequal.Compare(e, a, semequal.NewExclusionSet(excludePaths...)).(*semequal.Failure)
	if !ok {
		return true
	}
	return assert.Fail(t, semequal.Render(e, a, f))
}

// EqualFixture asserts actual is semantically equal to the "_Expected"
// fixture of the named test
func EqualFixture(t TestingT, l *fixture.Loader, name, actual string, excludePaths ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	expected, err := l.LoadExpectation(name)
	if !assert.NoError(t, err) {
		return false
	}
	return Equal(t, expected, actual, excludePaths...)
}

// Collection asserts expected & actual hold the same number of items, then
// calls assertItem on each pair. A nil expected slice requires a nil actual
// slice
func Collection[T any](t TestingT, expected, actual []T, assertItem func(expected, actual T)) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if expected == nil {
		return assert.Nil(t, actual)
	}
	if !assert.NotNil(t, actual) {
		return false
	}
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		assertItem(expected[i], actual[i])
	}
	return true
}
