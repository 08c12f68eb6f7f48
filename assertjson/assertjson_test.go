package assertjson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qri-io/semequal/fixture"
)

// mockT records failures instead of failing the running test
type mockT struct {
	errors  []string
	stopped bool
}

func (m *mockT) Errorf(format string, args ...interface{}) {
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}

func (m *mockT) FailNow() {
	m.stopped = true
}

func (m *mockT) failed() bool {
	return len(m.errors) > 0
}

func TestEqual(t *testing.T) {
	Equal(t, `{"a":1,"b":[true,null]}`, `{"b":[true,null],"a":1.0}`)
	Equal(t, `{"id":"x1","n":2}`, `{"n":2,"id":"y2"}`, "id")

	m := &mockT{}
	if Equal(m, `{"arr":[1,2,3]}`, `{"arr":[3,2,1]}`) {
		t.Errorf("expected assertion to fail")
	}
	if !m.failed() || m.stopped {
		t.Fatalf("expected a non-fatal failure, got: %+v", m)
	}
	for _, want := range []string{"################### Expected:", "******************* Actual:", "Values for path arr[0] are different."} {
		if !strings.Contains(m.errors[0], want) {
			t.Errorf("failure message should contain %q, got:\n%s", want, m.errors[0])
		}
	}

	m = &mockT{}
	if Equal(m, `{"a":`, `{}`) {
		t.Errorf("expected malformed json to fail")
	}
	if !m.failed() || !strings.Contains(m.errors[0], "expected document") {
		t.Errorf("expected a parse failure, got: %v", m.errors)
	}
}

func TestRequire(t *testing.T) {
	Require(t, `[1,2]`, `[1,2]`)

	m := &mockT{}
	Require(m, `{"a":{"b":1}}`, `{"a":{"c":1}}`)
	if !m.failed() || !m.stopped {
		t.Fatalf("expected a fatal failure, got: %+v", m)
	}
	if !strings.Contains(m.errors[0], "Property: 'a.b' is missing in actual object") {
		t.Errorf("unexpected failure message:\n%s", m.errors[0])
	}
}

func TestEqualValues(t *testing.T) {
	EqualValues(t,
		map[string]interface{}{"a": []interface{}{1, "x"}, "b": nil},
		map[string]interface{}{"b": nil, "a": []interface{}{1.0, "x"}},
	)

	m := &mockT{}
	if EqualValues(m, map[string]interface{}{"a": 1}, map[string]interface{}{"a": "1"}) {
		t.Errorf("expected assertion to fail")
	}
	if !m.failed() || !strings.Contains(m.errors[0], "Token of path 'a' of type Number is different from 'a' of type String") {
		t.Errorf("unexpected failure: %v", m.errors)
	}

	m = &mockT{}
	if EqualValues(m, struct{}{}, nil) {
		t.Errorf("expected unsupported values to fail")
	}
}

func TestEqualFixture(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "TestOrder", "paid_Expected.json")
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(`{"status":"paid","total":10.50,"at":"2022-10-01T22:00:00Z"}`), 0644); err != nil {
		t.Fatal(err)
	}
	l := fixture.New(dir)

	EqualFixture(t, l, "TestOrder/paid", `{"total":10.5,"status":"paid","at":"2023-01-01T00:00:00Z"}`, "at")

	m := &mockT{}
	if EqualFixture(m, l, "TestOrder/refunded", `{}`) {
		t.Errorf("expected a missing fixture to fail")
	}
	if !m.failed() {
		t.Errorf("expected a failure to be recorded")
	}
}

func TestCollection(t *testing.T) {
	type room struct {
		Code  string
		Price string
	}
	expected := []room{{"DBL", `{"amount":100}`}, {"SGL", `{"amount":80}`}}
	actual := []room{{"DBL", `{"amount":100.0}`}, {"SGL", `{"amount":80}`}}

	calls := 0
	Collection(t, expected, actual, func(e, a room) {
		calls++
		if e.Code != a.Code {
			t.Errorf("code mismatch: %s != %s", e.Code, a.Code)
		}
		Equal(t, e.Price, a.Price)
	})
	if calls != 2 {
		t.Errorf("expected 2 item assertions, got %d", calls)
	}

	cases := []struct {
		description      string
		expected, actual []room
		pass             bool
	}{
		{"both nil", nil, nil, true},
		{"nil expected", nil, []room{}, false},
		{"nil actual", []room{}, nil, false},
		{"length", expected, actual[:1], false},
	}
	for _, c := range cases {
		m := &mockT{}
		got := Collection(m, c.expected, c.actual, func(e, a room) {})
		if got != c.pass || m.failed() == c.pass {
			t.Errorf("%s: expected pass=%t, got %t with errors %v", c.description, c.pass, got, m.errors)
		}
	}
}
