package fixture

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "TestBooking", "refund_Expected.json"), `{}`)
	writeFile(t, filepath.Join(dir, "TestBooking", "cancel", "_Expected.json"), `{}`)

	l := New(dir)
	cases := []struct {
		name, ext, suffix string
		expect            string
	}{
		{"TestBooking/refund", "", ExpectedSuffix, filepath.Join(dir, "TestBooking", "refund_Expected.json")},
		{"TestBooking/cancel", "", ExpectedSuffix, filepath.Join(dir, "TestBooking", "cancel", "_Expected.json")},
		// neither exists, the nested form is returned
		{"TestBooking/refund", "xml", ExpectedSuffix, filepath.Join(dir, "TestBooking", "refund", "_Expected.xml")},
		{"TestPlain", "txt", "", filepath.Join(dir, "TestPlain", ".txt")},
	}

	for _, c := range cases {
		if got := l.Path(c.name, c.ext, c.suffix); got != c.expect {
			t.Errorf("Path(%q, %q, %q):\nwant: %s\ngot:  %s", c.name, c.ext, c.suffix, c.expect, got)
		}
	}
	if l.Dir() != dir {
		t.Errorf("unexpected dir %s", l.Dir())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "TestSearch", "one_Payload.yaml"), "q: hotels\n")
	writeFile(t, filepath.Join(dir, "TestSearch", "one_Expected.yaml"), "total: 3\n")

	l := New(dir, OptionExt(".yaml"))

	payload, err := l.LoadPayload("TestSearch/one")
	if err != nil {
		t.Fatal(err)
	}
	if payload != "q: hotels\n" {
		t.Errorf("unexpected payload: %q", payload)
	}

	expect, err := l.LoadExpectation("TestSearch/one")
	if err != nil {
		t.Fatal(err)
	}
	if expect != "total: 3\n" {
		t.Errorf("unexpected expectation: %q", expect)
	}

	if _, err := l.LoadExpectation("TestSearch/two"); err == nil {
		t.Errorf("expected an error for a missing fixture")
	} else if !strings.Contains(err.Error(), "TestSearch/two_Expected") {
		t.Errorf("error should name the fixture, got: %s", err)
	}
}

func TestReadFileCache(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "TestCache_Payload.json")
	writeFile(t, p, `{"v":1}`)

	buf := &bytes.Buffer{}
	l := New(dir, OptionLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	first, err := l.ReadText("TestCache", "", PayloadSuffix)
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, p, `{"v":2}`)
	second, err := l.ReadText("TestCache", "", PayloadSuffix)
	if err != nil {
		t.Fatal(err)
	}
	if first != `{"v":1}` || second != first {
		t.Errorf("expected cached content, got %q then %q", first, second)
	}

	if n := strings.Count(buf.String(), "reading fixture"); n != 1 {
		t.Errorf("expected the file to be read once, log shows %d reads:\n%s", n, buf.String())
	}
}
