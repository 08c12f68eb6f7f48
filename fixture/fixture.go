// Package fixture loads test example files (payloads & expected outputs)
// from a directory tree laid out after test names
package fixture

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	// ExpectedSuffix marks the file holding the expected output of a test
	ExpectedSuffix = "_Expected"
	// PayloadSuffix marks the file holding the input of a test
	PayloadSuffix = "_Payload"
	// DefaultExt is the file extension used when none is given
	DefaultExt = "json"
)

// Loader resolves & reads example files below a root directory. A test named
// "TestBooking/refund" with suffix "_Expected" resolves to
//
//	<dir>/TestBooking/refund_Expected.json
//
// or, if that file doesn't exist
//
//	<dir>/TestBooking/refund/_Expected.json
//
// File contents are cached, a Loader is safe for concurrent use
type Loader struct {
	dir   string
	ext   string
	log   *slog.Logger
	cache sync.Map // path -> []byte
}

// Option configures a Loader
type Option func(*Loader)

// OptionExt sets the extension used when a call passes an empty one
func OptionExt(ext string) Option {
	return func(l *Loader) {
		l.ext = strings.TrimPrefix(ext, ".")
	}
}

// OptionLogger sets the logger, nothing is logged by default
func OptionLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// New creates a Loader reading from dir
func New(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir: dir,
		ext: DefaultExt,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the root directory of the loader
func (l *Loader) Dir() string {
	return l.dir
}

// Path resolves the file for a test name, extension & suffix. Segments of
// name separated by "/" become directories. The returned path may not exist
func (l *Loader) Path(name, ext, suffix string) string {
	if ext == "" {
		ext = l.ext
	}
	base := filepath.Join(append([]string{l.dir}, strings.Split(name, "/")...)...)

	p := base + suffix + "." + ext
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(base, suffix+"."+ext)
}

// ReadFile returns the contents of a fixture file. Callers must not modify
// the returned slice, it's shared with later calls
func (l *Loader) ReadFile(name, ext, suffix string) ([]byte, error) {
	p := l.Path(name, ext, suffix)
	if data, ok := l.cache.Load(p); ok {
		return data.([]byte), nil
	}

	l.log.Debug("reading fixture", "path", p)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture %q", name+suffix)
	}
	v, _ := l.cache.LoadOrStore(p, data)
	return v.([]byte), nil
}

// ReadText returns the contents of a fixture file as a string
func (l *Loader) ReadText(name, ext, suffix string) (string, error) {
	data, err := l.ReadFile(name, ext, suffix)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadExpectation reads the expected output for a test
func (l *Loader) LoadExpectation(name string) (string, error) {
	return l.ReadText(name, "", ExpectedSuffix)
}

// LoadPayload reads the input for a test
func (l *Loader) LoadPayload(name string) (string, error) {
	return l.ReadText(name, "", PayloadSuffix)
}
