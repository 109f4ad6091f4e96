package squire

import (
	"errors"
	"os"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	engine, err := NewEngine(Config{FS: fs})
	require.NoError(t, err)
	return engine, fs
}

func requireException(t *testing.T, err error, kind ExceptionKind) *Exception {
	t.Helper()
	require.Error(t, err)
	exc, ok := AsException(err)
	require.Truef(t, ok, "expected *Exception, got %T: %v", err, err)
	require.Equalf(t, kind, exc.Kind, "unexpected exception: %v", exc)
	return exc
}

// trickleFS hands out files whose reads move at most one byte at a time.
type trickleFS struct {
	billy.Filesystem
}

func (fs trickleFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	f, err := fs.Filesystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &trickleFile{File: f}, nil
}

type trickleFile struct {
	billy.File
}

func (f *trickleFile) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return f.File.Read(p)
}

var errDiskOnFire = errors.New("disk on fire")

// brokenFS hands out files that fail after a number of one-byte reads and
// never fully accept writes or closes.
type brokenFS struct {
	billy.Filesystem
	readsBeforeFailure int
}

func (fs brokenFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	f, err := fs.Filesystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &brokenFile{File: f, reads: fs.readsBeforeFailure}, nil
}

type brokenFile struct {
	billy.File
	reads int
}

func (f *brokenFile) Read(p []byte) (int, error) {
	if f.reads <= 0 {
		return 0, errDiskOnFire
	}
	f.reads--
	if len(p) > 1 {
		p = p[:1]
	}
	return f.File.Read(p)
}

func (f *brokenFile) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func (f *brokenFile) Close() error {
	_ = f.File.Close()
	return errDiskOnFire
}
