package squire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
)

type scrollState int

const (
	scrollOpen scrollState = iota
	scrollClosed
)

// Scroll is an open file exposed to scripts. The file is valid exactly while
// the scroll is open; every operation except Describe, Attribute and
// Deallocate checks that first.
type Scroll struct {
	path   string
	mode   string
	file   billy.File
	state  scrollState
	refs   int
	engine *Engine
}

// Open opens path with an fopen-style mode. On failure no scroll exists.
func (e *Engine) Open(path, mode string) (*Scroll, error) {
	flag, err := parseMode(mode)
	if err != nil {
		return nil, e.ioFailure("open", path, err, "cannot open file '%s'", path)
	}
	fsys := e.filesystemFor(path)
	if flag&os.O_CREATE != 0 {
		if err := checkParentDir(fsys, path); err != nil {
			return nil, e.ioFailure("open", path, err, "cannot open file '%s'", path)
		}
	}
	file, err := fsys.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, e.ioFailure("open", path, err, "cannot open file '%s'", path)
	}
	e.logger.Debug("scroll opened", "path", path, "mode", mode)
	return &Scroll{path: path, mode: mode, file: file, state: scrollOpen, engine: e}, nil
}

func (e *Engine) filesystemFor(path string) billy.Filesystem {
	if e.host != nil && filepath.IsAbs(path) {
		return e.host
	}
	return e.fs
}

// checkParentDir fails the way open(2) does when the directory that would
// hold a new file is missing. billy filesystems create it silently.
func checkParentDir(fsys billy.Filesystem, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "open", Path: path, Err: syscall.ENOTDIR}
	}
	return nil
}

func (e *Engine) ioFailure(op, path string, err error, format string, args ...any) error {
	e.logger.Debug("scroll operation failed", "op", op, "path", path, "err", err)
	return throwIO(op, path, err, format, args...)
}

func (s *Scroll) Path() string { return s.path }
func (s *Scroll) Mode() string { return s.mode }
func (s *Scroll) IsOpen() bool { return s.state == scrollOpen }

func (s *Scroll) Describe() string {
	return fmt.Sprintf("Scroll(%s, mode=%s)", s.path, s.mode)
}

// Attribute returns fresh text for path and mode, a bound journey for the
// four methods, and Undefined for anything else.
func (s *Scroll) Attribute(name string) Value {
	switch name {
	case "path":
		return NewText(s.path)
	case "mode":
		return NewText(s.mode)
	}
	if op, ok := scrollOpsByName[name]; ok {
		return NewJourney(&Journey{Descriptor: &scrollJourneys[op], Receiver: NewScroll(s)})
	}
	return Undefined
}

func (s *Scroll) ensureOpen(op string) error {
	if s.state != scrollOpen {
		return throwIO(op, s.path, nil, "cannot %s closed scroll '%s'", op, s.path)
	}
	return nil
}

func (s *Scroll) fail(op string, err error, format string, args ...any) error {
	return s.engine.ioFailure(op, s.path, err, format, args...)
}

// Close releases the file. Closing an already closed scroll is an error.
func (s *Scroll) Close() error {
	if s.state != scrollOpen {
		return throwIO("close", s.path, nil, "scroll '%s' is already closed", s.path)
	}
	s.state = scrollClosed
	if err := s.file.Close(); err != nil {
		return s.fail("close", err, "unable to close scroll '%s'", s.path)
	}
	s.engine.logger.Debug("scroll closed", "path", s.path)
	return nil
}

// Deallocate releases the scroll for good. It only closes the file if the
// scroll is still open, so it is safe after Close and safe to repeat.
func (s *Scroll) Deallocate() {
	if s.state != scrollOpen {
		return
	}
	s.state = scrollClosed
	if err := s.file.Close(); err != nil {
		s.engine.logger.Debug("scroll close on deallocate failed", "path", s.path, "err", err)
		return
	}
	s.engine.logger.Debug("scroll deallocated", "path", s.path)
}

func (s *Scroll) retain() {
	s.refs++
}

func (s *Scroll) release() {
	s.refs--
	if s.refs <= 0 {
		s.refs = 0
		s.Deallocate()
	}
}

// Read reads up to n bytes. Fewer bytes come back only at end of stream.
func (s *Scroll) Read(n int64) ([]byte, error) {
	if n < 0 {
		return nil, throwValue("can only read nonnegative amounts")
	}
	if err := s.ensureOpen("read"); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(int(min(n, int64(s.engine.config.ReadChunkSize))))
	if _, err := io.CopyN(&buf, s.file, n); err != nil && !errors.Is(err, io.EOF) {
		return nil, s.fail("read", err, "unable to read %d bytes from '%s'", n, s.path)
	}
	return buf.Bytes(), nil
}

// ReadLine reads through the next newline, keeping it. A final line without
// a terminator is returned as is; an exhausted stream is an error. Bytes read
// past the newline are handed back to the stream so the offset stays exact.
func (s *Scroll) ReadLine() ([]byte, error) {
	if err := s.ensureOpen("read"); err != nil {
		return nil, err
	}
	chunk := make([]byte, s.engine.config.LineChunkSize)
	var line []byte
	for {
		n, err := s.file.Read(chunk)
		if idx := bytes.IndexByte(chunk[:n], '\n'); idx >= 0 {
			line = append(line, chunk[:idx+1]...)
			if over := n - idx - 1; over > 0 {
				if _, serr := s.file.Seek(int64(-over), io.SeekCurrent); serr != nil {
					return nil, s.fail("read", serr, "cannot rewind '%s' after reading a line", s.path)
				}
			}
			return line, nil
		}
		line = append(line, chunk[:n]...)
		switch {
		case err != nil && !errors.Is(err, io.EOF):
			return nil, s.fail("read", err, "cannot read line from '%s'", s.path)
		case err != nil || n == 0:
			if len(line) > 0 {
				return line, nil
			}
			return nil, s.fail("read", io.EOF, "cannot read line from '%s'", s.path)
		}
	}
}

// ReadAll reads everything from the current offset to end of stream.
func (s *Scroll) ReadAll() ([]byte, error) {
	if err := s.ensureOpen("read"); err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, s.engine.config.ReadChunkSize))
	if _, err := buf.ReadFrom(s.file); err != nil {
		return nil, s.fail("read", err, "unable to read '%s'", s.path)
	}
	return buf.Bytes(), nil
}

// Write writes all of p at the current offset. A short write is an error and
// leaves the offset wherever the file put it.
func (s *Scroll) Write(p []byte) error {
	if err := s.ensureOpen("write"); err != nil {
		return err
	}
	n, err := s.file.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return s.fail("write", err, "cannot write %d bytes to '%s'", len(p), s.path)
	}
	return nil
}

// Seek moves the offset and returns the new absolute offset as reported by a
// separate Tell.
func (s *Scroll) Seek(offset int64, whence int) (int64, error) {
	if err := s.ensureOpen("seek"); err != nil {
		return 0, err
	}
	if _, err := s.file.Seek(offset, whence); err != nil {
		return 0, s.fail("seek", err, "cannot seek '%d' for '%s'", whence, s.path)
	}
	return s.Tell()
}

func (s *Scroll) Tell() (int64, error) {
	if err := s.ensureOpen("tell"); err != nil {
		return 0, err
	}
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, s.fail("tell", err, "cannot get offset for '%s'", s.path)
	}
	return pos, nil
}
