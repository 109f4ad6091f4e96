// Package squire hosts the native side of the Squire standard library. It
// provides a small tagged value system, builtin journeys with fixed arity,
// kingdoms that group native functionality, and the IO kingdom whose
// Scroll values wrap open files:
//   - `IO.open(path, mode)` opens a file with an fopen-style mode string.
//   - `scroll.read(n)`, `scroll.read("\n")` and `scroll.read(ni)` read a
//     byte count, one line, or the rest of the stream.
//   - `scroll.write(text)`, `scroll.seek(offset, whence)` and
//     `scroll.close()` mirror the matching stream operations.
//
// Failures surface as *Exception errors (IOError, TypeError, ValueError,
// ArityError, NameError) which the console can trap with `catch`. Files are
// opened through a billy.Filesystem so hosts can sandbox or virtualise them.
package squire
