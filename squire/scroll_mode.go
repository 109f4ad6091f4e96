package squire

import (
	"errors"
	"fmt"
	"os"
)

var errInvalidMode = errors.New("invalid mode")

// parseMode maps an fopen-style mode string to open flags. The first byte
// picks the access pattern; '+' adds the missing direction, 'b' and 't' are
// accepted and ignored, and 'x' makes a "w" open fail if the file exists.
func parseMode(mode string) (int, error) {
	if mode == "" {
		return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
	}
	var flag int
	switch mode[0] {
	case 'r':
		flag = os.O_RDONLY
	case 'w':
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
	}

	seen := make(map[byte]bool, 3)
	for i := 1; i < len(mode); i++ {
		c := mode[i]
		if seen[c] {
			return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
		}
		seen[c] = true
		switch c {
		case '+':
			flag = flag&^(os.O_RDONLY|os.O_WRONLY) | os.O_RDWR
		case 'b', 't':
		case 'x':
			if mode[0] != 'w' {
				return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
			}
			flag |= os.O_EXCL
		default:
			return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
		}
	}
	if seen['b'] && seen['t'] {
		return 0, fmt.Errorf("%w %q", errInvalidMode, mode)
	}
	return flag, nil
}
