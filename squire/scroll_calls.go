package squire

import (
	"strconv"
	"strings"
)

type scrollOp int

const (
	scrollWrite scrollOp = iota
	scrollRead
	scrollSeek
	scrollClose
)

var scrollJourneys = [...]JourneyDescriptor{
	scrollWrite: {Name: "Scroll.write", Arity: 2, Fn: callScrollWrite},
	scrollRead:  {Name: "Scroll.read", Arity: 2, Fn: callScrollRead},
	scrollSeek:  {Name: "Scroll.seek", Arity: 3, Fn: callScrollSeek},
	scrollClose: {Name: "Scroll.close", Arity: 1, Fn: callScrollClose},
}

var scrollOpsByName = map[string]scrollOp{
	"write": scrollWrite,
	"read":  scrollRead,
	"seek":  scrollSeek,
	"close": scrollClose,
}

// readKind is the closed set of argument shapes Scroll.read understands.
type readKind int

const (
	readLength readKind = iota
	readLine
	readDelimited
	readRest
	readOther
)

func classifyReadArg(arg Value) readKind {
	switch arg.Kind() {
	case KindNumeral:
		return readLength
	case KindText:
		if arg.Text() == "\n" {
			return readLine
		}
		return readDelimited
	case KindNi:
		return readRest
	default:
		return readOther
	}
}

func scrollReceiver(call *Call, method string) (*Scroll, error) {
	recv := call.Arg(0)
	if scroll := recv.Scroll(); scroll != nil {
		return scroll, nil
	}
	return nil, throwType("%s expects a scroll receiver, got %s", method, recv.Kind())
}

func callScrollWrite(call *Call) (Value, error) {
	scroll, err := scrollReceiver(call, "Scroll.write")
	if err != nil {
		return NewNi(), err
	}
	text, err := toText("Scroll.write", call.Arg(1))
	if err != nil {
		return NewNi(), err
	}
	if err := scroll.Write([]byte(text)); err != nil {
		return NewNi(), err
	}
	return NewNi(), nil
}

func callScrollRead(call *Call) (Value, error) {
	scroll, err := scrollReceiver(call, "Scroll.read")
	if err != nil {
		return NewNi(), err
	}
	arg := call.Arg(1)

	var data []byte
	switch classifyReadArg(arg) {
	case readLength:
		data, err = scroll.Read(arg.Numeral())
	case readLine:
		data, err = scroll.ReadLine()
	case readDelimited:
		return NewNi(), throwValue("Scroll.read only supports %q as a line delimiter, got %q", "\n", arg.Text())
	case readRest:
		data, err = scroll.ReadAll()
	default:
		return NewNi(), throwType("invalid read argument kind '%s'", arg.Kind())
	}
	if err != nil {
		return NewNi(), err
	}
	return NewTextBytes(data), nil
}

func callScrollSeek(call *Call) (Value, error) {
	scroll, err := scrollReceiver(call, "Scroll.seek")
	if err != nil {
		return NewNi(), err
	}
	offset, err := toNumeral("Scroll.seek", "offset", call.Arg(1))
	if err != nil {
		return NewNi(), err
	}
	whence, err := toNumeral("Scroll.seek", "whence", call.Arg(2))
	if err != nil {
		return NewNi(), err
	}
	pos, err := scroll.Seek(offset, int(whence))
	if err != nil {
		return NewNi(), err
	}
	return NewNumeral(pos), nil
}

func callScrollClose(call *Call) (Value, error) {
	scroll, err := scrollReceiver(call, "Scroll.close")
	if err != nil {
		return NewNi(), err
	}
	if err := scroll.Close(); err != nil {
		return NewNi(), err
	}
	return NewNi(), nil
}

// toText converts the primitive kinds to their text form.
func toText(method string, val Value) (string, error) {
	switch val.Kind() {
	case KindText:
		return val.Text(), nil
	case KindNumeral, KindVeracity:
		return val.String(), nil
	default:
		return "", throwType("%s expects text, got %s", method, val.Kind())
	}
}

func toNumeral(method, label string, val Value) (int64, error) {
	switch val.Kind() {
	case KindNumeral:
		return val.Numeral(), nil
	case KindVeracity:
		if val.Veracity() {
			return 1, nil
		}
		return 0, nil
	case KindText:
		n, err := strconv.ParseInt(strings.TrimSpace(val.Text()), 10, 64)
		if err != nil {
			return 0, throwValue("%s expects %s as a numeral, got %q", method, label, val.Text())
		}
		return n, nil
	default:
		return 0, throwType("%s expects %s as a numeral, got %s", method, label, val.Kind())
	}
}
