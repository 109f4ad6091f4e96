package squire

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNi:
		return "ni"
	case KindVeracity:
		return "veracity"
	case KindNumeral:
		return "numeral"
	case KindText:
		return "text"
	case KindJourney:
		return "journey"
	case KindScroll:
		return "scroll"
	case KindKingdom:
		return "kingdom"
	case KindException:
		return "exception"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.data.(string)
	case KindNi:
		return "ni"
	case KindUndefined:
		return "undefined"
	case KindVeracity:
		if v.Veracity() {
			return "yay"
		}
		return "nay"
	case KindNumeral:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindJourney:
		return fmt.Sprintf("<journey %s>", v.data.(*Journey).Descriptor.Name)
	case KindScroll:
		return v.data.(*Scroll).Describe()
	case KindKingdom:
		return fmt.Sprintf("<kingdom %s>", v.data.(*Kingdom).Name)
	case KindException:
		return v.data.(*Exception).Error()
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Inspect renders a value the way the console echoes it: text is quoted so
// control and zero bytes stay visible.
func (v Value) Inspect() string {
	if v.kind == KindText {
		return strconv.Quote(v.data.(string))
	}
	return v.String()
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined, KindNi:
		return true
	case KindVeracity:
		return v.Veracity() == other.Veracity()
	case KindNumeral:
		return v.data.(int64) == other.data.(int64)
	case KindText:
		return v.data.(string) == other.data.(string)
	case KindJourney:
		a, b := v.data.(*Journey), other.data.(*Journey)
		return a.Descriptor == b.Descriptor && a.Receiver == b.Receiver
	default:
		return v.data == other.data
	}
}

// Attribute looks up name on the value. Missing attributes yield Undefined
// rather than an error; callers decide whether that is fatal.
func (v Value) Attribute(name string) Value {
	switch v.kind {
	case KindScroll:
		return v.data.(*Scroll).Attribute(name)
	case KindKingdom:
		if subject, ok := v.data.(*Kingdom).Subjects[name]; ok {
			return subject
		}
		return Undefined
	case KindException:
		return v.data.(*Exception).attribute(name)
	default:
		return Undefined
	}
}
