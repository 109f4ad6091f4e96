package squire

// Undefined is returned by lookups that found nothing.
var Undefined = Value{kind: KindUndefined}

func NewNi() Value                { return Value{kind: KindNi} }
func NewVeracity(b bool) Value    { return Value{kind: KindVeracity, data: b} }
func NewNumeral(n int64) Value    { return Value{kind: KindNumeral, data: n} }
func NewText(s string) Value      { return Value{kind: KindText, data: s} }
func NewTextBytes(b []byte) Value { return Value{kind: KindText, data: string(b)} }
func NewKingdom(k *Kingdom) Value { return Value{kind: KindKingdom, data: k} }
func NewScroll(s *Scroll) Value   { return Value{kind: KindScroll, data: s} }
func NewJourney(j *Journey) Value { return Value{kind: KindJourney, data: j} }
func newException(e *Exception) Value {
	return Value{kind: KindException, data: e}
}

// NewBuiltin wraps an unbound journey descriptor, such as a kingdom subject.
func NewBuiltin(desc *JourneyDescriptor) Value {
	return NewJourney(&Journey{Descriptor: desc})
}
