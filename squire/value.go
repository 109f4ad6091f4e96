package squire

type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNi
	KindVeracity
	KindNumeral
	KindText
	KindJourney
	KindScroll
	KindKingdom
	KindException
)

type Value struct {
	kind ValueKind
	data any
}

// Args carries the positional and keyword arguments of one journey call.
type Args struct {
	Positional []Value
	Keyword    map[string]Value
}

// Kingdom groups native subjects under a namespace, e.g. IO.open.
type Kingdom struct {
	Name     string
	Subjects map[string]Value
}
