package squire

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNi() bool { return v.kind == KindNi }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

func (v Value) Veracity() bool {
	if v.kind == KindVeracity {
		return v.data.(bool)
	}
	return false
}

func (v Value) Numeral() int64 {
	if v.kind == KindNumeral {
		return v.data.(int64)
	}
	return 0
}

// Text returns the raw bytes of a text value. Embedded zero bytes are kept.
func (v Value) Text() string {
	if v.kind != KindText {
		return ""
	}
	return v.data.(string)
}

func (v Value) Journey() *Journey {
	if v.kind != KindJourney {
		return nil
	}
	return v.data.(*Journey)
}

func (v Value) Scroll() *Scroll {
	if v.kind != KindScroll {
		return nil
	}
	return v.data.(*Scroll)
}

func (v Value) Kingdom() *Kingdom {
	if v.kind != KindKingdom {
		return nil
	}
	return v.data.(*Kingdom)
}

func (v Value) Exception() *Exception {
	if v.kind != KindException {
		return nil
	}
	return v.data.(*Exception)
}
