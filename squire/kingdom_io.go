package squire

var ioOpenJourney = JourneyDescriptor{Name: "IO.open", Arity: 2, Fn: callIOOpen}

func newIOKingdom() *Kingdom {
	return &Kingdom{
		Name: "IO",
		Subjects: map[string]Value{
			"open": NewBuiltin(&ioOpenJourney),
		},
	}
}

func callIOOpen(call *Call) (Value, error) {
	path, err := textParam("IO.open", "path", call.Arg(0))
	if err != nil {
		return NewNi(), err
	}
	mode, err := textParam("IO.open", "mode", call.Arg(1))
	if err != nil {
		return NewNi(), err
	}
	scroll, err := call.Engine().Open(path, mode)
	if err != nil {
		return NewNi(), err
	}
	call.track(scroll)
	return NewScroll(scroll), nil
}

func textParam(method, label string, val Value) (string, error) {
	if val.Kind() != KindText {
		return "", throwType("%s expects %s as text, got %s", method, label, val.Kind())
	}
	return val.Text(), nil
}
