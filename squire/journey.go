package squire

import (
	"context"
	"fmt"
)

type JourneyFunc func(call *Call) (Value, error)

// JourneyDescriptor describes a native callable. Arity counts every
// positional argument, including the receiver of a bound journey.
// Descriptors are shared and never mutated.
type JourneyDescriptor struct {
	Name  string
	Arity int
	Fn    JourneyFunc
}

// Journey pairs a descriptor with the value it was looked up on. The
// receiver is a reference, not ownership: a journey outliving its scroll's
// open state still routes through the scroll's state check.
type Journey struct {
	Descriptor *JourneyDescriptor
	Receiver   Value
}

func (j *Journey) bound() bool {
	return !j.Receiver.IsUndefined()
}

// Call is handed to a JourneyFunc. Positional arguments include the
// receiver at index 0 for bound journeys.
type Call struct {
	ctx    context.Context
	engine *Engine
	args   []Value
	scope  *scope
}

func (c *Call) Context() context.Context { return c.ctx }
func (c *Call) Engine() *Engine          { return c.engine }
func (c *Call) Arg(i int) Value          { return c.args[i] }
func (c *Call) NumArgs() int             { return len(c.args) }

func (c *Call) track(s *Scroll) {
	if c.scope != nil {
		c.scope.created = append(c.scope.created, s)
	}
}

func (e *Engine) invoke(ctx context.Context, sc *scope, journey *Journey, args Args) (Value, error) {
	if journey == nil || journey.Descriptor == nil {
		return NewNi(), throwType("cannot call an empty journey")
	}
	desc := journey.Descriptor
	positional := args.Positional
	if journey.bound() {
		positional = make([]Value, 0, len(args.Positional)+1)
		positional = append(positional, journey.Receiver)
		positional = append(positional, args.Positional...)
	}
	if err := checkArity(journey, len(positional), len(args.Keyword)); err != nil {
		return NewNi(), err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return NewNi(), err
	}
	result, err := desc.Fn(&Call{ctx: ctx, engine: e, args: positional, scope: sc})
	if err != nil {
		return NewNi(), classifyError(desc.Name, err)
	}
	return result, nil
}

func checkArity(journey *Journey, got, kwargs int) error {
	desc := journey.Descriptor
	if kwargs > 0 {
		return throwArity("%s does not accept keyword arguments", desc.Name)
	}
	if got == desc.Arity {
		return nil
	}
	want := desc.Arity
	if journey.bound() {
		want--
		got--
	}
	return throwArity("%s expects %s, got %d", desc.Name, pluralArgs(want), got)
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}
