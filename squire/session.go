package squire

import (
	"context"
	"fmt"
	"io"
	"maps"
	"sort"
	"strings"
)

// scope records the scrolls opened while evaluating one statement, so that
// handles nobody kept a reference to are released when it finishes.
type scope struct {
	created []*Scroll
}

func (sc *scope) sweep() {
	for _, s := range sc.created {
		if s.refs == 0 {
			s.Deallocate()
		}
	}
}

// Session evaluates console statements against an engine. Variables own the
// scrolls they hold: a scroll is deallocated when its last variable is
// reassigned or the session is reset. The last result is kept in `_`.
type Session struct {
	engine *Engine
	vars   map[string]Value
}

func NewSession(engine *Engine) *Session {
	return &Session{engine: engine, vars: make(map[string]Value)}
}

func (s *Session) Engine() *Engine { return s.engine }

// Vars returns a copy of the session variables.
func (s *Session) Vars() map[string]Value {
	return maps.Clone(s.vars)
}

// Names returns variable and kingdom names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return append(names, s.engine.Kingdoms()...)
}

// Reset drops every variable, deallocating scrolls no longer referenced.
func (s *Session) Reset() {
	old := s.vars
	s.vars = make(map[string]Value)
	for _, val := range old {
		if scroll := val.Scroll(); scroll != nil {
			scroll.release()
		}
	}
}

// Eval parses and evaluates one statement. Uncaught exceptions come back as
// *Exception errors; syntax problems as *SyntaxError.
func (s *Session) Eval(ctx context.Context, line string) (Value, error) {
	stmt, err := parseStatement(line)
	if err != nil {
		return NewNi(), err
	}
	if stmt == nil {
		return NewNi(), nil
	}
	return s.exec(ctx, stmt)
}

func (s *Session) exec(ctx context.Context, stmt *statement) (Value, error) {
	sc := &scope{}
	defer sc.sweep()

	val, err := s.eval(ctx, sc, stmt.expr)
	if err != nil {
		return NewNi(), err
	}
	if stmt.assign != "" {
		s.assign(stmt.assign, val)
	}
	s.assign("_", val)
	return val, nil
}

// Check parses every line of source without evaluating anything.
func (s *Session) Check(source string) error {
	for i, line := range strings.Split(source, "\n") {
		if _, err := parseStatement(line); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// Run evaluates source line by line, writing the inspected result of each
// bare expression that is not ni to out. It stops at the first error.
func (s *Session) Run(ctx context.Context, source string, out io.Writer) error {
	for i, line := range strings.Split(source, "\n") {
		stmt, err := parseStatement(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if stmt == nil {
			continue
		}
		val, err := s.exec(ctx, stmt)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if stmt.assign == "" && !val.IsNi() && out != nil {
			fmt.Fprintln(out, val.Inspect())
		}
	}
	return nil
}

func (s *Session) assign(name string, val Value) {
	if scroll := val.Scroll(); scroll != nil {
		scroll.retain()
	}
	if old, ok := s.vars[name]; ok {
		if scroll := old.Scroll(); scroll != nil {
			scroll.release()
		}
	}
	s.vars[name] = val
}

func (s *Session) eval(ctx context.Context, sc *scope, expr expression) (Value, error) {
	switch e := expr.(type) {
	case *literalExpr:
		return e.value, nil
	case *identExpr:
		if val, ok := s.vars[e.name]; ok {
			return val, nil
		}
		if k, ok := s.engine.Kingdom(e.name); ok {
			return NewKingdom(k), nil
		}
		return NewNi(), throwName("undefined variable '%s'", e.name)
	case *attrExpr:
		target, err := s.eval(ctx, sc, e.target)
		if err != nil {
			return NewNi(), err
		}
		val := target.Attribute(e.name)
		if val.IsUndefined() {
			return NewNi(), throwName("undefined attribute '%s' for %s", e.name, target.Kind())
		}
		return val, nil
	case *callExpr:
		return s.evalCall(ctx, sc, e)
	case *catchExpr:
		val, err := s.eval(ctx, sc, e.inner)
		if exc, ok := AsException(err); ok {
			return newException(exc), nil
		}
		return val, err
	default:
		return NewNi(), fmt.Errorf("squire: unsupported expression %T", expr)
	}
}

func (s *Session) evalCall(ctx context.Context, sc *scope, call *callExpr) (Value, error) {
	callee, err := s.eval(ctx, sc, call.callee)
	if err != nil {
		return NewNi(), err
	}
	journey := callee.Journey()
	if journey == nil {
		return NewNi(), throwType("cannot call %s value", callee.Kind())
	}
	args := Args{Positional: make([]Value, 0, len(call.args))}
	for _, argExpr := range call.args {
		val, err := s.eval(ctx, sc, argExpr)
		if err != nil {
			return NewNi(), err
		}
		args.Positional = append(args.Positional, val)
	}
	if len(call.keyword) > 0 {
		args.Keyword = make(map[string]Value, len(call.keyword))
		for _, kw := range call.keyword {
			val, err := s.eval(ctx, sc, kw.value)
			if err != nil {
				return NewNi(), err
			}
			args.Keyword[kw.name] = val
		}
	}
	return s.engine.invoke(ctx, sc, journey, args)
}
