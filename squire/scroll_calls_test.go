package squire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openViaKingdom(t *testing.T, engine *Engine, path, mode string) *Scroll {
	t.Helper()
	io, ok := engine.Kingdom("IO")
	require.True(t, ok)
	open := io.Subjects["open"].Journey()
	require.NotNil(t, open)

	val, err := engine.Invoke(context.Background(), open, Args{Positional: []Value{NewText(path), NewText(mode)}})
	require.NoError(t, err)
	require.Equal(t, KindScroll, val.Kind())
	t.Cleanup(val.Scroll().Deallocate)
	return val.Scroll()
}

func invokeMethod(engine *Engine, scroll *Scroll, name string, args ...Value) (Value, error) {
	return engine.Invoke(context.Background(), scroll.Attribute(name).Journey(), Args{Positional: args})
}

func TestMethodSurfaceScenario(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	val, err := invokeMethod(engine, scroll, "write", NewText("hello\nworld"))
	require.NoError(t, err)
	assert.True(t, val.IsNi())

	val, err = invokeMethod(engine, scroll, "seek", NewNumeral(0), NewNumeral(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), val.Numeral())

	val, err = invokeMethod(engine, scroll, "read", NewNumeral(5))
	require.NoError(t, err)
	assert.Equal(t, "hello", val.Text())

	// The offset now sits on the newline that ends "hello".
	val, err = invokeMethod(engine, scroll, "read", NewText("\n"))
	require.NoError(t, err)
	assert.Equal(t, "\n", val.Text())

	val, err = invokeMethod(engine, scroll, "read", NewText("\n"))
	require.NoError(t, err)
	assert.Equal(t, "world", val.Text())

	_, err = invokeMethod(engine, scroll, "read", NewText("\n"))
	requireException(t, err, IOError)

	val, err = invokeMethod(engine, scroll, "seek", NewNumeral(-5), NewNumeral(2))
	require.NoError(t, err)
	assert.Equal(t, int64(6), val.Numeral())

	val, err = invokeMethod(engine, scroll, "read", NewNi())
	require.NoError(t, err)
	assert.Equal(t, "world", val.Text())

	val, err = invokeMethod(engine, scroll, "close")
	require.NoError(t, err)
	assert.True(t, val.IsNi())

	_, err = invokeMethod(engine, scroll, "close")
	requireException(t, err, IOError)
}

func TestArityMismatchIsRecoverable(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	cases := []struct {
		method string
		args   []Value
		want   string
	}{
		{method: "read", args: nil, want: "Scroll.read expects 1 argument, got 0"},
		{method: "write", args: []Value{NewText("a"), NewText("b")}, want: "Scroll.write expects 1 argument, got 2"},
		{method: "seek", args: []Value{NewNumeral(0)}, want: "Scroll.seek expects 2 arguments, got 1"},
		{method: "close", args: []Value{NewNi()}, want: "Scroll.close expects 0 arguments, got 1"},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			_, err := invokeMethod(engine, scroll, tc.method, tc.args...)
			exc := requireException(t, err, ArityError)
			assert.Equal(t, tc.want, exc.Message)
		})
	}
	assert.True(t, scroll.IsOpen())

	io, _ := engine.Kingdom("IO")
	_, err := engine.Invoke(context.Background(), io.Subjects["open"].Journey(), Args{Positional: []Value{NewText("t.txt")}})
	exc := requireException(t, err, ArityError)
	assert.Equal(t, "IO.open expects 2 arguments, got 1", exc.Message)
}

func TestKeywordArgumentsRejected(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	_, err := engine.Invoke(context.Background(), scroll.Attribute("read").Journey(), Args{
		Positional: []Value{NewNumeral(1)},
		Keyword:    map[string]Value{"length": NewNumeral(1)},
	})
	exc := requireException(t, err, ArityError)
	assert.Equal(t, "Scroll.read does not accept keyword arguments", exc.Message)
}

func TestReadArgumentKinds(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	_, err := invokeMethod(engine, scroll, "read", NewVeracity(true))
	exc := requireException(t, err, TypeError)
	assert.Equal(t, "invalid read argument kind 'veracity'", exc.Message)

	_, err = invokeMethod(engine, scroll, "read", NewScroll(scroll))
	exc = requireException(t, err, TypeError)
	assert.Contains(t, exc.Message, "'scroll'")

	_, err = invokeMethod(engine, scroll, "read", NewText(","))
	requireException(t, err, ValueError)

	_, err = invokeMethod(engine, scroll, "read", NewNumeral(-1))
	exc = requireException(t, err, ValueError)
	assert.Equal(t, "can only read nonnegative amounts", exc.Message)

	val, err := invokeMethod(engine, scroll, "read", NewNumeral(0))
	require.NoError(t, err)
	assert.Equal(t, KindText, val.Kind())
	assert.Equal(t, "", val.Text())
}

func TestClassifyReadArg(t *testing.T) {
	cases := []struct {
		arg  Value
		want readKind
	}{
		{arg: NewNumeral(3), want: readLength},
		{arg: NewText("\n"), want: readLine},
		{arg: NewText("\r\n"), want: readDelimited},
		{arg: NewNi(), want: readRest},
		{arg: NewVeracity(false), want: readOther},
		{arg: Undefined, want: readOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyReadArg(tc.arg), tc.arg.Inspect())
	}
}

func TestWriteAndSeekMarshaling(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	for _, arg := range []Value{NewText("n="), NewNumeral(42), NewText(" "), NewVeracity(true)} {
		_, err := invokeMethod(engine, scroll, "write", arg)
		require.NoError(t, err)
	}
	_, err := invokeMethod(engine, scroll, "write", NewNi())
	exc := requireException(t, err, TypeError)
	assert.Equal(t, "Scroll.write expects text, got ni", exc.Message)

	val, err := invokeMethod(engine, scroll, "seek", NewText(" 2 "), NewVeracity(false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), val.Numeral())

	val, err = invokeMethod(engine, scroll, "read", NewNi())
	require.NoError(t, err)
	assert.Equal(t, "42 yay", val.Text())

	_, err = invokeMethod(engine, scroll, "seek", NewText("two"), NewNumeral(0))
	requireException(t, err, ValueError)

	_, err = invokeMethod(engine, scroll, "seek", NewNumeral(0), NewNi())
	exc = requireException(t, err, TypeError)
	assert.Equal(t, "Scroll.seek expects whence as a numeral, got ni", exc.Message)
}

func TestJourneyOutlivesClosedScroll(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")
	write := scroll.Attribute("write").Journey()

	require.NoError(t, scroll.Close())

	_, err := engine.Invoke(context.Background(), write, Args{Positional: []Value{NewText("late")}})
	exc := requireException(t, err, IOError)
	assert.Equal(t, "cannot write closed scroll 't.txt'", exc.Message)
}

func TestOpenArgumentTypes(t *testing.T) {
	engine, _ := newTestEngine(t)
	io, _ := engine.Kingdom("IO")
	open := io.Subjects["open"].Journey()

	_, err := engine.Invoke(context.Background(), open, Args{Positional: []Value{NewNumeral(1), NewText("r")}})
	exc := requireException(t, err, TypeError)
	assert.Equal(t, "IO.open expects path as text, got numeral", exc.Message)
}

func TestInvokeHonoursCancelledContext(t *testing.T) {
	engine, _ := newTestEngine(t)
	scroll := openViaKingdom(t, engine, "t.txt", "w+")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Invoke(ctx, scroll.Attribute("write").Journey(), Args{Positional: []Value{NewText("x")}})
	require.ErrorIs(t, err, context.Canceled)
	_, isExc := AsException(err)
	assert.False(t, isExc)
}
