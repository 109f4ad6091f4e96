package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/squire-lang/squire/squire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (replModel, string) {
	t.Helper()
	root := t.TempDir()
	engine, err := squire.NewEngine(squire.Config{Root: root})
	require.NoError(t, err)
	return newREPLModel(engine), root
}

func evalInREPL(t *testing.T, m replModel, input string) string {
	t.Helper()
	output, isErr := m.evaluate(input)
	require.Falsef(t, isErr, "unexpected eval error: %s", output)
	return output
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	require.Truef(t, ok, "unexpected model type %T", model)

	assert.True(t, rm.quitting)
	assert.Empty(t, rm.textInput.Value())
	require.NotNil(t, cmd)
	if msg := cmd(); msg != nil {
		assert.IsType(t, tea.QuitMsg{}, msg)
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	m, _ := newTestModel(t)
	m.textInput.SetValue(":help")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	require.Truef(t, ok, "unexpected model type %T", model)

	assert.Nil(t, cmd)
	assert.False(t, rm.quitting)
	assert.True(t, rm.showHelp)
	assert.Empty(t, rm.textInput.Value())
}

func TestEvaluateAssignmentStoresVariable(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, "42", evalInREPL(t, m, "count = 42"))

	count, ok := m.session.Vars()["count"]
	require.True(t, ok, "expected count to be stored in the session")
	assert.Equal(t, squire.KindNumeral, count.Kind())
	assert.Equal(t, int64(42), count.Numeral())
}

func TestEvaluateOpensScrollAndReads(t *testing.T) {
	m, root := newTestModel(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "tale.txt"), []byte("once\nupon"), 0o644))

	assert.Equal(t, "Scroll(tale.txt, mode=r)", evalInREPL(t, m, `tale = IO.open("tale.txt", "r")`))
	assert.Equal(t, `"once\n"`, evalInREPL(t, m, `tale.read("\n")`))
}

func TestEvaluateReportsException(t *testing.T) {
	m, _ := newTestModel(t)

	output, isErr := m.evaluate(`IO.open("absent.txt", "r")`)
	require.Truef(t, isErr, "expected error, got %q", output)
	assert.Contains(t, output, "IOError: cannot open file 'absent.txt'")
}

func TestResetCommandClearsVariables(t *testing.T) {
	m, _ := newTestModel(t)
	evalInREPL(t, m, "x = 1")
	m.textInput.SetValue(":reset")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)
	assert.Empty(t, rm.session.Vars())
	require.NotEmpty(t, rm.history)
	assert.Equal(t, "Session reset", rm.history[len(rm.history)-1].output)
}

func TestAutocompleteKingdomName(t *testing.T) {
	m, _ := newTestModel(t)
	m.textInput.SetValue("f = I")

	m = m.handleAutocomplete()
	assert.Equal(t, "f = IO", m.textInput.Value())
}

func TestAutocompleteScrollAttribute(t *testing.T) {
	m, root := newTestModel(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))
	evalInREPL(t, m, `f = IO.open("a.txt", "r")`)
	m.textInput.SetValue("f.se")

	m = m.handleAutocomplete()
	assert.Equal(t, "f.seek", m.textInput.Value())
}

func TestAutocompleteListsMultipleMatches(t *testing.T) {
	m, _ := newTestModel(t)
	evalInREPL(t, m, "name = 1")
	m.textInput.SetValue("n")

	m = m.handleAutocomplete()
	assert.Equal(t, "n", m.textInput.Value())
	require.NotEmpty(t, m.history)
	assert.Equal(t, "Completions: name, ni, nay", m.history[len(m.history)-1].output)
}
