package astprog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextProgramPrepend(t *testing.T) {
	p := NewTextProgram(Line("body line 1"), Line("body line 2"))
	p.Prepend(Line("import a"), Line("import b"))

	out, err := TextPrinter(p)
	require.NoError(t, err)
	assert.Equal(t, "import a\nimport b\nbody line 1\nbody line 2\n", out)
}

func TestTextPrinterRejectsWrongProgramType(t *testing.T) {
	_, err := TextPrinter(fakeProgram{})
	assert.Error(t, err)
}

func TestTextPrinterRejectsNonLineStatement(t *testing.T) {
	p := &TextProgram{}
	p.Prepend(fakeStatement{})
	_, err := TextPrinter(p)
	assert.Error(t, err)
}

type fakeProgram struct{}

func (fakeProgram) Prepend(...Statement) {}

type fakeStatement struct{}

func (fakeStatement) isStatement() {}
