package expr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFunctions(t *testing.T) {
	exprs := []string{"5*x**2+2*x+2", "sin(x)-log(3*x**1+2)", "x**x"}

	var buf bytes.Buffer
	require.NoError(t, WriteFunctions(&buf, exprs))
	assert.Equal(t, "5*x**2+2*x+2\nsin(x)-log(3*x**1+2)\nx**x\n", buf.String())

	got, err := ReadFunctions(&buf)
	require.NoError(t, err)
	assert.Equal(t, exprs, got)
}

func TestReadFunctions_SkipsBlankAndComments(t *testing.T) {
	in := "# generated\n\n  x+1  \n# trailing\ncos(x)\n"
	got, err := ReadFunctions(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"x+1", "cos(x)"}, got)
}
