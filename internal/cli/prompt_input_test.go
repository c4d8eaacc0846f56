package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes mixed case", input: "YeS\n", want: true},
		{name: "yes raw mode enter", input: "yes\r", want: true},
		{name: "yes padded", input: "  y \n", want: true},
		{name: "yes without newline", input: "y", want: true},
		{name: "empty defaults no", input: "\n", want: false},
		{name: "explicit no", input: "n\r", want: false},
		{name: "anything else", input: "sure\n", want: false},
		{name: "closed input", input: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got := confirm(strings.NewReader(tc.input), &out, applyPrompt)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Apply? [y/N]: ", out.String())
		})
	}
}

func TestConfirm_NilReaderDeclines(t *testing.T) {
	var out bytes.Buffer
	assert.False(t, confirm(nil, &out, applyPrompt))
	assert.Equal(t, applyPrompt, out.String())

	assert.False(t, confirm(nil, nil, applyPrompt), "no writer is fine")
}

func TestConfirm_ReadErrorDeclines(t *testing.T) {
	in := iotest.ErrReader(errors.New("tty gone"))
	assert.False(t, confirm(in, nil, applyPrompt))
}

func TestConfirm_ReadsOneLineOnly(t *testing.T) {
	in := strings.NewReader("y\nleftover")
	require.True(t, confirm(in, nil, applyPrompt))

	rest, err := readAll(in)
	require.NoError(t, err)
	assert.Equal(t, "leftover", rest)
}

func TestReadPromptLine(t *testing.T) {
	got, err := readPromptLine(strings.NewReader("yes"))
	assert.NoError(t, err)
	assert.Equal(t, "yes", got)

	got, err = readPromptLine(iotest.OneByteReader(strings.NewReader("no\rmore")))
	assert.NoError(t, err)
	assert.Equal(t, "no", got)

	_, err = readPromptLine(nil)
	assert.Error(t, err)
}

func TestReadAll(t *testing.T) {
	got, err := readAll(strings.NewReader("# Brief\n\nBarcode scanning.\n"))
	require.NoError(t, err)
	assert.Equal(t, "# Brief\n\nBarcode scanning.\n", got)

	got, err = readAll(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = readAll(iotest.ErrReader(errors.New("broken pipe")))
	assert.ErrorContains(t, err, "reading stdin: broken pipe")
}
