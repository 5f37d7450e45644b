package input

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectLineReader_ReadLine(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		allowBlank bool
		expect     []string
	}{
		{name: "lines", input: "look\ngo north\n", expect: []string{"look", "go north"}},
		{name: "no trailing newline", input: "look\ninventory", expect: []string{"look", "inventory"}},
		{name: "whitespace trimmed", input: "  take  wrench \r\n", expect: []string{"take  wrench"}},
		{name: "blanks skipped", input: "\n   \nlook\n\n", expect: []string{"look"}},
		{name: "blanks allowed", input: "\nlook\n", allowBlank: true, expect: []string{"", "look"}},
		{name: "empty", input: "", expect: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			r := NewDirectReader(strings.NewReader(tc.input))
			r.AllowBlank(tc.allowBlank)

			var actual []string
			for {
				line, err := r.ReadLine()
				if err != nil {
					assert.ErrorIs(err, io.EOF)
					assert.Equal("", line)
					break
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
			assert.NoError(r.Close())
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func Test_Pump(t *testing.T) {
	t.Run("lines then EOF", func(t *testing.T) {
		assert := assert.New(t)
		lines := Pump(NewDirectReader(strings.NewReader("look\nquit\n")))

		var got []Line
		for ln := range lines {
			got = append(got, ln)
		}

		if assert.Len(got, 3) {
			assert.Equal(Line{Text: "look"}, got[0])
			assert.Equal(Line{Text: "quit"}, got[1])
			assert.ErrorIs(got[2].Err, io.EOF)
		}
	})

	t.Run("read error", func(t *testing.T) {
		assert := assert.New(t)
		lines := Pump(NewDirectReader(failingReader{}))

		ln, ok := <-lines
		assert.True(ok)
		assert.EqualError(ln.Err, "disk on fire")

		_, ok = <-lines
		assert.False(ok)
	})
}
