package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(reader("  hello world  \n"), "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(reader("no newline"), "p", &out)
	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EmptyEOFIsError(t *testing.T) {
	var out bytes.Buffer

	_, err := GetSimpleText(reader(""), "p", &out)
	require.Error(t, err)
}

func TestGetOptionalCoordinate(t *testing.T) {
	var out bytes.Buffer

	v, err := GetOptionalCoordinate(reader("-6.2\n"), "Latitude", &out)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.InDelta(t, -6.2, *v, 1e-9)

	v, err = GetOptionalCoordinate(reader("\n"), "Latitude", &out)
	require.NoError(t, err)
	assert.Nil(t, v, "empty input skips the coordinate")

	_, err = GetOptionalCoordinate(reader("north\n"), "Latitude", &out)
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer

	for input, want := range map[string]bool{
		"y\n": true, "Y\n": true, "yes\n": true,
		"n\n": false, "no\n": false, "\n": false, "whatever\n": false,
	} {
		got, err := Confirm(reader(input), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Contains(t, out.String(), "Enter password")
}
