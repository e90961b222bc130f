package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func wavHeader() []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	buf.Write(make([]byte, 16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0))
	return buf.Bytes()
}

func TestPolicy_AcceptsAndRewinds(t *testing.T) {
	r := bytes.NewReader(pngHeader)

	mime, err := ImagePolicy.Check(r, int64(len(pngHeader)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, rest)
}

func TestPolicy_Audio(t *testing.T) {
	data := wavHeader()

	mime, err := AudioPolicy.Check(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", mime)

	_, err = ImagePolicy.Check(bytes.NewReader(data), int64(len(data)))
	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
}

func TestPolicy_RejectsWrongType(t *testing.T) {
	data := []byte("just some text, definitely not an image")

	_, err := ImagePolicy.Check(bytes.NewReader(data), int64(len(data)))

	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Contains(t, policyErr.Reason, "text/plain")
}

func TestPolicy_RejectsOversizeBeforeReading(t *testing.T) {
	r := bytes.NewReader(pngHeader)

	_, err := ImagePolicy.Check(r, ImagePolicy.MaxBytes+1)

	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, "file exceeds the 10 MB limit", policyErr.Reason)
	assert.Equal(t, int64(len(pngHeader)), int64(r.Len()))
}

func TestPolicy_RejectsEmpty(t *testing.T) {
	_, err := AudioPolicy.Check(bytes.NewReader(nil), 0)

	var policyErr *PolicyError
	require.ErrorAs(t, err, &policyErr)
}
