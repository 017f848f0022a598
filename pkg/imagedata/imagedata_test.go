package imagedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG signature plus IHDR chunk header, enough for sniffing.
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00,
}

func TestParse(t *testing.T) {
	img, err := Parse("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MediaType)
	assert.Equal(t, []byte("hello"), img.Data)
	assert.Equal(t, "aGVsbG8=", img.Base64())
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", img.DataURI())
}

func TestParseMalformed(t *testing.T) {
	for name, uri := range map[string]string{
		"empty":         "",
		"no comma":      "data:image/png;base64",
		"no payload":    "data:image/png;base64,",
		"no scheme":     "image/png;base64,aGVsbG8=",
		"no media type": "data:;base64,aGVsbG8=",
		"not base64":    "data:image/png,aGVsbG8=",
		"bad payload":   "data:image/png;base64,@@@",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(uri)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFromBytes(t *testing.T) {
	img, err := FromBytes(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)

	_, err = FromBytes([]byte("just some text"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = FromBytes(nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)

	round, err := Parse(img.DataURI())
	require.NoError(t, err)
	assert.Equal(t, img.Data, round.Data)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
