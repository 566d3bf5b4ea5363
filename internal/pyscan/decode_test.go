package pyscan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/internal/pyscan"
)

func TestDecodeStripsUTF8BOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("import pkg.a\n")...)
	out, err := pyscan.Decode("a.py", withBOM)
	require.NoError(t, err)
	require.Equal(t, "import pkg.a\n", string(out))
}

func TestDecodePlainUTF8Unchanged(t *testing.T) {
	out, err := pyscan.Decode("a.py", []byte("import pkg.a\n"))
	require.NoError(t, err)
	require.Equal(t, "import pkg.a\n", string(out))
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := pyscan.Decode("a.py", []byte{0x80, 0x80, 0x80})
	require.Error(t, err)
	var nonUTF8 *pyscan.NonUTF8Error
	require.ErrorAs(t, err, &nonUTF8)
	require.Equal(t, "a.py", nonUTF8.Path)
}
