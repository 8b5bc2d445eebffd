package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/balcao/internal/encoding"
)

const header = "Descrição;Quantidade;Valor unitário\nAçúcar refinado 1kg;10;4,50\n"

func TestNewUTF8Reader(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   []byte
		charset encoding.Charset
	}{
		{name: "UTF8", input: []byte(header), charset: encoding.UTF8},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, header...), charset: encoding.UTF8},
		// chardet may call short Latin-1 text ISO-8859-9; both decode it the same.
		{name: "Windows1252", input: latin1},
		{name: "UTF16LE", input: utf16le, charset: encoding.UTF16LE},
		{name: "UTF16BE", input: utf16be, charset: encoding.UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.charset != "" {
				assert.Equal(t, tt.charset, charset)
			} else {
				assert.NotEqual(t, encoding.UTF8, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, header, string(got))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
