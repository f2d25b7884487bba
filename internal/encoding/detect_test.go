package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/tally/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Description;Amount\n"))
	require.NoError(t, err)

	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "UTF8Passthrough",
			input:       []byte("Descrição;Montante\nCafé;12,50\nChai ₹;-3,00\n"),
			want:        "Descrição;Montante\nCafé;12,50\nChai ₹;-3,00\n",
			wantCharset: encoding.UTF8,
		},
		{
			// ç = 0xE7, ã = 0xE3 in Windows-1252.
			name: "Windows1252",
			input: []byte{
				'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
				'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
			},
			want: "Descrição;Montante\n",
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte("Descrição;Montante\n")...),
			want:        "Descrição;Montante\n",
			wantCharset: encoding.UTF8BOM,
		},
		{
			name:        "UTF16LE",
			input:       utf16le,
			want:        "Description;Amount\n",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, encoding.Detect(tt.input))
			}

			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("2024-01-01;Coffee;2,50\n"), 1000)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestNewUTF8Reader_MultiByteAtPeekBoundary(t *testing.T) {
	// 4095 ASCII bytes put the first byte of "ç" last in the sample.
	input := append(bytes.Repeat([]byte("a"), 4095), []byte("ção\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}
