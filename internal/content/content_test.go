package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
		ok   bool
	}{
		{"empty", []byte{}, "", true},
		{"ascii", []byte("package main\n"), "package main\n", true},
		{"utf8", []byte("naïve café"), "naïve café", true},
		{"utf8 bom", []byte("\xEF\xBB\xBFhello"), "hello", true},
		{"nul byte", []byte("abc\x00def"), "", false},
		{"invalid utf8", []byte{0xC3, 0x28, 0x41}, "", false},
		{"latin1", []byte("caf\xe9"), "", false},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", true},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", true},
		{"utf16 odd length", []byte{0xFF, 0xFE, 'h'}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decode(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, IsText(tt.raw))
		})
	}
}
