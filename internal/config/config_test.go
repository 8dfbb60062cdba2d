package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanlewis/bitmapwriter/internal/common"
)

func TestParse(t *testing.T) {
	data := []byte(`
style: ascii
set: "@"
frame: Double
big_endian: true
byte_aligned: true
restore: true
position:
  line: 6
  column: 12
width: 19
height: 8
`)
	p, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "ascii", p.Style)
	assert.Equal(t, '@', p.SetRune())
	assert.Equal(t, "double", p.Frame)
	assert.True(t, p.BigEndian)
	assert.True(t, p.ByteAligned)
	assert.True(t, p.Restore)
	require.NotNil(t, p.Position)
	assert.Equal(t, Position{Line: 6, Column: 12}, *p.Position)
	assert.Equal(t, 19, p.Width)
	assert.Equal(t, 8, p.Height)
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, Default(), p)
	assert.Equal(t, DefaultStyle, p.Style)
	assert.Equal(t, DefaultFrame, p.Frame)
	assert.Equal(t, '#', p.SetRune())
	assert.Nil(t, p.Position)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{name: "unknown style", yaml: "style: braille", wantErr: common.ErrUnknownStyle},
		{name: "unknown frame", yaml: "frame: rounded", wantErr: common.ErrUnknownFrame},
		{name: "zero line", yaml: "position: {line: 0, column: 3}", wantErr: common.ErrInvalidPosition},
		{name: "zero column", yaml: "position: {line: 1, column: 0}", wantErr: common.ErrInvalidPosition},
		{name: "multi-rune set", yaml: "set: ab"},
		{name: "negative width", yaml: "width: -1"},
		{name: "malformed yaml", yaml: "style: [block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style: block1x2\nframe: bold\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bold", p.Frame)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
