// Package config loads writer profiles for the bitmapwriter command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/bitmapwriter/internal/common"
)

// Profile is a saved writer configuration.
type Profile struct {
	Style       string    `yaml:"style"`
	Set         string    `yaml:"set"`
	Frame       string    `yaml:"frame"`
	BigEndian   bool      `yaml:"big_endian"`
	ByteAligned bool      `yaml:"byte_aligned"`
	Restore     bool      `yaml:"restore"`
	Position    *Position `yaml:"position,omitempty"`
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
}

// Position is the 1-based terminal placement of a profile.
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// Default values for optional profile fields.
const (
	DefaultStyle = "block1x2"
	DefaultSet   = "#"
	DefaultFrame = "none"
)

// Load reads and parses the profile at path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses a profile from YAML data.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	p.applyDefaults()

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default returns the profile used when no file is given.
func Default() *Profile {
	p := &Profile{}
	p.applyDefaults()
	return p
}

// SetRune returns the set glyph as a rune.
func (p *Profile) SetRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Set)
	return r
}

// applyDefaults sets default values for optional profile fields.
func (p *Profile) applyDefaults() {
	p.Style = strings.ToLower(strings.TrimSpace(p.Style))
	p.Frame = strings.ToLower(strings.TrimSpace(p.Frame))
	if p.Style == "" {
		p.Style = DefaultStyle
	}
	if p.Set == "" {
		p.Set = DefaultSet
	}
	if p.Frame == "" {
		p.Frame = DefaultFrame
	}
}

// validate checks names and ranges.
func (p *Profile) validate() error {
	if !contains(common.StyleNames[:], p.Style) {
		return fmt.Errorf("%w: style %q", common.ErrUnknownStyle, p.Style)
	}
	if !contains(common.FrameNames[:], p.Frame) {
		return fmt.Errorf("%w: frame %q", common.ErrUnknownFrame, p.Frame)
	}
	if utf8.RuneCountInString(p.Set) != 1 {
		return fmt.Errorf("set must be a single character, got %q", p.Set)
	}
	if p.Position != nil && (p.Position.Line < 1 || p.Position.Column < 1) {
		return fmt.Errorf("%w: %d,%d", common.ErrInvalidPosition, p.Position.Line, p.Position.Column)
	}
	if p.Width < 0 || p.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
