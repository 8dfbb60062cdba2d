package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/ryanlewis/bitmapwriter"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
)

func TestParseRune(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		// Literal characters
		{"literal star", "*", '*', false},
		{"literal hash", "#", '#', false},
		{"literal at", "@", '@', false},
		{"literal block", "█", '█', false},

		// Escaped Unicode
		{"unicode escape \\u2588", "\\u2588", '█', false},
		{"unicode escape \\u0023", "\\u0023", '#', false},
		{"unicode escape \\U00002588", "\\U00002588", '█', false},

		// Unicode notation
		{"unicode U+2588", "U+2588", '█', false},
		{"unicode u+2588", "u+2588", '█', false},
		{"unicode U+0040", "U+0040", '@', false},

		// Decimal
		{"decimal 35", "35", '#', false},
		{"decimal 42", "42", '*', false},
		{"decimal 9608", "9608", '█', false},

		// Hexadecimal
		{"hex 0x23", "0x23", '#', false},
		{"hex 0x2A", "0x2A", '*', false},
		{"hex 0X40", "0X40", '@', false},

		// Invalid inputs
		{"empty string", "", 0, true},
		{"invalid unicode escape", "\\u", 0, true},
		{"invalid unicode notation", "U+", 0, true},
		{"invalid hex", "0x", 0, true},
		{"multi-rune literal", "abc", 0, true},

		// Invalid rune values
		{"beyond max rune", "U+110000", 0, true},
		{"negative decimal", "-1", 0, true},
		{"surrogate start", "U+D800", 0, true},
		{"surrogate end", "U+DFFF", 0, true},
		{"surrogate mid", "0xDC00", 0, true},

		// Exact length validation
		{"unicode escape too short", "\\u258", 0, true},
		{"unicode escape too long", "\\u25888", 0, true},
		{"unicode U escape too short", "\\U0002588", 0, true},
		{"unicode U escape too long", "\\U000025888", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRune(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseRune(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("parseRune(%q) = %v (U+%04X), want %v (U+%04X)",
					tt.input, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	got, err := parseBytes([]string{"0b10110000", "0xff", "0o17", "42", "0b0011_1100"})
	if err != nil {
		t.Fatalf("parseBytes() unexpected error: %v", err)
	}
	want := []byte{0b10110000, 0xff, 0o17, 42, 0b00111100}
	if !bytes.Equal(got, want) {
		t.Errorf("parseBytes() = %08b, want %08b", got, want)
	}

	for _, bad := range []string{"256", "-1", "0b102", "x"} {
		if _, err := parseBytes([]string{bad}); err == nil {
			t.Errorf("parseBytes(%q) expected error", bad)
		}
	}
}

func TestDeriveSize(t *testing.T) {
	tests := []struct {
		name         string
		n, w, h      int
		aligned      bool
		wantW, wantH int
	}{
		{name: "one row of all bytes", n: 2, wantW: 16, wantH: 1},
		{name: "height from width", n: 16, w: 16, wantW: 16, wantH: 8},
		{name: "packed partial width", n: 3, w: 3, wantW: 3, wantH: 8},
		{name: "aligned partial width", n: 3, w: 3, aligned: true, wantW: 3, wantH: 3},
		{name: "width from height", n: 4, h: 4, wantW: 8, wantH: 4},
		{name: "both given", n: 1, w: 2, h: 2, wantW: 2, wantH: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := deriveSize(tt.n, tt.w, tt.h, tt.aligned)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("deriveSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRunRendersBytes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default style",
			args: []string{"-W", "2", "-H", "2", "0b10010000"},
			want: "▀▄\n",
		},
		{
			name: "block1x1",
			args: []string{"-s", "block1x1", "0b10110000"},
			want: "█ ██    \n",
		},
		{
			name: "ascii with set rune",
			args: []string{"-s", "ascii", "-c", "U+002A", "-W", "4", "0b10010110"},
			want: "*  *\n ** \n",
		},
		{
			name: "big endian",
			args: []string{"-s", "ascii", "-b", "0b10110000"},
			want: "    ## #\n",
		},
		{
			name: "ascii frame",
			args: []string{"-s", "block1x1", "-f", "ascii", "-W", "4", "0b10010110"},
			want: ".----.\n|█  █|\n| ██ |\n'----'\n",
		},
		{
			name: "position",
			args: []string{"-s", "block1x1", "-p", "3,4", "-W", "2", "-H", "2", "0b10010000"},
			want: "\x1b[3;4H█ \n\x1b[4;4H █\n",
		},
		{
			name: "restore",
			args: []string{"-s", "block1x1", "--restore", "-W", "2", "-H", "1", "0b10000000"},
			want: "\x1b[s█ \n\x1b[u",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no input", nil, "no bitmap bytes"},
		{"bad byte", []string{"256"}, "invalid byte"},
		{"bad style", []string{"-s", "braille", "1"}, "unknown style"},
		{"bad frame", []string{"-f", "wavy", "1"}, "unknown frame"},
		{"bad position", []string{"-p", "0,1", "1"}, "invalid position"},
		{"bad set", []string{"-c", "abc", "1"}, "invalid --set"},
		{"missing config", []string{"--config", "does-not-exist.yaml", "1"}, "failed to read config file"},
		{"unknown demo", []string{"--demo", "nope"}, "unknown demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.wantErr)
			}
		})
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != 0 || !strings.HasPrefix(stdout, "bitmapwriter version dev") {
		t.Errorf("--version = %d %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "-h")
	if code != 0 || !strings.Contains(stdout, "--byte-aligned") || !strings.Contains(stdout, "Set rune formats") {
		t.Errorf("-h = %d %q", code, stdout)
	}
}

func TestRunConfigProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	profile := "style: block1x1\nframe: ascii\nwidth: 4\n"
	if err := os.WriteFile(path, []byte(profile), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "--config", path, "0b10010110")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if want := ".----.\n|█  █|\n| ██ |\n'----'\n"; stdout != want {
		t.Errorf("profile render = %q, want %q", stdout, want)
	}

	// Explicit flags win over the profile
	code, stdout, stderr = runCLI(t, "--config", path, "-f", "none", "-W", "8", "0b10010110")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if want := "█  █ ██ \n"; stdout != want {
		t.Errorf("override render = %q, want %q", stdout, want)
	}
}

func TestRunArtWithCacheStats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glider.txt")
	if err := os.WriteFile(path, []byte(".#...\n..#..\n###..\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	bitmapwriter.ClearDefaultCache()

	code, stdout, stderr := runCLI(t, "-s", "block1x1", "--art", path, "--cache-stats")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if want := " █   \n  █  \n███  \n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "art cache: 1/64 entries") || !strings.Contains(stderr, "1 misses") {
		t.Errorf("stderr = %q, want cache statistics", stderr)
	}
}

func TestRunDebugPretty(t *testing.T) {
	t.Cleanup(func() { debug.SetEnabled(false) })

	code, stdout, stderr := runCLI(t, "--debug", "--debug-pretty", "-W", "2", "-H", "2", "0b10010000")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "▀▄\n" {
		t.Errorf("stdout = %q", stdout)
	}
	for _, want := range []string{"[render/Start]", "[render/End]"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("debug output missing %q, got: %s", want, stderr)
		}
	}
}

func TestClockBitmap(t *testing.T) {
	bm := clockBitmap(time.Date(2026, 1, 2, 12, 34, 56, 0, time.UTC))
	if bm.Width() != 64 || bm.Height() != 8 {
		t.Fatalf("size = %dx%d", bm.Width(), bm.Height())
	}

	// Glyph 2 is the colon, drawn in columns 18-20 of rows 1-3
	for _, x := range []int{18, 19, 20} {
		if !bm.PixelSet(x, 1) {
			t.Errorf("colon pixel (%d, 1) not set", x)
		}
	}
	// Row 0 of the leading "1" is 0b00011100
	for x := 0; x < 8; x++ {
		want := x >= 3 && x <= 5
		if got := bm.PixelSet(x, 0); got != want {
			t.Errorf("pixel (%d, 0) = %v, want %v", x, got, want)
		}
	}
}

func TestDemos(t *testing.T) {
	saved := now
	now = func() time.Time { return time.Date(2026, 1, 2, 9, 5, 7, 0, time.UTC) }
	t.Cleanup(func() { now = saved })

	t.Run("clock", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--demo", "clock")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		if len(lines) != 6 {
			t.Fatalf("clock has %d lines, want 6", len(lines))
		}
		if want := "┏" + strings.Repeat("━", 64) + "┓"; lines[0] != want {
			t.Errorf("top border = %q", lines[0])
		}
		for _, line := range lines {
			if w := runewidth.StringWidth(line); w != 66 {
				t.Errorf("line %q is %d columns wide, want 66", line, w)
			}
		}
	})

	t.Run("frames", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--demo", "frames")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		for _, label := range []string{"ascii", "light", "bold", "double", "block", "shade"} {
			if !strings.Contains(stdout, label+strings.Repeat(" ", labelWidth-len(label))+"10 columns x 6 lines\n") {
				t.Errorf("frames demo missing label for %s", label)
			}
		}
		if !strings.Contains(stdout, "│▟██████▙│\n") {
			t.Error("frames demo missing light frame body")
		}
	})

	t.Run("styles", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--demo", "styles")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		for _, want := range []string{
			"ascii       21 columns x 10 lines\n",
			"block1x1    21 columns x 10 lines\n",
			"block1x2    21 columns x 6 lines\n",
			"sextant1x3  21 columns x 5 lines\n",
			"block2x2    12 columns x 6 lines\n",
			"sextant2x3  12 columns x 5 lines\n",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("styles demo missing %q", want)
			}
		}
	})

	t.Run("position", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "--demo", "position")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		for _, want := range []string{"\x1b[2J", "\x1b[6;12H┌", "\x1b[17;48H└", "\n┌────────┐\n"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("position demo missing %q", want)
			}
		}
	})
}

func TestInteractiveDemos(t *testing.T) {
	saved := isTerminal
	t.Cleanup(func() { isTerminal = saved })

	isTerminal = func() bool { return false }
	for _, name := range []string{"animate", "display"} {
		code, _, stderr := runCLI(t, "--demo", name)
		if code != 1 || !strings.Contains(stderr, "needs a terminal") {
			t.Errorf("%s without terminal = %d %q", name, code, stderr)
		}
	}

	isTerminal = func() bool { return true }

	code, stdout, stderr := runCLI(t, "--demo", "animate", "--frames", "2", "--interval", "0s")
	if code != 0 {
		t.Fatalf("animate exit code %d, stderr: %s", code, stderr)
	}
	if strings.Count(stdout, "\x1b[s") != 2 || strings.Count(stdout, "\x1b[u") != 2 {
		t.Errorf("animate output is not two save/restore frames: %q", stdout)
	}
	if !strings.Contains(stdout, "┌") || !strings.Contains(stdout, "╔") {
		t.Errorf("animate did not alternate frames: %q", stdout)
	}

	code, stdout, stderr = runCLI(t, "--demo", "display", "--frames", "3", "--interval", "0s")
	if code != 0 {
		t.Fatalf("display exit code %d, stderr: %s", code, stderr)
	}
	if n := strings.Count(stdout, "\x1b[s"); n != 3 {
		t.Errorf("display drew %d frames, want 3", n)
	}
}

func TestBounce(t *testing.T) {
	tests := []struct {
		pos, delta, lo, hi int
		wantPos, wantDelta int
	}{
		{pos: 5, delta: 2, lo: 0, hi: 10, wantPos: 5, wantDelta: 2},
		{pos: 12, delta: 3, lo: 0, hi: 10, wantPos: 8, wantDelta: -3},
		{pos: -2, delta: -3, lo: 0, hi: 10, wantPos: 2, wantDelta: 3},
	}
	for _, tt := range tests {
		pos, delta := bounce(tt.pos, tt.delta, tt.lo, tt.hi)
		if pos != tt.wantPos || delta != tt.wantDelta {
			t.Errorf("bounce(%d, %d) = (%d, %d), want (%d, %d)", tt.pos, tt.delta, pos, delta, tt.wantPos, tt.wantDelta)
		}
	}
}
