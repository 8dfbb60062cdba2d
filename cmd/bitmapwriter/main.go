// Command bitmapwriter renders packed monochrome bitmaps as terminal text.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ryanlewis/bitmapwriter"
	"github.com/ryanlewis/bitmapwriter/internal/config"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var errNoInput = errors.New("no bitmap bytes, --art or --demo given")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	style       string
	set         string
	frame       string
	width       int
	height      int
	bigEndian   bool
	byteAligned bool
	position    string
	restore     bool
	configPath  string
	artPath     string
	cacheStats  bool
	demo        string
	frames      int
	interval    time.Duration
	debugMode   bool
	debugFile   string
	debugPretty bool
	showVersion bool
	showHelp    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var f cliFlags

	fs := pflag.NewFlagSet("bitmapwriter", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&f.style, "style", "s", config.DefaultStyle, "Glyph style: ascii, block1x1, block1x2, block2x2, sextant1x3, sextant2x3")
	fs.StringVarP(&f.set, "set", "c", config.DefaultSet, "Rune drawn for set pixels by the ascii style")
	fs.StringVarP(&f.frame, "frame", "f", config.DefaultFrame, "Border: none, ascii, light, bold, double, block, shade")
	fs.IntVarP(&f.width, "width", "W", 0, "Bitmap width in pixels (default: 8 per byte)")
	fs.IntVarP(&f.height, "height", "H", 0, "Bitmap height in pixels (default: derived from the byte count)")
	fs.BoolVarP(&f.bigEndian, "big-endian", "b", false, "Treat the least significant bit as the leftmost pixel")
	fs.BoolVarP(&f.byteAligned, "byte-aligned", "a", false, "Start every pixel row on a byte boundary")
	fs.StringVarP(&f.position, "position", "p", "", "Draw at terminal position line,column")
	fs.BoolVar(&f.restore, "restore", false, "Save and restore the cursor around the output")
	fs.StringVar(&f.configPath, "config", "", "YAML writer profile")
	fs.StringVar(&f.artPath, "art", "", "Text pixel art file to render instead of bytes")
	fs.BoolVar(&f.cacheStats, "cache-stats", false, "Print art cache statistics to stderr")
	fs.StringVar(&f.demo, "demo", "", "Run a demo: "+strings.Join(demoNames(), ", "))
	fs.IntVar(&f.frames, "frames", 17, "Number of frames drawn by the animate and display demos")
	fs.DurationVar(&f.interval, "interval", 125*time.Millisecond, "Delay between animation frames")
	fs.BoolVar(&f.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&f.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&f.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&f.showHelp, "help", "h", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if f.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "bitmapwriter version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	profile := config.Default()
	if f.configPath != "" {
		p, err := config.Load(f.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		profile = p
	}

	writerOpts, err := writerOptions(fs, &f, profile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	session, closeDebug, err := openDebug(&f, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeDebug()
	if session != nil {
		writerOpts = append(writerOpts, bitmapwriter.WithDebug(session))
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if f.demo != "" {
		if err := runDemo(out, f.demo, demoConfig{frames: f.frames, interval: f.interval, debug: session}); err != nil {
			out.Flush()
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	bm, err := loadBitmap(fs, &f, profile, writerOpts)
	if f.cacheStats {
		printCacheStats(stderr, bitmapwriter.DefaultCacheStats())
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errNoInput) {
			printHelp(stderr, fs)
		}
		return 1
	}

	if err := bitmapwriter.RenderTo(out, bm, writerOpts...); err != nil {
		fmt.Fprintf(stderr, "Error rendering bitmap: %v\n", err)
		return 1
	}
	return 0
}

// writerOptions merges the profile with the flags the user set explicitly.
func writerOptions(fs *pflag.FlagSet, f *cliFlags, p *config.Profile) ([]bitmapwriter.Option, error) {
	styleName := p.Style
	if fs.Changed("style") {
		styleName = f.style
	}
	set := p.SetRune()
	if fs.Changed("set") {
		r, err := parseRune(f.set)
		if err != nil {
			return nil, fmt.Errorf("invalid --set: %w", err)
		}
		set = r
	}
	style, err := bitmapwriter.ParseStyle(styleName, set)
	if err != nil {
		return nil, err
	}

	frameName := p.Frame
	if fs.Changed("frame") {
		frameName = f.frame
	}
	frame, err := bitmapwriter.ParseFrame(frameName)
	if err != nil {
		return nil, err
	}

	opts := []bitmapwriter.Option{
		bitmapwriter.WithStyle(style),
		bitmapwriter.WithFrame(frame),
		bitmapwriter.WithBigEndian(pick(fs, "big-endian", f.bigEndian, p.BigEndian)),
		bitmapwriter.WithByteAligned(pick(fs, "byte-aligned", f.byteAligned, p.ByteAligned)),
		bitmapwriter.WithPositionRestore(pick(fs, "restore", f.restore, p.Restore)),
	}

	switch {
	case fs.Changed("position"):
		pos, err := bitmapwriter.ParsePosition(f.position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bitmapwriter.WithPosition(pos.Line, pos.Column))
	case p.Position != nil:
		opts = append(opts, bitmapwriter.WithPosition(p.Position.Line, p.Position.Column))
	}
	return opts, nil
}

func pick(fs *pflag.FlagSet, name string, flagValue, profileValue bool) bool {
	if fs.Changed(name) {
		return flagValue
	}
	return profileValue
}

// loadBitmap builds the bitmap from --art or from the positional byte
// arguments.
func loadBitmap(fs *pflag.FlagSet, f *cliFlags, p *config.Profile, opts []bitmapwriter.Option) (*bitmapwriter.Bitmap, error) {
	if f.artPath != "" {
		return bitmapwriter.LoadArtCached(f.artPath, opts...)
	}

	args := fs.Args()
	if len(args) == 0 {
		return nil, errNoInput
	}
	pix, err := parseBytes(args)
	if err != nil {
		return nil, err
	}

	width, height := p.Width, p.Height
	if fs.Changed("width") {
		width = f.width
	}
	if fs.Changed("height") {
		height = f.height
	}
	if width < 0 || height < 0 {
		return nil, errors.New("width and height must not be negative")
	}
	aligned := bitmapwriter.New(opts...).ByteAligned()
	width, height = deriveSize(len(pix), width, height, aligned)
	return bitmapwriter.NewBitmap(width, height, pix), nil
}

// parseBytes parses one byte per argument in any Go integer notation
// (0b1010, 0x0a, 0o12, 10).
func parseBytes(args []string) ([]byte, error) {
	pix := make([]byte, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q: %w", arg, err)
		}
		pix = append(pix, byte(v))
	}
	return pix, nil
}

// deriveSize fills in a zero width or height from the byte count.
func deriveSize(n, width, height int, byteAligned bool) (int, int) {
	if width == 0 {
		if height > 0 {
			width = n * 8 / height
		} else {
			width = n * 8
		}
	}
	if height == 0 && width > 0 {
		if byteAligned {
			height = n / ((width + 7) / 8)
		} else {
			height = n * 8 / width
		}
	}
	return width, height
}

// openDebug creates a debug session when --debug, --debug-file or
// BITMAPWRITER_DEBUG=1 asks for one. The returned func closes it.
func openDebug(f *cliFlags, stderr io.Writer) (*debug.Session, func(), error) {
	debug.InitFromEnv()
	if !f.debugMode && f.debugFile == "" && !debug.Enabled() {
		return nil, func() {}, nil
	}
	debug.SetEnabled(true)

	output := stderr
	var file *os.File
	if f.debugFile != "" {
		var err error
		file, err = os.Create(f.debugFile)
		if err != nil {
			return nil, nil, fmt.Errorf("creating debug file: %w", err)
		}
		output = file
	}

	var sink debug.Sink
	if f.debugPretty || debug.PrettyFromEnv() {
		sink = debug.NewPrettySink(output)
	} else {
		sink = debug.NewJSONSink(output)
	}

	session := debug.NewSession(sink)
	return session, func() {
		if session != nil {
			session.Close() //nolint:errcheck
		}
		if file != nil {
			file.Close()
		}
	}, nil
}

func printCacheStats(w io.Writer, s bitmapwriter.CacheStats) {
	fmt.Fprintf(w, "art cache: %d/%d entries, %s, %d hits, %d misses, %d evictions (%.0f%% hit rate)\n",
		s.Size, s.MaxSize, humanize.Bytes(uint64(s.Bytes)), s.Hits, s.Misses, s.Evictions, s.HitRate())
}

// parseRune parses the set rune flag value which can be in various formats:
// - Literal character (e.g., "*", "#")
// - Escaped Unicode: "\uXXXX", "\UXXXXXXXX"
// - Unicode notation: "U+XXXX"
// - Decimal: "35"
// - Hexadecimal: "0x23"
func parseRune(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("set rune cannot be empty")
	}

	// Try literal character first (single rune)
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	if r, ok := parseEscapedUnicode(s); ok {
		return r, nil
	}
	if r, ok := parseUnicodeNotation(s); ok {
		return r, nil
	}
	if r, ok := parseHexadecimal(s); ok {
		return r, nil
	}
	if r, ok := parseDecimal(s); ok {
		return r, nil
	}

	return 0, fmt.Errorf("invalid rune format: %s", s)
}

// validateRune checks if a rune is valid UTF-8 and not a surrogate
func validateRune(r rune) (rune, bool) {
	if r < 0 || r > utf8.MaxRune {
		return 0, false
	}
	if r >= 0xD800 && r <= 0xDFFF {
		return 0, false
	}
	return r, true
}

func parseEscapedUnicode(s string) (rune, bool) {
	// \uXXXX format - must be exactly 6 characters
	if strings.HasPrefix(s, "\\u") && len(s) == 6 {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	// \UXXXXXXXX format - must be exactly 10 characters
	if strings.HasPrefix(s, "\\U") && len(s) == 10 {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseUnicodeNotation(s string) (rune, bool) {
	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseHexadecimal(s string) (rune, bool) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		code, err := strconv.ParseInt(s[2:], 16, 32)
		if err == nil {
			return validateRune(rune(code))
		}
	}
	return 0, false
}

func parseDecimal(s string) (rune, bool) {
	code, err := strconv.ParseInt(s, 10, 32)
	if err == nil {
		return validateRune(rune(code))
	}
	return 0, false
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "bitmapwriter - render monochrome bitmaps as terminal text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bitmapwriter [flags] <byte>...")
	fmt.Fprintln(w, "  bitmapwriter [flags] --art <file>")
	fmt.Fprintln(w, "  bitmapwriter --demo <name>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bytes accept 0b, 0o, 0x or decimal notation, e.g. 0b00111100.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Set rune formats:")
	fmt.Fprintln(w, "  Literal: -c '*'")
	fmt.Fprintln(w, "  Unicode escape: -c '\\u2588'")
	fmt.Fprintln(w, "  Unicode notation: -c 'U+2588'")
	fmt.Fprintln(w, "  Decimal: -c '35'")
	fmt.Fprintln(w, "  Hexadecimal: -c '0x23'")
}
