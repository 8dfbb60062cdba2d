// Command generate-goldens renders the sample art under testdata/art with
// the library and writes the results as golden files.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/bitmapwriter"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Sample         string `yaml:"sample"`
	Style          string `yaml:"style"`
	Set            string `yaml:"set,omitempty"`
	Frame          string `yaml:"frame"`
	BigEndian      bool   `yaml:"big_endian"`
	ByteAligned    bool   `yaml:"byte_aligned"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

var (
	outDir  = flag.String("out", "testdata/goldens", "Output directory")
	artDir  = flag.String("art", "testdata/art", "Directory holding <sample>.txt art files")
	samples = flag.String("samples", "heart wave glider", "Space-separated list of samples")
	styles  = flag.String("styles", "ascii block1x1 block1x2 block2x2 sextant1x3 sextant2x3", "Space-separated list of styles rendered with the light frame")
	set     = flag.String("set", "@", "Set glyph of the ascii style")
	strict  = flag.Bool("strict", false, "Exit on any warning")
)

// goldenCase is one rendered combination.
type goldenCase struct {
	sample      string
	style       string
	frame       string
	bigEndian   bool
	byteAligned bool
}

func (c goldenCase) name() string {
	name := c.style + "-" + c.frame
	if c.bigEndian {
		name += "-be"
	}
	if c.byteAligned {
		name += "-aligned"
	}
	return name
}

// extraCases cover every frame and the non-default packing layouts.
var extraCases = []goldenCase{
	{sample: "heart", style: "block2x2", frame: "none"},
	{sample: "heart", style: "block2x2", frame: "ascii"},
	{sample: "heart", style: "block2x2", frame: "bold"},
	{sample: "heart", style: "block2x2", frame: "double"},
	{sample: "heart", style: "block2x2", frame: "block"},
	{sample: "heart", style: "block2x2", frame: "shade"},
	{sample: "wave", style: "ascii", frame: "double", byteAligned: true},
	{sample: "wave", style: "block1x2", frame: "none", bigEndian: true},
	{sample: "wave", style: "sextant2x3", frame: "bold", bigEndian: true, byteAligned: true},
	{sample: "glider", style: "sextant2x3", frame: "none"},
	{sample: "glider", style: "block1x1", frame: "none"},
}

func main() {
	flag.Parse()

	setRune := []rune(*set)
	if len(setRune) != 1 {
		log.Fatalf("--set must be a single character, got %q", *set)
	}

	var cases []goldenCase
	for _, sample := range strings.Fields(*samples) {
		for _, style := range strings.Fields(*styles) {
			cases = append(cases, goldenCase{sample: sample, style: style, frame: "light"})
		}
	}
	for _, c := range extraCases {
		if strings.Contains(" "+*samples+" ", " "+c.sample+" ") {
			cases = append(cases, c)
		}
	}

	generated := time.Now().UTC().Format("2006-01-02")
	for _, c := range cases {
		if err := generateGoldenFile(c, setRune[0], generated); err != nil {
			if *strict {
				log.Fatalf("Failed to generate golden file: %v", err)
			}
			log.Printf("Warning: %v", err)
		}
	}

	log.Printf("Golden file generation complete (%d files)", len(cases))
}

func generateGoldenFile(c goldenCase, setRune rune, generated string) error {
	dir := filepath.Join(*outDir, c.sample)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	outFile := filepath.Join(dir, c.name()+".md")
	log.Printf("Generating %s/%s.md", c.sample, c.name())

	style, err := bitmapwriter.ParseStyle(c.style, setRune)
	if err != nil {
		return err
	}
	frame, err := bitmapwriter.ParseFrame(c.frame)
	if err != nil {
		return err
	}

	layout := []bitmapwriter.Option{
		bitmapwriter.WithBigEndian(c.bigEndian),
		bitmapwriter.WithByteAligned(c.byteAligned),
	}
	bm, err := bitmapwriter.LoadArt(filepath.Join(*artDir, c.sample+".txt"), layout...)
	if err != nil {
		return err
	}

	out, err := bitmapwriter.Render(bm, append(layout, bitmapwriter.WithStyle(style), bitmapwriter.WithFrame(frame))...)
	if err != nil {
		return fmt.Errorf("failed to render %s/%s: %w", c.sample, c.name(), err)
	}
	art := strings.TrimSuffix(out, "\n")

	metadata := GoldenMetadata{
		Sample:         c.sample,
		Style:          c.style,
		Frame:          c.frame,
		BigEndian:      c.bigEndian,
		ByteAligned:    c.byteAligned,
		Width:          bm.Width(),
		Height:         bm.Height(),
		Generated:      generated,
		Generator:      "generate-goldens",
		ChecksumSHA256: calculateChecksum(art),
	}
	if c.style == "ascii" {
		metadata.Set = string(setRune)
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")

	if err := os.WriteFile(outFile, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

func calculateChecksum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
