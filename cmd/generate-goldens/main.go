// Command generate-goldens renders sample phrases with the fonts under
// testdata/fonts and writes them as golden files for golden_test.go.
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

	"github.com/ryanlewis/bdfgo"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Font           string `yaml:"font"`
	Sample         string `yaml:"sample"`
	Charmap        string `yaml:"charmap"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	Pixels         int    `yaml:"pixels"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

var (
	outDir  = flag.String("out", "testdata/goldens", "Output directory")
	fonts   = flag.String("fonts", "mini", "Space-separated list of fonts")
	fontDir = flag.String("fontdir", "testdata/fonts", "Directory holding <font>.bdf files")
	cmName  = flag.String("charmap", "latin1", "Code page used to narrow samples")
	strict  = flag.Bool("strict", false, "Exit on any warning")
)

// Default samples including edge cases
var defaultSamples = []string{
	"Hello",
	"Hi!",
	"ego",
	"yo.",
	"é",
	"Hi. Hello!",
	"",  // Empty phrase
	" ", // Single space
}

func main() {
	flag.Parse()

	cm, err := bdfgo.LookupCharmap(*cmName)
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range strings.Fields(*fonts) {
		font, err := bdfgo.LoadFont(filepath.Join(*fontDir, name+".bdf"))
		if err != nil {
			log.Fatalf("Failed to load font %s: %v", name, err)
		}
		for _, w := range font.Warnings {
			log.Printf("Warning: %s: %s", name, w)
		}

		dir := filepath.Join(*outDir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}

		for _, sample := range defaultSamples {
			if err := generateGoldenFile(name, font, sample, bdfgo.WithCharmap(cm)); err != nil {
				if *strict {
					log.Fatalf("Failed to generate golden file: %v", err)
				}
				log.Printf("Warning: %v", err)
			}
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(name string, font *bdfgo.Font, sample string, cm bdfgo.Option) error {
	slug := slugify(sample)
	outFile := filepath.Join(*outDir, name, slug+".md")

	log.Printf("Generating %s/%s.md", name, slug)

	canvas, err := bdfgo.Render(sample, font, cm)
	if err != nil {
		return fmt.Errorf("failed to render %s/%s: %w", name, slug, err)
	}
	art := strings.TrimSuffix(canvas.String(), "\n")

	metadata := GoldenMetadata{
		Font:           name,
		Sample:         sample,
		Charmap:        *cmName,
		Width:          canvas.Width,
		Height:         canvas.Height,
		Pixels:         canvas.Len(),
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
		ChecksumSHA256: calculateChecksum(art),
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

func slugify(s string) string {
	if s == "" {
		return "empty"
	}
	if s == " " {
		return "space"
	}

	// Replace runs of non-alphanumeric characters with one underscore
	var result []rune
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = append(result, r)
		} else if len(result) == 0 || result[len(result)-1] != '_' {
			result = append(result, '_')
		}
	}

	slug := strings.Trim(string(result), "_")

	// If empty after processing, use hash
	if slug == "" {
		hash := sha256.Sum256([]byte(s))
		return fmt.Sprintf("%x", hash)[:8]
	}

	return slug
}
