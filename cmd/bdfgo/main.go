// Command bdfgo renders text with a BDF bitmap font.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ryanlewis/bdfgo"
	"github.com/ryanlewis/bdfgo/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		fill        string
		charmapName string
		bmpPath     string
		dumpCode    bool
		showVersion bool
		showHelp    bool
		debugMode   bool
		debugFile   string
		debugPretty bool
		debugSlog   bool
		warnings    bool
	)

	flags := pflag.NewFlagSet("bdfgo", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&fill, "fill", "c", "#", "Character printed for lit pixels")
	flags.StringVar(&charmapName, "charmap", "latin1",
		"Code page mapping text to glyph codes ("+strings.Join(bdfgo.CharmapNames(), ", ")+")")
	flags.StringVar(&bmpPath, "bmp", "", "Also write the canvas to a BMP file")
	flags.BoolVar(&dumpCode, "code", false, "Also print the canvas as a point listing")
	flags.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flags.BoolVarP(&showHelp, "help", "h", false, "Show help message")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	flags.StringVar(&debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	flags.BoolVar(&debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	flags.BoolVar(&debugSlog, "debug-slog", false, "Write debug output as structured log records")
	flags.BoolVarP(&warnings, "warnings", "w", false, "Log font load warnings to stderr")
	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if showHelp {
		printHelp(stdout, flags)
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "bdfgo version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	positional := flags.Args()
	if len(positional) < 2 {
		fmt.Fprintln(stderr, "Error: expected a font file and text")
		printHelp(stderr, flags)
		return 1
	}

	fillRune, err := parseFillRune(fill)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing fill character: %v\n", err)
		return 1
	}

	cm, err := bdfgo.LookupCharmap(charmapName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if warnings {
		bdfgo.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
		defer bdfgo.SetLogger(nil)
	}

	// Setup debug before loading so load events are traced too
	defer debug.SetEnabled(debug.Enabled())
	debug.InitFromEnv()
	var session *debug.Session
	if debugMode || debugFile != "" || debug.Enabled() {
		debug.SetEnabled(true)

		var output io.Writer = stderr
		if debugFile != "" {
			file, err := os.Create(debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		switch {
		case debugSlog:
			sink = debug.NewSlogSink(slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: slog.LevelDebug})))
		case debugPretty || debug.PrettyFromEnv():
			sink = debug.NewPrettySink(output)
		default:
			sink = debug.NewJSONSink(output)
		}

		session = debug.NewSession(sink)
		if session != nil {
			defer session.Close()
		}
	}

	font, err := bdfgo.LoadFont(resolveFontPath(positional[0]), bdfgo.WithLoadDebug(session))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}

	text := strings.Join(positional[1:], " ")
	canvas, err := bdfgo.Render(text, font, bdfgo.WithCharmap(cm), bdfgo.WithDebug(session))
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}

	if cols, ok := terminalWidth(stdout); ok && canvas.Width > cols {
		fmt.Fprintf(stderr, "Warning: output is %d columns wide, terminal has %d\n", canvas.Width, cols)
	}

	if err := canvas.Print(stdout, fillRune); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}

	if dumpCode {
		fmt.Fprintln(stdout)
		if err := canvas.WriteCode(stdout); err != nil {
			fmt.Fprintf(stderr, "Error writing output: %v\n", err)
			return 1
		}
	}

	if bmpPath != "" {
		if err := writeBMPFile(bmpPath, canvas); err != nil {
			fmt.Fprintf(stderr, "Error writing bmp: %v\n", err)
			return 1
		}
	}

	return 0
}

func writeBMPFile(path string, canvas *bdfgo.Canvas) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bdfgo.WriteBMP(file, canvas); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// terminalWidth reports the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return 0, false
	}
	return cols, true
}

// parseFillRune parses the --fill value. Accepted forms are a literal
// character ("#"), an escape ("\u2588" or "\U00002588"), Unicode notation
// ("U+2588"), hexadecimal ("0x23") and decimal ("35"). The result must be a
// visible character or a space, since it is printed once per lit pixel.
func parseFillRune(s string) (rune, error) {
	var digits string
	base := 16
	switch {
	case s == "":
		return 0, errors.New("fill character cannot be empty")
	case utf8.RuneCountInString(s) == 1 && utf8.ValidString(s):
		r, _ := utf8.DecodeRuneInString(s)
		return checkFill(r)
	case len(s) == 6 && strings.HasPrefix(s, `\u`), len(s) == 10 && strings.HasPrefix(s, `\U`):
		digits = s[2:]
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
	default:
		digits, base = s, 10
	}

	code, err := strconv.ParseUint(digits, base, 32)
	if err != nil || code > utf8.MaxRune {
		return 0, fmt.Errorf("invalid rune format: %s", s)
	}
	return checkFill(rune(code))
}

func checkFill(r rune) (rune, error) {
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("U+%04X is not a valid character", r)
	}
	if !unicode.IsGraphic(r) {
		return 0, fmt.Errorf("%U cannot be printed as a fill character", r)
	}
	return r, nil
}

// resolveFontPath resolves a font path from either a full path or just a font name
func resolveFontPath(fontPath string) string {
	if strings.EqualFold(filepath.Ext(fontPath), ".bdf") {
		return fontPath
	}

	if _, err := os.Stat(fontPath); err == nil {
		return fontPath
	}

	withExt := fontPath + ".bdf"
	if _, err := os.Stat(withExt); err == nil {
		return withExt
	}

	inFonts := filepath.Join("fonts", fontPath+".bdf")
	if _, err := os.Stat(inFonts); err == nil {
		return inFonts
	}

	// Default to original path (will fail with better error later)
	return fontPath
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "bdfgo - render text with BDF bitmap fonts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bdfgo [flags] <font-file> <text>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fill character formats:")
	fmt.Fprintln(w, "  Literal: -c '*'")
	fmt.Fprintln(w, "  Unicode escape: -c '\\u2588'")
	fmt.Fprintln(w, "  Unicode notation: -c 'U+2588'")
	fmt.Fprintln(w, "  Decimal: -c '35'")
	fmt.Fprintln(w, "  Hexadecimal: -c '0x23'")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s=1         enable debug tracing\n", debug.EnvDebug)
	fmt.Fprintf(w, "  %s=1  use the pretty debug format\n", debug.EnvDebugPretty)
}
