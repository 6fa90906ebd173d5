package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/structpack"
)

var log = zap.NewNop()

func main() {
	var (
		format      = flag.String("format", "", "Format string, e.g. \"<hh3s?\"")
		layout      = flag.Bool("layout", false, "Print the compiled layout and exit")
		packArgs    = flag.String("pack", "", "Comma-separated values to pack")
		unpackArg   = flag.String("unpack", "", "Hex buffer to unpack, or - for raw stdin")
		longWidth   = flag.Int("long", 0, "Width of l/L fields in bytes (4 or 8)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = logger
	}

	if *interactive {
		if err := runInteractive(*format, *longWidth); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *format == "" {
		fmt.Fprintln(os.Stderr, "Usage: structpack -format <fmt> [-layout]")
		fmt.Fprintln(os.Stderr, "       structpack -format <fmt> -pack v1,v2,...")
		fmt.Fprintln(os.Stderr, "       structpack -format <fmt> -unpack <hex|->")
		fmt.Fprintln(os.Stderr, "       structpack -i [-format <fmt>]  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*format, *longWidth, *packArgs, *unpackArg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(format string, longWidth int, packArgs, unpackArg string) error {
	var cfg *structpack.Config
	if longWidth != 0 {
		cfg = &structpack.Config{LongWidth: longWidth}
	}

	d, err := structpack.CompileWithConfig(format, cfg)
	if err != nil {
		return err
	}
	log.Debug("compiled format",
		zap.String("format", format),
		zap.Int("size", d.Size()),
		zap.Int("fields", d.NumFields()))

	switch {
	case packArgs != "":
		return runPack(d, packArgs)
	case unpackArg != "":
		return runUnpack(d, unpackArg)
	default:
		printLayout(d)
		return nil
	}
}

func printLayout(d *structpack.Descriptor) {
	fmt.Printf("Format: %s\n", d.Format())
	fmt.Printf("Order:  %v\n", d.Order())
	fmt.Printf("Size:   %d bytes\n", d.Size())

	fields := d.Fields()
	if len(fields) == 0 {
		return
	}
	fmt.Printf("\nFields:\n")
	for i, f := range fields {
		fmt.Printf("  %2d  %-8s length %-6d offset %d\n", i, f.Kind, f.Length, f.Offset)
	}
}

func runPack(d *structpack.Descriptor, args string) error {
	fields := d.Fields()
	tokens := strings.Split(args, ",")

	values := make([]structpack.Value, len(tokens))
	for i, tok := range tokens {
		kind := structpack.KindText
		if i < len(fields) {
			kind = fields[i].Kind
		}
		values[i] = convertArg(tok, kind)
	}

	buf, err := d.Pack(values)
	if err != nil {
		return err
	}
	log.Debug("packed values", zap.Int("count", len(values)), zap.Int("bytes", len(buf)))

	// Hex on a terminal, raw bytes into a pipe.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(hex.EncodeToString(buf))
		return nil
	}
	_, err = os.Stdout.Write(buf)
	return err
}

func runUnpack(d *structpack.Descriptor, arg string) error {
	var buf []byte
	var err error

	if arg == "-" {
		buf, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	} else {
		buf, err = hex.DecodeString(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("decode hex: %w", err)
		}
	}

	values, err := d.Unpack(buf)
	if err != nil {
		return err
	}
	log.Debug("unpacked buffer", zap.Int("bytes", len(buf)), zap.Int("values", len(values)))

	fields := d.Fields()
	for i, v := range values {
		fmt.Printf("%-8s %s\n", fields[i].Kind, v)
	}
	return nil
}

// convertArg turns CLI text into the Value that best fits the target kind.
// Unparseable numerics fall back to text, which the codec either parses
// itself or rejects with a conversion error naming the field.
func convertArg(value string, kind structpack.Kind) structpack.Value {
	switch kind {
	case structpack.KindBool:
		return structpack.Bool(value == "true" || value == "1")
	case structpack.KindFloat32, structpack.KindFloat64:
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return structpack.Float(v)
		}
	case structpack.KindText, structpack.KindChar:
		return structpack.Text(value)
	default:
		if v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return structpack.Int(v)
		}
	}
	return structpack.Text(value)
}
