// Package main provides the reorg CLI.
//
// Usage:
//
//	reorg version
//	reorg shape -stride 2 [-reverse] N C H W
//	reorg demo -stride 2 [-reverse] [-sequential] [N C H W]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/born-ml/reorg/backend/cpu"
	"github.com/born-ml/reorg/nn"
	"github.com/born-ml/reorg/tensor"
)

const version = "v0.1.0"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		log.Fatalf("reorg: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(out, "reorg %s\n", version)
		return nil
	case "shape":
		return runShape(args[1:], out)
	case "demo":
		return runDemo(args[1:], out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "reorg - space-to-depth / depth-to-space for NCHW tensors")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                               Show version")
	fmt.Fprintln(w, "  shape -stride S [-reverse] N C H W    Print the output shape")
	fmt.Fprintln(w, "  demo -stride S [-reverse] [N C H W]   Run a lossless round-trip check")
}

type commonFlags struct {
	stride  int
	reverse bool
}

func newFlagSet(name string, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cf.stride, "stride", 2, "Reorg stride")
	fs.BoolVar(&cf.reverse, "reverse", false, "Depth-to-space instead of space-to-depth")
	return fs
}

func parseShape(args []string) (tensor.Shape, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("%w: expected 4 dimensions N C H W, got %d", errUsage, len(args))
	}
	shape := make(tensor.Shape, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", i, err)
		}
		shape[i] = v
	}
	return shape, nil
}

func runShape(args []string, out io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("shape", &cf)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	input, err := parseShape(fs.Args())
	if err != nil {
		return err
	}

	layer, err := nn.NewReorg(nn.ReorgConfig{Stride: cf.stride, Reverse: cf.reverse}, cpu.New())
	if err != nil {
		return err
	}
	output, err := layer.InferOutputShape(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v -> %v (%s, stride %d)\n", input, output, layer.Direction(), layer.Stride())
	return nil
}

func runDemo(args []string, out io.Writer) error {
	var cf commonFlags
	fs := newFlagSet("demo", &cf)
	sequential := fs.Bool("sequential", false, "Run on a single goroutine")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	input := tensor.Shape{2, 4, 8, 8}
	if cf.reverse {
		input = tensor.Shape{2, 4 * cf.stride * cf.stride, 4, 4}
	}
	if fs.NArg() > 0 {
		var err error
		if input, err = parseShape(fs.Args()); err != nil {
			return err
		}
	}

	backend := cpu.New()
	if *sequential {
		backend = cpu.NewSequential()
	}
	forward, err := nn.NewReorg(nn.ReorgConfig{Stride: cf.stride, Reverse: cf.reverse}, backend)
	if err != nil {
		return err
	}
	inverse, err := nn.NewReorg(nn.ReorgConfig{Stride: cf.stride, Reverse: !cf.reverse}, backend)
	if err != nil {
		return err
	}
	if _, err := forward.InferOutputShape(input); err != nil {
		return err
	}

	x := tensor.Arange[float32](input, backend)
	start := time.Now()
	y := forward.Forward(x)
	back := inverse.Forward(y)
	elapsed := time.Since(start)

	lossless := slices.Equal(x.Data(), back.Data())
	fmt.Fprintf(out, "%s: %v -> %v -> %v\n", forward, x.Shape(), y.Shape(), back.Shape())
	fmt.Fprintf(out, "lossless: %t (%d elements, %s)\n", lossless, x.NumElements(), elapsed)
	if !lossless {
		return errors.New("round-trip changed the data")
	}
	return nil
}
