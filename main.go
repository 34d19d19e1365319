/* Package main implements a bytecode virtual machine for a small Scheme
dialect: tagged fixnums, pairs, strings, vectors, characters, booleans, and
closures over an append-only heap, with a frame-based call/return protocol
and lexical bindings addressed directly on the evaluation stack.

The VM never garbage collects, never compacts, and never mutates an
instruction stream once loaded; a run starts fresh from a decoded word
stream and halts the first time it faults or reaches the top-level RETURN.

The compiler that produces the word stream this package consumes is not
part of this module; main.go only implements the documented wire format
and CLI surface a compiler's output is expected to satisfy.
*/
package main

import (
	"context"
	"flag"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/joshMeise/SchemeCompiler/internal/logio"
)

func main() {
	var (
		memLimit   uint
		stackLimit uint
		heapLimit  uint
		timeout    time.Duration
		trace      bool
		dump       bool
	)
	flag.UintVar(&memLimit, "mem-limit", 0, "limit both stack and heap to this many words (0 disables)")
	flag.UintVar(&stackLimit, "stack-limit", 0, "limit the evaluation stack to this many words")
	flag.UintVar(&heapLimit, "heap-limit", 0, "limit the heap to this many words")
	flag.DurationVar(&timeout, "timeout", 0, "abort the run after this long")
	flag.BoolVar(&trace, "trace", false, "log one line per dispatched instruction")
	flag.BoolVar(&dump, "dump", false, "print a state dump after the run")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	args := flag.Args()
	in, out := resolveArgs(args)
	resolved := 0
	for _, p := range []string{in, out} {
		if p != "" {
			resolved++
		}
	}
	if resolved != len(args) {
		log.Errorf("usage: %s [flags] [infile.bc] [outfile.txt]", os.Args[0])
		return
	}

	data, err := readInput(in)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	code, err := decodeWords(data)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	outW, err := openOutput(out)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	opts := []VMOption{
		WithOutput(outW),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")), WithTrace(true))
	}
	if memLimit != 0 {
		opts = append(opts, WithMemLimit(memLimit))
	}
	if stackLimit != 0 {
		opts = append(opts, WithStackLimit(stackLimit))
	}
	if heapLimit != 0 {
		opts = append(opts, WithHeapLimit(heapLimit))
	}

	vm := New(code, opts...)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer vmDumper{vm: vm, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if _, runErr := vm.Run(ctx); runErr != nil {
		log.Errorf("%v", runErr)
	}
}

// resolveArgs pairs up to two positional arguments with input/output files
// by suffix (".bc" names the compiled input, ".txt" the result file) rather
// than fixed position, so either order is accepted.
func resolveArgs(args []string) (in, out string) {
	for _, a := range args {
		switch {
		case strings.HasSuffix(a, ".bc"):
			in = a
		case strings.HasSuffix(a, ".txt"):
			out = a
		}
	}
	return in, out
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

// openOutput opens the destination the VM's result is printed to: stdout
// with no output path, otherwise a freshly created file. A returned
// *os.File is closed automatically by vm.Close via the closer registered in
// WithOutput.
func openOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
