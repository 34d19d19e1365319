// Command gen_golden runs the VM's fixed battery of end-to-end bytecode
// programs concurrently, bounded by a context timeout, and writes their
// results as a generated Go fixture consumed by the golden test. Each
// program is run out-of-process (go run of the module's own main package)
// since that package cannot be imported directly.
package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"
)

// Opcode numbers duplicated from the VM package's opcodes.go: this tool
// runs the VM out-of-process (it is package main and cannot be imported),
// so it cannot reference the enum directly. Keep in sync by hand.
const (
	opLoad64 = 0
	opReturn = 1
	opPlus   = 11
	opCons   = 23
)

func fixnum(n int64) uint64 { return uint64(n) << 2 }

type scenario struct {
	name string
	code []uint64
}

// scenarios mirrors the end-to-end programs a compiler frontend is expected
// to produce: small, self-contained instruction streams exercising one
// feature each.
var scenarios = []scenario{
	{"constant", []uint64{opLoad64, fixnum(7), opReturn}},
	{"arithmetic", []uint64{
		opLoad64, fixnum(3),
		opLoad64, fixnum(4),
		opPlus,
		opReturn,
	}},
	{"pair", []uint64{
		opLoad64, fixnum(2),
		opLoad64, fixnum(1),
		opCons,
		opReturn,
	}},
}

func main() {
	out := flag.String("out", "golden_test_data.go", "generated fixture output path")
	timeout := flag.Duration("timeout", 10*time.Second, "overall time budget")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *out); err != nil {
		log.Fatalln(err)
	}
}

type result struct {
	name   string
	output string
}

func run(ctx context.Context, outPath string) error {
	eg, ctx := errgroup.WithContext(ctx)
	results := make([]result, len(scenarios))

	for i, sc := range scenarios {
		i, sc := i, sc
		eg.Go(func() error {
			out, err := runScenario(ctx, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", sc.name, err)
			}
			results[i] = result{sc.name, out}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("package main\n\n// @generated by scripts/gen_golden.go\n\n")
	buf.WriteString("var goldenResults = map[string]string{\n")
	for _, r := range results {
		fmt.Fprintf(&buf, "\t%q: %q,\n", r.name, r.output)
	}
	buf.WriteString("}\n")

	return os.WriteFile(outPath, buf.Bytes(), 0644)
}

func runScenario(ctx context.Context, sc scenario) (string, error) {
	var input bytes.Buffer
	for _, w := range sc.code {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], w)
		input.Write(b[:])
	}

	cmd := exec.CommandContext(ctx, "go", "run", "github.com/joshMeise/SchemeCompiler")
	cmd.Stdin = &input
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%v: %s", err, stderr.String())
	}
	return stdout.String(), nil
}
