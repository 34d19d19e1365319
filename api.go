package main

import (
	"context"
	"errors"
	"io"
	"io/ioutil"

	"github.com/joshMeise/SchemeCompiler/internal/flushio"
	"github.com/joshMeise/SchemeCompiler/internal/panicerr"
)

// New constructs a VM ready to run the given instruction stream, applying
// any options in order.
func New(code []word, opts ...VMOption) *VM {
	vm := &VM{code: code}
	vm.logging.markWidth = 4
	defaultOptions.apply(vm)
	VMOptions(opts...).apply(vm)
	return vm
}

// Run drives the dispatch loop to completion in an isolated goroutine, so
// that an unexpected Go panic (as opposed to a VM fault reported through
// halt) is reported as an error rather than crashing the process. On a
// successful top-level RETURN it prints the result word through the sink
// configured by WithOutput/WithTee, followed by a newline, before returning
// the result word itself; an invalid tag in the result is itself a fatal
// fault at this point, per the printer's contract.
func (vm *VM) Run(ctx context.Context) (word, error) {
	err := panicerr.Recover("VM", func() error {
		return vm.run(ctx)
	})
	if err == nil {
		err = vm.writeResult()
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		return vm.result, nil
	}
	var he haltError
	if errors.As(err, &he) {
		err = he.error
	}
	return 0, err
}

func (vm *VM) writeResult() error {
	text, err := vm.Sprint(vm.result)
	if err != nil {
		return err
	}
	_, err = vm.out.Write([]byte(text + "\n"))
	return err
}

// Close flushes output and releases any resources registered by WithOutput
// or WithTee.
func (vm *VM) Close() error {
	var err error
	if vm.out != nil {
		err = vm.out.Flush()
	}
	for _, c := range vm.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// VMOption configures a VM at construction time.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(ioutil.Discard),
)

// VMOptions flattens a list of options into one, so that option-producing
// helpers can compose.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(vm *VM) {}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

func WithOutput(w io.Writer) VMOption { return withOutput(w) }
func WithTee(w io.Writer) VMOption    { return teeOption{w} }

func WithLogf(logf func(mess string, args ...interface{})) VMOption { return withLogfn(logf) }
func WithTrace(on bool) VMOption                                    { return traceOption(on) }

func WithMemLimit(limit uint) VMOption   { return memLimitOption(limit) }
func WithStackLimit(limit uint) VMOption { return stackLimitOption(limit) }
func WithHeapLimit(limit uint) VMOption  { return heapLimitOption(limit) }

type withLogfn func(mess string, args ...interface{})

func (logf withLogfn) apply(vm *VM) { vm.logging.logfn = logf }

type traceOption bool

func (t traceOption) apply(vm *VM) { vm.trace = bool(t) }

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (o teeOption) apply(vm *VM) {
	if vm.out == nil {
		vm.out = flushio.NewWriteFlusher(o.Writer)
	} else {
		vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
	}
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

type memLimitOption uint

func (lim memLimitOption) apply(vm *VM) {
	vm.stack.limit = uint(lim)
	vm.heap.limit = uint(lim)
}

type stackLimitOption uint

func (lim stackLimitOption) apply(vm *VM) { vm.stack.limit = uint(lim) }

type heapLimitOption uint

func (lim heapLimitOption) apply(vm *VM) { vm.heap.limit = uint(lim) }
