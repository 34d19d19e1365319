package main

//go:generate go run ./scripts/gen_golden.go -out golden_test_data.go

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// goldenScenarios mirrors scripts/gen_golden.go's scenario battery: the same
// programs, built directly as word code instead of run out-of-process, so
// this test can check the checked-in golden_test_data.go fixture without
// shelling out to `go run`.
var goldenScenarios = map[string][]word{
	"constant": {op(opLoad64), tagFixnum(7), op(opReturn)},
	"arithmetic": {
		op(opLoad64), tagFixnum(3),
		op(opLoad64), tagFixnum(4),
		op(opPlus),
		op(opReturn),
	},
	"pair": {
		op(opLoad64), tagFixnum(2),
		op(opLoad64), tagFixnum(1),
		op(opCons),
		op(opReturn),
	},
}

func TestVMGoldenResults(t *testing.T) {
	require.Equal(t, len(goldenScenarios), len(goldenResults), "golden_test_data.go is stale: regenerate with scripts/gen_golden.go")

	for name, code := range goldenScenarios {
		name, code := name, code
		t.Run(name, func(t *testing.T) {
			vm := New(code)
			result, err := vm.Run(context.Background())
			require.NoError(t, err)

			text, err := vm.Sprint(result)
			require.NoError(t, err)

			want, ok := goldenResults[name]
			require.True(t, ok, "no golden fixture for scenario %q", name)
			require.Equal(t, want, text+"\n")
		})
	}
}
