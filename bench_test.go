package paramtree

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/commands"
	"github.com/stretchr/testify/require"
)

// benchKey spreads n over a three-level tree with up to 100 entries per branch.
func benchKey(n int) string {
	return strconv.Itoa(n/10_000) + "." + strconv.Itoa(n/100%100) + "." + strconv.Itoa(n%100)
}

func benchmarkStdMapInsert(factor int, b *testing.B) {
	m := map[string]int{}
	for n := 0; n < factor*b.N; n++ {
		m[benchKey(n)] = n
	}
}

func BenchmarkStdMapInsert1(b *testing.B)   { benchmarkStdMapInsert(1, b) }
func BenchmarkStdMapInsert100(b *testing.B) { benchmarkStdMapInsert(100, b) }
func BenchmarkStdMapInsert10k(b *testing.B) { benchmarkStdMapInsert(10_000, b) }

func benchmarkStdMapGet(factor int, b *testing.B) {
	m := map[string]int{}
	b.StopTimer()
	for n := 0; n < factor*b.N; n++ {
		m[benchKey(n)] = n
	}
	b.StartTimer()
	for n := 0; n < factor*b.N; n++ {
		_ = m[benchKey(n)]
	}
}

func BenchmarkStdMapGet1(b *testing.B)   { benchmarkStdMapGet(1, b) }
func BenchmarkStdMapGet100(b *testing.B) { benchmarkStdMapGet(100, b) }
func BenchmarkStdMapGet10k(b *testing.B) { benchmarkStdMapGet(10_000, b) }

func benchmarkTreeSet(factor int, b *testing.B) {
	t := New(nil)
	for n := 0; n < factor*b.N; n++ {
		_ = t.Set(benchKey(n), n)
	}
}

func BenchmarkTreeSet1(b *testing.B)   { benchmarkTreeSet(1, b) }
func BenchmarkTreeSet100(b *testing.B) { benchmarkTreeSet(100, b) }
func BenchmarkTreeSet10k(b *testing.B) { benchmarkTreeSet(10_000, b) }

func benchmarkTreeGet(factor int, b *testing.B) {
	t := New(nil)
	b.StopTimer()
	for n := 0; n < factor*b.N; n++ {
		_ = t.Set(benchKey(n), n)
	}
	b.StartTimer()
	for n := 0; n < factor*b.N; n++ {
		_ = t.Get(benchKey(n), nil)
	}
}

func BenchmarkTreeGet1(b *testing.B)   { benchmarkTreeGet(1, b) }
func BenchmarkTreeGet100(b *testing.B) { benchmarkTreeGet(100, b) }
func BenchmarkTreeGet10k(b *testing.B) { benchmarkTreeGet(10_000, b) }

func BenchmarkMarshalJSON(b *testing.B) {
	t := New(nil)
	for n := 0; n < 10_000; n++ {
		_ = t.Set(benchKey(n), n)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := t.MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExerciser(b *testing.B) {
	parameters := gopter.DefaultTestParametersWithSeed(1593228262585360000)
	parameters.MaxSize = 512
	parameters.MinSuccessfulTests = b.N
	properties := gopter.NewProperties(parameters)
	properties.Property("tree exerciser", commands.Prop(treeCommands))
	out := bytes.NewBuffer(nil)
	reporter := gopter.NewFormatedReporter(false, 98, out)
	require.True(b, properties.Run(reporter))
}
