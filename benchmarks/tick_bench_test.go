// Package benchmarks provides performance benchmarks for tick throughput.
package benchmarks

import (
	"fmt"
	"testing"

	"github.com/comalice/forestx"
)

func BenchmarkWideSequenceTick(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("leaves_%d", n), func(b *testing.B) {
			tree, err := GenWideTree(n)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tree.Tick(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDeepSequenceTick(b *testing.B) {
	for _, depth := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("depth_%d", depth), func(b *testing.B) {
			tree, err := GenDeepTree(depth)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tree.Tick(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParallelFanOutTick(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("children_%d", n), func(b *testing.B) {
			tree, err := GenParallelTree(n)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tree.Tick(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBlackBoardPutGet(b *testing.B) {
	bb := forestx.NewBlackBoard()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := bb.Put("k", forestx.Int(int64(i))); err != nil {
			b.Fatal(err)
		}
		if _, ok := bb.Get("k"); !ok {
			b.Fatal("missing key")
		}
	}
}
