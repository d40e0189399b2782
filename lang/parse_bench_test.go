package lang

import (
	"context"
	"strconv"
	"strings"
	"testing"
)

func benchmarkSource(n int) string {
	var b strings.Builder

	for i := range n {
		name := "f" + strconv.Itoa(i)

		b.WriteString("extern " + name + "(a, b, c)\n")
		b.WriteString("def g" + name + "(x, y) " + name + "(x, y, 3.25e1)\n")
		b.WriteString("g" + name + "(1, h(2, k(3)))\n")
	}

	return b.String()
}

func BenchmarkParseString(b *testing.B) {
	for _, n := range []int{1, 100, 1000} {
		src := benchmarkSource(n)

		b.Run(strconv.Itoa(n*3), func(b *testing.B) {
			ctx := context.Background()

			b.SetBytes(int64(len(src)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := ParseString(ctx, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParseString_Failure(b *testing.B) {
	src := benchmarkSource(100) + "extern broken("

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Parse(src); err == nil {
			b.Fatal("expected failure")
		}
	}
}

func BenchmarkParseString_Flat(b *testing.B) {
	for _, n := range []int{10000, 100000, 400000} {
		src := strings.Repeat("f(1)\n", n)

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.SetBytes(int64(len(src)))

			for b.Loop() {
				if _, err := Parse(src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
