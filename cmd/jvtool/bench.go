package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"go.jvlang.dev/jv/jv"
	"go.jvlang.dev/jv/profiler"
)

func newBenchCmd(profCfg *profiler.Profiler) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Microbenchmark jv array/object/string operations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := profCfg.Start(); err != nil {
				return err
			}
			defer func() {
				if err := profCfg.Stop(); err != nil {
					fmt.Println("stopping profiler:", err)
				}
			}()

			runBench(iterations)
			return nil
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 100_000, "number of operations per benchmark")

	return cmd
}

func runBench(n int) {
	benchArraySet(n)
	benchObjectSet(n)
	benchStringConcat(n)
}

func benchArraySet(n int) {
	start := time.Now()

	a := jv.Array()
	for i := 0; i < n; i++ {
		a = a.ArraySet(i, jv.Number(float64(i)))
	}
	a.Free()

	fmt.Printf("array set x%d: %s\n", n, time.Since(start))
}

func benchObjectSet(n int) {
	start := time.Now()

	o := jv.Object()
	for i := 0; i < n; i++ {
		o = o.ObjectSet(jv.String(fmt.Sprintf("k%d", i)), jv.Number(float64(i)))
	}
	o.Free()

	fmt.Printf("object set x%d: %s\n", n, time.Since(start))
}

func benchStringConcat(n int) {
	start := time.Now()

	s := jv.String("")
	x := jv.String("x")
	for i := 0; i < n; i++ {
		s = s.StringConcat(x.Copy())
	}
	s.Free()
	x.Free()

	fmt.Printf("string concat x%d: %s\n", n, time.Since(start))
}
