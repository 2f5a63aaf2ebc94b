// Command statebench measures write and notify throughput of the state
// core across scope counts and fan-out shapes.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/lorikeet-ui/lorikeet/state"
)

const (
	itersKey = "iters"
	subsKey  = "subscribers"
	burstKey = "burst"
)

var scopeCounts = []int{1, 10, 100, 1_000}

func main() {
	cmd := &cli.Command{
		Name:  "statebench",
		Usage: "Benchmark write and notify throughput of the lorikeet state core",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Iterations per benchmark",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  subsKey,
				Usage: "Subscribers per scope",
				Value: 10,
			},
			&cli.IntFlag{
				Name:  burstKey,
				Usage: "Writes coalesced per flush in the burst benchmark",
				Value: 10,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Int(itersKey))
	subs := int(cmd.Int(subsKey))
	burst := int(cmd.Int(burstKey))

	tbl := table.NewWriter()
	tbl.SetTitle("lorikeet state")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "events", "avg", "min", "p75", "p99", "max"})

	for _, n := range scopeCounts {
		calc, delivered := benchRootWrites(n, subs, iters)
		tbl.AppendRow(benchRow(
			fmt.Sprintf("root write: %s scopes x %d subs", humanize.Comma(int64(n)), subs),
			delivered, calc,
		))
	}
	for _, n := range scopeCounts {
		calc, delivered := benchPartFanOut(n, subs, iters)
		tbl.AppendRow(benchRow(
			fmt.Sprintf("part fan-out: %s parts x %d subs", humanize.Comma(int64(n)), subs),
			delivered, calc,
		))
	}
	calc, delivered := benchBurst(subs, burst, iters)
	tbl.AppendRow(benchRow(
		fmt.Sprintf("burst: %d writes per flush x %d subs", burst, subs),
		delivered, calc,
	))

	tbl.Render()
	return nil
}

func benchRow(name string, delivered int64, calc *tachymeter.Metrics) table.Row {
	return table.Row{
		name,
		humanize.Comma(delivered),
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	}
}

// benchRootWrites writes every root scope once per iteration, then
// drains. Each scope delivers one batch per iteration.
func benchRootWrites(scopes, subs, iters int) (*tachymeter.Metrics, int64) {
	queue := state.NewChangeQueue()
	var delivered int64

	writers := make([]*state.Stateful[int], scopes)
	for i := range writers {
		writers[i] = state.NewWithScheduler(queue, 0)
		for j := 0; j < subs; j++ {
			writers[i].RawModifies().Subscribe(func(state.ModifyInfo) { delivered++ })
		}
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		for _, s := range writers {
			w := s.Write()
			*w.Value()++
			w.Release()
		}
		queue.RunUntilStalled()
		tach.AddTime(time.Since(start))
	}
	return tach.Calc(), delivered
}

// benchPartFanOut derives parts scoped under one include-partial root
// and writes one part per iteration, round-robin. The root's
// subscribers hear every part write, so filtering cost shows up here.
func benchPartFanOut(parts, subs, iters int) (*tachymeter.Metrics, int64) {
	queue := state.NewChangeQueue()
	var delivered int64

	root := state.NewWithScheduler(queue, make([]int, parts)).IncludePartialWriters(true)
	for j := 0; j < subs; j++ {
		root.RawModifies().Subscribe(func(state.ModifyInfo) { delivered++ })
	}

	writers := make([]*state.PartWriter[int], parts)
	for i := range writers {
		idx := i
		writers[i] = state.NewPartWriter(root, state.ID(fmt.Sprintf("p%d", i)),
			func(v *[]int) *int { return &(*v)[idx] })
		for j := 0; j < subs; j++ {
			writers[i].RawModifies().Subscribe(func(state.ModifyInfo) { delivered++ })
		}
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		w := writers[i%parts].Write()
		*w.Value()++
		w.Release()
		queue.RunUntilStalled()
		tach.AddTime(time.Since(start))
	}
	return tach.Calc(), delivered
}

// benchBurst coalesces a run of writes into one batch per flush.
func benchBurst(subs, burst, iters int) (*tachymeter.Metrics, int64) {
	queue := state.NewChangeQueue()
	var delivered int64

	s := state.NewWithScheduler(queue, 0)
	for j := 0; j < subs; j++ {
		s.RawModifies().Subscribe(func(state.ModifyInfo) { delivered++ })
	}

	tach := tachymeter.New(&tachymeter.Config{Size: iters})
	for i := 0; i < iters; i++ {
		start := time.Now()
		for k := 0; k < burst; k++ {
			w := s.Write()
			*w.Value()++
			w.Release()
		}
		queue.RunUntilStalled()
		tach.AddTime(time.Since(start))
	}
	return tach.Calc(), delivered
}
