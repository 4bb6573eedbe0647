// xlist-bench is a benchmark and stress test for the tree list. It builds a
// large sequence, measures positional and bulk operations, consumes split
// traversals on a worker pool and reports process memory at the end.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/benz9527/xlist/lib/list"
	"github.com/benz9527/xlist/observability"
)

const (
	sequenceSize  = 1 << 20
	randomOps     = 100_000
	mergeBatch    = 1 << 16
	parallelParts = 8
)

type benchResult struct {
	name     string
	duration time.Duration
	ops      int
}

func (r benchResult) String() string {
	if r.ops > 0 {
		opsPerSec := float64(r.ops) / r.duration.Seconds()
		return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec)", r.name, r.duration.Round(time.Millisecond), r.ops, opsPerSec)
	}
	return fmt.Sprintf("%-40s %12v", r.name, r.duration.Round(time.Millisecond))
}

func main() {
	logger := lo.Must(zap.NewDevelopment())
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shutdown, err := observability.NewConsoleMetricsExporter(30*time.Second, 5*time.Second)
	if err != nil {
		logger.Fatal("metrics exporter init failed", zap.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()
	observability.InitAppStats(ctx, "xlist-bench")

	logger.Info("tree list benchmark",
		zap.String("go", runtime.Version()),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.Int("sequence.size", sequenceSize),
	)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tl := list.NewTreeList[int](list.WithTreeListStats[int]("bench"))

	results := []benchResult{
		benchAppend(tl),
		benchRandomInsert(tl, rng),
		benchRandomGet(tl, rng),
		benchIterSweep(tl),
		benchMerge(tl),
		benchRemoveRange(tl, rng),
		benchParallelSplit(logger, tl),
	}

	fmt.Println("SUMMARY")
	for _, r := range results {
		fmt.Println(r)
	}
	reportMemory(logger)
}

func benchAppend(tl list.TreeList[int]) benchResult {
	start := time.Now()
	for i := 0; i < sequenceSize; i++ {
		tl.Append(i)
	}
	return benchResult{name: "sequential append", duration: time.Since(start), ops: sequenceSize}
}

func benchRandomInsert(tl list.TreeList[int], rng *rand.Rand) benchResult {
	start := time.Now()
	for i := 0; i < randomOps; i++ {
		_ = tl.Insert(rng.Int63n(tl.Len()+1), i)
	}
	return benchResult{name: "random position insert", duration: time.Since(start), ops: randomOps}
}

func benchRandomGet(tl list.TreeList[int], rng *rand.Rand) benchResult {
	start := time.Now()
	for i := 0; i < randomOps; i++ {
		_, _ = tl.Get(rng.Int63n(tl.Len()))
	}
	return benchResult{name: "random position get", duration: time.Since(start), ops: randomOps}
}

func benchIterSweep(tl list.TreeList[int]) benchResult {
	start := time.Now()
	sum := 0
	it := tl.Iter()
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			break
		}
		sum += v
	}
	_ = sum
	return benchResult{name: "full cursor sweep", duration: time.Since(start), ops: int(tl.Len())}
}

func benchMerge(tl list.TreeList[int]) benchResult {
	batch := make([]int, mergeBatch)
	for i := range batch {
		batch[i] = i
	}
	start := time.Now()
	tl.AddAll(batch...)
	return benchResult{name: "bulk merge append", duration: time.Since(start), ops: mergeBatch}
}

func benchRemoveRange(tl list.TreeList[int], rng *rand.Rand) benchResult {
	ops := 0
	start := time.Now()
	for tl.Len() > sequenceSize {
		width := lo.Min([]int64{1 + rng.Int63n(1024), tl.Len() - sequenceSize})
		from := rng.Int63n(tl.Len() - width + 1)
		_ = tl.RemoveRange(from, from+width-1)
		ops += int(width)
	}
	return benchResult{name: "random range removal", duration: time.Since(start), ops: ops}
}

func benchParallelSplit(logger *zap.Logger, tl list.TreeList[int]) benchResult {
	parts := []list.TreeListSpliterator[int]{tl.Split()}
	for len(parts) < parallelParts {
		next := make([]list.TreeListSpliterator[int], 0, len(parts)*2)
		for _, part := range parts {
			if lower, ok := part.TrySplit(); ok {
				next = append(next, lower)
			}
			next = append(next, part)
		}
		parts = next
	}

	pool, err := ants.NewPool(parallelParts)
	if err != nil {
		logger.Fatal("worker pool init failed", zap.Error(err))
	}
	defer pool.Release()

	start := time.Now()
	sums := make([]int64, len(parts))
	var wg sync.WaitGroup
	for i, part := range parts {
		wg.Add(1)
		i, part := i, part
		_ = pool.Submit(func() {
			defer wg.Done()
			_ = part.ForEachRemaining(func(v int) {
				sums[i] += int64(v)
			})
		})
	}
	wg.Wait()
	_ = lo.Sum(sums)
	return benchResult{name: "parallel split traversal", duration: time.Since(start), ops: int(tl.Len())}
}

func reportMemory(logger *zap.Logger) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fields := []zap.Field{
		zap.Uint64("heap.sys.mb", m.HeapSys/(1024*1024)),
		zap.Uint64("total.alloc.mb", m.TotalAlloc/(1024*1024)),
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil {
			fields = append(fields, zap.Uint64("rss.mb", mi.RSS/(1024*1024)))
		}
	}
	logger.Info("memory usage", fields...)
}
