package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/hiresight/pkg/kernel"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment"
	"github.com/Abraxas-365/hiresight/recruitment/enrichment/enrichmenttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProcessor struct {
	mu   sync.Mutex
	seen map[kernel.CandidateID]int
	done chan struct{}
	want int
}

func (p *countingProcessor) Process(_ context.Context, job *enrichment.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen[job.CandidateID]++
	total := 0
	for _, n := range p.seen {
		total += n
	}
	if total == p.want {
		close(p.done)
	}
	return nil
}

func TestPoolProcessesReadyAndDelayedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := enrichmenttest.NewMemoryQueue()
	for _, id := range []kernel.CandidateID{"c1", "c2", "c3"} {
		require.NoError(t, queue.Enqueue(ctx, enrichment.Job{CandidateID: id}))
	}
	require.NoError(t, queue.EnqueueDelayed(ctx, enrichment.Job{CandidateID: "c4"}, 0))

	proc := &countingProcessor{seen: map[kernel.CandidateID]int{}, done: make(chan struct{}), want: 4}
	pool := NewPool(proc, queue, Config{Workers: 2, PollTimeout: time.Millisecond, MoveInterval: 5 * time.Millisecond})

	errc := make(chan error, 1)
	go func() { errc <- pool.Run(ctx) }()

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not processed")
	}
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop")
	}

	for _, id := range []kernel.CandidateID{"c1", "c2", "c3", "c4"} {
		assert.Equal(t, 1, proc.seen[id], id)
	}
}
