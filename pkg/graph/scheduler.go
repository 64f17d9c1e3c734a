package graph

import "sync"

// ParallelScheduler renders independent branches of the graph (nodes with
// no path between them in the topological order) across a fixed pool of
// worker goroutines, launched once at construction rather than per
// block. This is hand-rolled instead of golang.org/x/sync/errgroup:
// errgroup.Group.Go allocates a goroutine and a closure per call, every
// block, which violates the no-allocation-on-the-audio-thread invariant;
// a persistent worker pool pays that allocation cost once at startup.
type ParallelScheduler struct {
	workers int
	jobs    chan func()
	wg      sync.WaitGroup
}

// NewParallelScheduler starts a pool of workers goroutines, each blocking
// on an unbuffered job channel until the scheduler is stopped.
func NewParallelScheduler(workers int) *ParallelScheduler {
	if workers < 1 {
		workers = 1
	}
	s := &ParallelScheduler{
		workers: workers,
		jobs:    make(chan func()),
	}
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *ParallelScheduler) worker() {
	for job := range s.jobs {
		job()
		s.wg.Done()
	}
}

// RunLevel submits a batch of independent jobs (e.g. all nodes at the
// same topological depth) and blocks until every job in the batch
// completes.
func (s *ParallelScheduler) RunLevel(jobs []func()) {
	s.wg.Add(len(jobs))
	for _, job := range jobs {
		s.jobs <- job
	}
	s.wg.Wait()
}

// Stop shuts down the worker pool. Not safe to call concurrently with
// RunLevel.
func (s *ParallelScheduler) Stop() {
	close(s.jobs)
}

// Levels groups the graph's topological order into levels where every
// node in a level has no dependency on another node in the same level,
// letting RunLevel parallelize within a level while still rendering
// levels themselves in order.
func (g *Graph) Levels() [][]int {
	depth := make([]int, len(g.Nodes))
	for _, id := range g.order {
		n := g.Nodes[id]
		maxParent := -1
		for _, srcID := range n.inputs {
			if depth[srcID] > maxParent {
				maxParent = depth[srcID]
			}
		}
		depth[id] = maxParent + 1
	}

	var levels [][]int
	for _, id := range g.order {
		d := depth[id]
		for len(levels) <= d {
			levels = append(levels, nil)
		}
		levels[d] = append(levels[d], id)
	}
	return levels
}
