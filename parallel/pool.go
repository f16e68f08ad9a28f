package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func()
)

// Pool runs submitted jobs on a fixed set of goroutines. A pool of one worker
// runs each job inline in Do.
type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	close   func()
}

// Start launches a pool of numWorkers goroutines, or GOMAXPROCS when
// numWorkers is below 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{workers: numWorkers, close: func() {}}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan func(), numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for f := range p.work {
				f()
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.work) })

	return p
}

// Workers is the number of goroutines serving the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Do queues f, blocking while every worker is busy and the queue is full.
// Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and returns once every queued job has finished.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
