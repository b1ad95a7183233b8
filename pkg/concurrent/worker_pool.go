package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

/*
WorkerPool. fixed number of goroutines consuming jobs from a queue and pushing one result per job.
usage: Start, AddJob..., Close, then read CollectResults until it is closed (Wait closes it once every worker is done).
once ctx is cancelled the remaining queued jobs are dropped without calling the job func.
*/
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if ctx.Err() != nil {
			continue
		}
		wp.results <- jobFunc(ctx, job)
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait blocks until every worker returned, then closes the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan G {
	return wp.results
}

// Close signals that no more jobs will be added.
func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	pos  int
	item T
}

/*
Map. runs jobFunc on every job with numWorkers goroutines and returns the results in the order of jobs.
done[i] is false when job i was dropped because ctx got cancelled.
*/
func Map[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) ([]G, []bool) {
	wp := NewWorkerPool[indexed[T], indexed[G]](numWorkers, numWorkers*2)
	wp.Start(ctx, func(ctx context.Context, job indexed[T]) indexed[G] {
		return indexed[G]{pos: job.pos, item: jobFunc(ctx, job.item)}
	})

	go func() {
		for i, job := range jobs {
			wp.AddJob(indexed[T]{pos: i, item: job})
		}
		wp.Close()
	}()

	go wp.Wait()

	results := make([]G, len(jobs))
	done := make([]bool, len(jobs))
	for res := range wp.CollectResults() {
		results[res.pos] = res.item
		done[res.pos] = true
	}
	return results, done
}
