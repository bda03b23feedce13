package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int    // For deterministic ordering
	Image  *Image // Shared image to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	group       *errgroup.Group
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID           int
	tileRenderer *TileRenderer
	taskQueue    chan TileTask
	resultQueue  chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so that submitting and reporting never block.
func NewWorkerPool(raytracer *Raytracer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	// The raytracer is read-only, so workers share it
	tileRenderer := NewTileRenderer(raytracer)
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:           i,
			tileRenderer: tileRenderer,
			taskQueue:    wp.taskQueue,
			resultQueue:  wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers. Workers exit when ctx is cancelled, when the task
// queue is closed, or when any worker fails.
func (wp *WorkerPool) Start(ctx context.Context) {
	group, groupCtx := errgroup.WithContext(ctx)
	wp.group = group
	for _, worker := range wp.workers {
		w := worker
		group.Go(func() error {
			return w.run(groupCtx)
		})
	}
}

// Stop closes the task queue, waits for workers to finish and returns the first worker error
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	var err error
	if wp.group != nil {
		err = wp.group.Wait()
	}
	close(wp.resultQueue)
	return err
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Results exposes completed tile results
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-w.taskQueue:
			if !ok {
				return nil
			}

			// Each tile has non-overlapping bounds, so writing to the shared image is safe
			stats, err := w.tileRenderer.RenderTileBounds(task.Tile.Bounds, task.Image)
			w.resultQueue <- TileResult{
				TaskID: task.TaskID,
				Stats:  stats,
				Error:  err,
			}
			if err != nil {
				return err
			}
		}
	}
}
