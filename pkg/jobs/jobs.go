// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

// Job enqueues tasks for parallel processing and synchronous response
type Job[T any] struct {
	// ID identifies the job in logs
	ID string
	// MaxWorkers is the maximum number of workers processing a batch of tasks in parallel
	MaxWorkers int
	// MinWorkers is the minimum number of workers processing a batch of tasks in parallel
	MinWorkers int
	// Worker for processing tasks
	Worker Worker[T]
	// FailFast controls the behavior of this Job upon errors. If set to true, it will quit
	// further processing upon the first error that occurs. For fault tolerant processing
	// use false.
	FailFast bool
}

// Worker declares workers functional interface
type Worker[T any] interface {
	// Work processes the task within the given context.
	Work(ctx context.Context, task T) error
}

// The WorkerFunc type is an adapter to allow the use of
// ordinary functions as Workers. If f is a function
// with the appropriate signature, WorkerFunc(f) is a
// Worker object that calls f.
type WorkerFunc[T any] func(ctx context.Context, task T) error

// Work calls f(ctx, task).
func (f WorkerFunc[T]) Work(ctx context.Context, task T) error {
	return f(ctx, task)
}

// Dispatch spawns a set of workers processing in parallel the supplied tasks.
// If the context is cancelled or has timed out the context error is returned.
// With FailFast the first worker error is returned as soon as possible and the
// remaining tasks are abandoned. Otherwise, all tasks are processed and the
// errors are returned aggregated.
func (j *Job[T]) Dispatch(ctx context.Context, tasks []T) error {
	if j.MaxWorkers < j.MinWorkers {
		panic(fmt.Sprintf("Job maxWorkers < minWorkers: %d < %d", j.MaxWorkers, j.MinWorkers))
	}
	if len(tasks) == 0 {
		return nil
	}
	workersCount := len(tasks)
	if workersCount > j.MaxWorkers {
		workersCount = j.MaxWorkers
	}
	if workersCount < j.MinWorkers {
		workersCount = j.MinWorkers
	}
	if workersCount < 1 {
		workersCount = 1
	}
	klog.V(6).Infof("job %s: dispatching %d tasks to %d workers", j.ID, len(tasks), workersCount)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errcList := make([]<-chan error, 0, workersCount+1)
	taskCh, errc := j.allocate(ctx, tasks)
	errcList = append(errcList, errc)
	for i := 0; i < workersCount; i++ {
		errcList = append(errcList, j.process(ctx, taskCh))
	}
	return waitForPipeline(j.FailFast, cancel, errcList...)
}

// Allocates the tasks channel and asynchronously feeds tasks to it staying
// sensitive to termination signals from the provided context. Context
// terminal signals are registered as errors to the error channel.
func (j *Job[T]) allocate(ctx context.Context, tasks []T) (<-chan T, <-chan error) {
	taskCh := make(chan T)
	errCh := make(chan error, 1)
	go func() {
		defer close(taskCh)
		defer close(errCh)
		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}
			select {
			case taskCh <- task:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()
	return taskCh, errCh
}

// Processes tasks from the tasks channel until it is closed or the context
// signals termination. The processing delegates to the Worker registered in this Job.
func (j *Job[T]) process(ctx context.Context, taskCh <-chan T) <-chan error {
	errCh := make(chan error)
	go func() {
		defer close(errCh)
		for task := range taskCh {
			err := j.Worker.Work(ctx, task)
			if err == nil {
				continue
			}
			select {
			case errCh <- err:
			case <-ctx.Done():
				return
			}
			if j.FailFast {
				return
			}
		}
	}()
	return errCh
}

// merges asynchronously produced errors from multiple error channels into a single channel
func mergeErrors(channels ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(channels))
	output := func(ch <-chan error) {
		defer wg.Done()
		for err := range ch {
			errCh <- err
		}
	}
	wg.Add(len(channels))
	for _, ch := range channels {
		go output(ch)
	}
	go func() {
		wg.Wait()
		close(errCh)
	}()
	return errCh
}

// waitForPipeline waits for results from all error channels.
// It returns early on the first error if failFast is true or
// collects errors and returns an aggregated error at the end.
func waitForPipeline(failFast bool, cancel context.CancelFunc, errChs ...<-chan error) error {
	var errs *multierror.Error
	errCh := mergeErrors(errChs...)
	for err := range errCh {
		if failFast {
			cancel()
			// drain so that the remaining producers can exit
			go func() {
				for range errCh {
				}
			}()
			return err
		}
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}
