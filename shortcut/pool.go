// MIT License
//
// Portions copyright (c) 2017 Ivan Pusic
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"context"
	"sync"
)

const queueLength = 1000

type task func()

type decodeWorker struct {
	idle  chan *decodeWorker
	tasks chan task
	stop  chan struct{}
}

func (w *decodeWorker) start() {
	go func() {
		for {
			// worker free, hand it back to the dispatcher
			w.idle <- w

			select {
			case t := <-w.tasks:
				t()
			case <-w.stop:
				w.stop <- struct{}{}
				return
			}
		}
	}()
}

// dispatcher hands queued tasks to the first idle worker
type dispatcher struct {
	idle  chan *decodeWorker
	queue chan task
	stop  chan struct{}
}

func (d *dispatcher) dispatch() {
	for {
		select {
		case t := <-d.queue:
			w := <-d.idle
			w.tasks <- t
		case <-d.stop:
			for i := 0; i < cap(d.idle); i++ {
				w := <-d.idle
				w.stop <- struct{}{}
				<-w.stop
			}
			d.stop <- struct{}{}
			return
		}
	}
}

func newDispatcher(workers int, queue chan task) *dispatcher {
	d := &dispatcher{
		idle:  make(chan *decodeWorker, workers),
		queue: queue,
		stop:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		w := &decodeWorker{
			idle:  d.idle,
			tasks: make(chan task),
			stop:  make(chan struct{}),
		}
		w.start()
	}
	go d.dispatch()
	return d
}

type pool struct {
	queue      chan task
	dispatcher *dispatcher
	wg         sync.WaitGroup
}

func newPool(workers int) *pool {
	if workers < 1 {
		workers = 1
	}
	queue := make(chan task, queueLength)
	return &pool{
		queue:      queue,
		dispatcher: newDispatcher(workers, queue),
	}
}

// Enqueue blocks while the queue is full. It gives up once ctx is done, in
// which case the task never runs.
func (p *pool) Enqueue(ctx context.Context, t task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.wg.Add(1)
	wrapped := func() {
		defer p.wg.Done()
		t()
	}
	select {
	case p.queue <- wrapped:
		return nil
	case <-ctx.Done():
		p.wg.Done()
		return ctx.Err()
	}
}

// Wait blocks until every enqueued task has run.
func (p *pool) Wait() {
	p.wg.Wait()
}

// Release stops the workers. Tasks must not be enqueued afterwards.
func (p *pool) Release() {
	p.dispatcher.stop <- struct{}{}
	<-p.dispatcher.stop
}
