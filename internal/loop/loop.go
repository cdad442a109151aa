// Package loop provides the single cooperative event loop a session runs on.
//
// Every input a session receives (scroll notifications, commands, timer
// ticks, animation callbacks) is posted as a func and executed one at a
// time on one goroutine. A handler therefore runs to completion before the
// next begins, which is what lets the carousel and navigation state be read
// and written without locks.
package loop

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Loop executes posted handlers serially in FIFO order.
type Loop struct {
	logger *zap.Logger

	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// New starts a loop goroutine.
func New(logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loop{
		logger: logger,
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

// Post queues fn. It returns false, without queueing, once Close has begun.
// Post never blocks, so handlers and timer callbacks may both use it.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call posts fn and waits for it to run. It returns false if the loop closed
// before fn ran. Call must not be used from inside a handler.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() {
		fn()
		close(ran)
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Close stops the loop. Queued handlers that have not started are discarded,
// a running handler is allowed to finish, and no handler starts after Close
// returns. Close is idempotent and must not be called from inside a handler.
func (l *Loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		dropped := len(l.pending)
		l.pending = nil
		l.mu.Unlock()
		close(l.quit)
		if dropped > 0 {
			l.logger.Debug("discarded queued handlers on close", zap.Int("count", dropped))
		}
	})
	<-l.done
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.invoke(fn)
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.pending) == 0 {
		return nil, false
	}
	fn := l.pending[0]
	l.pending[0] = nil
	l.pending = l.pending[1:]
	return fn, true
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("handler panicked", zap.String("panic", fmt.Sprint(r)), zap.Stack("stack"))
		}
	}()
	fn()
}
