package gui

import (
	"context"
	"fmt"
	"sync"
)

// ActionKind identifies what a queued chat action does
type ActionKind int

const (
	ActionText ActionKind = iota
	ActionVoice
	ActionLoad
)

func (k ActionKind) String() string {
	switch k {
	case ActionText:
		return "Sending"
	case ActionVoice:
		return "Listening"
	case ActionLoad:
		return "Loading"
	default:
		return "Working"
	}
}

// Action is one unit of chat work run off the UI thread
type Action struct {
	ID   int
	Kind ActionKind
	Run  func(ctx context.Context)
}

// ActionQueue runs chat actions one at a time in submission order, so
// replies appear in the order questions were asked and speech never
// overlaps.
type ActionQueue struct {
	actions chan *Action
	nextID  int
	pending int
	current *Action
	mu      sync.Mutex

	// queued plus running actions per kind
	outstanding map[ActionKind]int

	// Callback for UI updates
	onStatusUpdate func(current *Action, pending int)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewActionQueue creates a queue and starts its worker
func NewActionQueue(ctx context.Context) *ActionQueue {
	queueCtx, cancel := context.WithCancel(ctx)

	q := &ActionQueue{
		actions:     make(chan *Action, 100),
		nextID:      1,
		outstanding: make(map[ActionKind]int),
		ctx:         queueCtx,
		cancel:      cancel,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

// SetCallback sets the function called whenever the queue state changes.
// It runs on the worker goroutine.
func (q *ActionQueue) SetCallback(onStatusUpdate func(current *Action, pending int)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onStatusUpdate = onStatusUpdate
}

// Add enqueues run. It fails once the queue is stopped or full.
func (q *ActionQueue) Add(kind ActionKind, run func(ctx context.Context)) (*Action, error) {
	q.mu.Lock()
	action := &Action{ID: q.nextID, Kind: kind, Run: run}
	q.nextID++
	q.pending++
	q.outstanding[kind]++
	q.mu.Unlock()

	select {
	case <-q.ctx.Done():
		q.drop(kind)
		return nil, fmt.Errorf("queue is shutting down")
	default:
	}

	select {
	case q.actions <- action:
		q.notify()
		return action, nil
	default:
		q.drop(kind)
		return nil, fmt.Errorf("too many pending actions")
	}
}

func (q *ActionQueue) worker() {
	defer q.wg.Done()
	for {
		select {
		case <-q.ctx.Done():
			return
		case action := <-q.actions:
			q.dequeued(action)
			q.notify()

			action.Run(q.ctx)

			q.mu.Lock()
			q.current = nil
			q.outstanding[action.Kind]--
			q.mu.Unlock()
			q.notify()
		}
	}
}

func (q *ActionQueue) dequeued(current *Action) {
	q.mu.Lock()
	q.pending--
	q.current = current
	q.mu.Unlock()
}

func (q *ActionQueue) drop(kind ActionKind) {
	q.mu.Lock()
	q.pending--
	q.outstanding[kind]--
	q.mu.Unlock()
}

func (q *ActionQueue) notify() {
	q.mu.Lock()
	cb := q.onStatusUpdate
	current := q.current
	pending := q.pending
	q.mu.Unlock()

	if cb != nil {
		cb(current, pending)
	}
}

// Pending returns the number of actions waiting to run
func (q *ActionQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// Outstanding returns how many actions of kind are queued or running
func (q *ActionQueue) Outstanding(kind ActionKind) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.outstanding[kind]
}

// Busy reports whether an action is running
func (q *ActionQueue) Busy() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current != nil
}

// Stop cancels the running action and waits for the worker to exit
func (q *ActionQueue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// StatusText renders the queue state for the status bar
func StatusText(current *Action, pending int) string {
	switch {
	case current == nil && pending == 0:
		return "Ready"
	case current == nil:
		return fmt.Sprintf("Queued: %d", pending)
	case pending == 0:
		return current.Kind.String() + "..."
	default:
		return fmt.Sprintf("%s... (queued: %d)", current.Kind, pending)
	}
}
