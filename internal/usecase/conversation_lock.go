package usecase

import (
	"context"
	"fmt"
	"sync"
)

// ConversationLocker serializes work on a single conversation inside one
// process. Distinct conversations never contend.
type ConversationLocker struct {
	mu    sync.Mutex
	locks map[string]*conversationLock
}

type conversationLock struct {
	sem     chan struct{}
	waiters int
}

// NewConversationLocker creates an empty locker.
func NewConversationLocker() *ConversationLocker {
	return &ConversationLocker{locks: make(map[string]*conversationLock)}
}

// Lock blocks until the conversation is free or ctx is done. The returned
// unlock function must be called exactly once.
func (l *ConversationLocker) Lock(ctx context.Context, id string) (unlock func(), err error) {
	l.mu.Lock()
	cl, ok := l.locks[id]
	if !ok {
		cl = &conversationLock{sem: make(chan struct{}, 1)}
		l.locks[id] = cl
	}
	cl.waiters++
	l.mu.Unlock()

	select {
	case cl.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-cl.sem
				l.release(id, cl)
			})
		}, nil
	case <-ctx.Done():
		l.release(id, cl)
		return nil, fmt.Errorf("conversation lock: %w", ctx.Err())
	}
}

func (l *ConversationLocker) release(id string, cl *conversationLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cl.waiters--
	if cl.waiters == 0 {
		delete(l.locks, id)
	}
}

// ActiveCount returns the number of conversations with held or pending locks.
func (l *ConversationLocker) ActiveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
