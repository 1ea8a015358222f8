package quiz

import (
	"sync"
	"testing"
	"time"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	locks := newKeyLock[string]()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for idx := 0; idx < 50; idx++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("u1/quiz-1")
			defer unlock()
			current := counter
			counter = current + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
	if locks.size() != 0 {
		t.Fatalf("expected all keys released, %d remain", locks.size())
	}
}

func TestKeyLockIndependentKeys(t *testing.T) {
	locks := newKeyLock[string]()

	unlockA := locks.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()
	<-done

	if locks.size() != 1 {
		t.Fatalf("size = %d, want 1 while a is held", locks.size())
	}
	unlockA()
	if locks.size() != 0 {
		t.Fatalf("size = %d, want 0", locks.size())
	}
}

func TestAnswerSetKeysDoNotCollide(t *testing.T) {
	locks := newKeyLock[setKey]()

	unlock := locks.Lock(answerSetKey("a::b", "c"))
	defer unlock()

	acquired := make(chan struct{})
	go func() {
		release := locks.Lock(answerSetKey("a", "b::c"))
		release()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatalf("distinct (user, quiz) pairs share one lock")
	}
	if answerSetKey("a::b", "c") == answerSetKey("a", "b::c") {
		t.Fatalf("answerSetKey collides for distinct pairs")
	}
}
