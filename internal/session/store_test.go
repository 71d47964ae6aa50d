package session

import (
	"sync"
	"testing"
)

type counter struct {
	N int
}

func TestGetCreatesDefault(t *testing.T) {
	s := NewStore(func() *counter { return &counter{} })
	if _, ok := s.Peek(1); ok || s.Has(1) {
		t.Fatalf("unexpected session before first Get")
	}
	a := s.Get(1)
	a.N = 3
	if b := s.Get(1); b.N != 3 {
		t.Fatalf("Get returned a fresh session: %+v", b)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
	s.Clear(1)
	if s.Has(1) || s.Get(1).N != 0 {
		t.Fatalf("Clear did not reset the session")
	}
}

func TestPutAndRange(t *testing.T) {
	s := NewStore(func() int { return 0 })
	s.Put(1, 10)
	s.Put(2, 20)
	sum := 0
	s.Range(func(_ int64, v int) bool {
		sum += v
		return true
	})
	if sum != 30 {
		t.Fatalf("sum = %d", sum)
	}
}

func TestLockSerializesUser(t *testing.T) {
	s := NewStore(func() int { return 0 })
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock(7)
			defer unlock()
			s.Put(7, s.Get(7)+1)
		}()
	}
	wg.Wait()
	if got := s.Get(7); got != 200 {
		t.Fatalf("lost updates: %d", got)
	}

	s.lockMu.Lock()
	left := len(s.locks)
	s.lockMu.Unlock()
	if left != 0 {
		t.Fatalf("lock table not released: %d", left)
	}
}

func TestLockIndependentUsers(t *testing.T) {
	s := NewStore(func() int { return 0 })
	unlockA := s.Lock(1)
	done := make(chan struct{})
	go func() {
		unlock := s.Lock(2)
		unlock()
		close(done)
	}()
	<-done
	unlockA()
}
