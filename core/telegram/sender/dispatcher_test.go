package sender

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/PetrKevich/bot/core/logger"
)

func TestDispatcherPerChatOrder(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 4096})

	var mu sync.Mutex
	got := make(map[int64][]int)
	for i := 0; i < 100; i++ {
		for chat := int64(-3); chat <= 3; chat++ {
			chat, i := chat, i
			ctx := logger.WithUpdateMeta(context.Background(), 0, chat, chat)
			err := d.Enqueue(ctx, "send.text", "sendMessage", func() error {
				mu.Lock()
				got[chat] = append(got[chat], i)
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Fatalf("enqueue: %v", err)
			}
		}
	}
	d.Close()

	for chat, seq := range got {
		if len(seq) != 100 {
			t.Fatalf("chat %d: %d jobs", chat, len(seq))
		}
		for i, v := range seq {
			if v != i {
				t.Fatalf("chat %d out of order at %d: %v", chat, i, seq[:i+1])
			}
		}
	}
	if d.Sent() != 700 || d.ErrorCount() != 0 {
		t.Fatalf("sent=%d errors=%d", d.Sent(), d.ErrorCount())
	}
}

func TestDispatcherQueueFullAndClosed(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	block := make(chan struct{})
	started := make(chan struct{})
	if err := d.EnqueueFor(context.Background(), 1, "a", "", func() error {
		close(started)
		<-block
		return nil
	}); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	<-started
	if err := d.EnqueueFor(context.Background(), 1, "b", "", func() error { return nil }); err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if err := d.EnqueueFor(context.Background(), 1, "c", "", func() error { return nil }); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	close(block)
	d.Close()
	if err := d.Enqueue(context.Background(), "d", "", func() error { return nil }); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, want ErrQueueClosed", err)
	}
	if d.Enqueue(context.Background(), "e", "", nil) == nil {
		t.Fatal("nil run accepted")
	}
}

func TestDispatcherRetriesTransientErrors(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	calls := 0
	dial := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}
	_ = d.EnqueueFor(context.Background(), 5, "retry", "", func() error {
		calls++
		if calls < 3 {
			return dial
		}
		return nil
	})
	permanent := 0
	_ = d.EnqueueFor(context.Background(), 5, "permanent", "", func() error {
		permanent++
		return errors.New("telegram: chat not found (400)")
	})
	d.Close()

	if calls != 3 || permanent != 1 {
		t.Fatalf("calls=%d permanent=%d", calls, permanent)
	}
	if d.Sent() != 1 || d.ErrorCount() != 1 {
		t.Fatalf("sent=%d errors=%d", d.Sent(), d.ErrorCount())
	}
}

func TestClassifyAndRedact(t *testing.T) {
	cases := map[string]error{
		"timeout":  context.DeadlineExceeded,
		"dial":     &net.OpError{Op: "dial", Err: errors.New("x")},
		"http_4xx": errors.New("telegram: chat not found (400)"),
		"http_5xx": errors.New("telegram: internal (502)"),
		"unknown":  errors.New("boom"),
	}
	for want, err := range cases {
		if got := classifyError(err); got != want {
			t.Fatalf("classifyError(%v) = %s, want %s", err, got, want)
		}
	}
	msg := sanitizeErrorMessage(errors.New(`Post "https://api.telegram.org/bot123:AA-bb_c/sendMessage": EOF`))
	if msg != `Post "https://api.telegram.org/bot<redacted>/sendMessage": EOF` {
		t.Fatalf("unexpected redaction: %s", msg)
	}
}
