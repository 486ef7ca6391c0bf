package shutdown

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestShutdownRunsHooksInReverseOnce(t *testing.T) {
	h := NewHandler(time.Second)

	var order []string
	h.OnShutdown("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	h.OnClose("second", func() error {
		order = append(order, "second")
		return nil
	})

	if err := h.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := h.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
	if strings.Join(order, ",") != "second,first" {
		t.Errorf("order = %v", order)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestShutdownJoinsErrors(t *testing.T) {
	h := NewHandler(0)
	errA := errors.New("a failed")
	h.OnClose("a", func() error { return errA })
	h.OnClose("b", func() error { return nil })

	err := h.Shutdown()
	if !errors.Is(err, errA) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "a: a failed") {
		t.Errorf("err = %q", err)
	}
}

func TestShutdownHookSeesDeadline(t *testing.T) {
	h := NewHandler(50 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("hook context has no deadline")
		}
		return nil
	})
	_ = h.Shutdown()
}

func TestNotifyContextCancelledBySignal(t *testing.T) {
	h := NewHandler(time.Second)
	ctx, stop := h.NotifyContext(context.Background())
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Skipf("cannot signal self: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled")
	}
}
