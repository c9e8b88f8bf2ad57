package mongo

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout_AddsDeadline(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining > time.Second || remaining <= 0 {
		t.Errorf("unexpected remaining time %s", remaining)
	}
}

func TestWithTimeout_KeepsShorterParentDeadline(t *testing.T) {
	parent, cancelParent := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelParent()
	parentDeadline, _ := parent.Deadline()

	ctx, cancel := WithTimeout(parent, time.Hour)
	defer cancel()

	deadline, _ := ctx.Deadline()
	if !deadline.Equal(parentDeadline) {
		t.Errorf("deadline = %v, want parent %v", deadline, parentDeadline)
	}
}
