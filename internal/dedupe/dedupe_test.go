package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupWindow(t *testing.T) (*Window, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewWindow(client), mr
}

func TestClaimFirstThenDuplicate(t *testing.T) {
	w, _ := setupWindow(t)
	ctx := context.Background()
	key := ApplicationKey("john@example.com")

	dup, err := w.Claim(ctx, key, ApplicationWindow)
	if err != nil {
		t.Fatalf("Claim error: %v", err)
	}
	if dup {
		t.Fatal("first claim reported as duplicate")
	}

	dup, err = w.Claim(ctx, key, ApplicationWindow)
	if err != nil {
		t.Fatalf("Claim error: %v", err)
	}
	if !dup {
		t.Fatal("second claim inside the window should be a duplicate")
	}
}

func TestClaimExpiresWithWindow(t *testing.T) {
	w, mr := setupWindow(t)
	ctx := context.Background()
	key := MessageKey("jane@example.com", "hello, I have a question about auto loans")

	if dup, _ := w.Claim(ctx, key, MessageWindow); dup {
		t.Fatal("first claim reported as duplicate")
	}

	mr.FastForward(MessageWindow + time.Second)

	dup, err := w.Claim(ctx, key, MessageWindow)
	if err != nil {
		t.Fatalf("Claim error: %v", err)
	}
	if dup {
		t.Fatal("claim after window expiry should not be a duplicate")
	}
}

func TestReleaseAllowsRetry(t *testing.T) {
	w, _ := setupWindow(t)
	ctx := context.Background()
	key := ApplicationKey("retry@example.com")

	if dup, _ := w.Claim(ctx, key, ApplicationWindow); dup {
		t.Fatal("first claim reported as duplicate")
	}
	if err := w.Release(ctx, key); err != nil {
		t.Fatalf("Release error: %v", err)
	}
	if dup, _ := w.Claim(ctx, key, ApplicationWindow); dup {
		t.Fatal("claim after release should not be a duplicate")
	}
}

func TestDistinctEmailsDoNotCollide(t *testing.T) {
	w, _ := setupWindow(t)
	ctx := context.Background()

	if dup, _ := w.Claim(ctx, ApplicationKey("a@example.com"), ApplicationWindow); dup {
		t.Fatal("first email claim reported as duplicate")
	}
	if dup, _ := w.Claim(ctx, ApplicationKey("b@example.com"), ApplicationWindow); dup {
		t.Fatal("distinct email must not share a window key")
	}
}

func TestMessageKeyVariesWithBody(t *testing.T) {
	a := MessageKey("x@example.com", "first message body here")
	b := MessageKey("x@example.com", "second message body here")
	if a == b {
		t.Errorf("different bodies produced the same key %q", a)
	}
}
