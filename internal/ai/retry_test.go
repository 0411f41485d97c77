package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
)

func TestRetryRecoversFromTransientFailures(t *testing.T) {
	calls := 0
	out, err := Retry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &openai.Error{StatusCode: http.StatusTooManyRequests}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("got %q, want ok", out)
	}
	if calls != 3 {
		t.Fatalf("got %d calls, want 3", calls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		return "", &openai.Error{StatusCode: http.StatusServiceUnavailable}
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Fatalf("got %d calls, want 3", calls)
	}
}

func TestRetryStopsOnNonTransientError(t *testing.T) {
	calls := 0
	wantErr := errors.New("bad request")
	_, err := Retry(context.Background(), 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		return 0, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
}

func TestTransientClassification(t *testing.T) {
	if Transient(errors.New("plain")) {
		t.Fatal("plain error must not be transient")
	}
	if Transient(&openai.Error{StatusCode: http.StatusBadRequest}) {
		t.Fatal("400 must not be transient")
	}
	for _, code := range []int{
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
	} {
		if !Transient(&openai.Error{StatusCode: code}) {
			t.Fatalf("status %d must be transient", code)
		}
	}
}
