package alerter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type recordingSender struct {
	messages []string
	err      error
}

func (s *recordingSender) SendAlert(_ context.Context, message string) error {
	s.messages = append(s.messages, message)
	return s.err
}

func TestSendAlertPrefixesAppName(t *testing.T) {
	sender := &recordingSender{}
	svc := New(sender, "astro_insights", slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := svc.SendAlert(context.Background(), "job failed"); err != nil {
		t.Fatal(err)
	}
	if len(sender.messages) != 1 || sender.messages[0] != "[astro_insights] job failed" {
		t.Errorf("messages = %v", sender.messages)
	}
}

func TestSendAlertWithoutSender(t *testing.T) {
	svc := New(nil, "astro_insights", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := svc.SendAlert(context.Background(), "x"); err != nil {
		t.Fatalf("disabled alerter must not fail: %v", err)
	}
}

func TestSendAlertWrapsError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&recordingSender{err: boom}, "app", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := svc.SendAlert(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
