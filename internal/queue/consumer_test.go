package queue

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	body := []byte(`{"review_id":4,"restaurant_id":2,"restaurant_name":"Pasta Place","user_name":"ann","rating":5,"review_date":"2026-10-17T12:00:00Z"}`)
	if err := writeEvent(&buf, body); err != nil {
		t.Fatalf("writeEvent: %v", err)
	}
	want := "[2026-10-17T12:00:00Z] Review added | review_id=4 | restaurant_id=2 | restaurant=\"Pasta Place\" | user=\"ann\" | rating=5\n"
	if buf.String() != want {
		t.Errorf("got %q\nwant %q", buf.String(), want)
	}
}

func TestWriteEventRejectsBadPayloads(t *testing.T) {
	for _, body := range []string{`not json`, `{"rating":5}`} {
		var buf bytes.Buffer
		if err := writeEvent(&buf, []byte(body)); err == nil {
			t.Errorf("expected error for %s", body)
		}
		if buf.Len() != 0 {
			t.Errorf("nothing should be written for %s", body)
		}
	}
}

func TestAppendEventCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reviews.log")
	body := []byte(`{"review_id":1,"restaurant_id":1,"rating":3}`)
	for i := 0; i < 2; i++ {
		if err := appendEvent(path, body); err != nil {
			t.Fatalf("appendEvent: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
}

func TestStartReviewConsumerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := StartReviewConsumer(ctx, "amqp://root:@127.0.0.1:1/", filepath.Join(t.TempDir(), "r.log"))
	if err == nil {
		t.Fatal("expected context error")
	}
}
