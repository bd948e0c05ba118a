package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-reviews/internal/config"
	"github.com/iliyamo/restaurant-reviews/internal/database"
)

type fakeProbe struct {
	name  string
	err   error
	delay time.Duration
	panic bool
}

func (f fakeProbe) Name() string { return f.name }

func (f fakeProbe) Check(ctx context.Context) error {
	if f.panic {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

// stubbornProbe ignores its context entirely.
type stubbornProbe struct{ block chan struct{} }

func (stubbornProbe) Name() string { return "stubborn" }

func (s stubbornProbe) Check(context.Context) error {
	<-s.block
	return nil
}

func TestRunnerSequential(t *testing.T) {
	r := NewRunner(time.Second,
		fakeProbe{name: "a"},
		fakeProbe{name: "b", err: errors.New("down")},
		fakeProbe{name: "c"},
	)
	got := r.Run(context.Background())

	want := []Result{
		{Resource: "a", Status: StatusUp},
		{Resource: "b", Status: StatusDown, Reason: ReasonError},
		{Resource: "c", Status: StatusUp},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRunnerParallelKeepsOrder(t *testing.T) {
	r := &Runner{
		Parallel: true,
		Timeout:  time.Second,
		Probes: []Probe{
			fakeProbe{name: "slow", delay: 50 * time.Millisecond},
			fakeProbe{name: "fast"},
			fakeProbe{name: "broken", err: errors.New("x")},
		},
	}
	got := r.Run(context.Background())
	names := []string{"slow", "fast", "broken"}
	for i, n := range names {
		if got[i].Resource != n {
			t.Errorf("result %d is %q, want %q", i, got[i].Resource, n)
		}
	}
	if !got[0].Up() || !got[1].Up() || got[2].Up() {
		t.Errorf("unexpected statuses: %+v", got)
	}
}

func TestRunnerTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	r := NewRunner(50*time.Millisecond,
		fakeProbe{name: "sleepy", delay: time.Minute},
		stubbornProbe{block: block},
	)
	start := time.Now()
	got := r.Run(context.Background())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("runner took %s, timeout not enforced", elapsed)
	}
	for _, res := range got {
		if res.Status != StatusDown || res.Reason != ReasonTimeout {
			t.Errorf("%s: got %+v, want down/timeout", res.Resource, res)
		}
	}
}

func TestRunnerRecoversPanics(t *testing.T) {
	r := NewRunner(time.Second, fakeProbe{name: "p", panic: true}, fakeProbe{name: "ok"})
	got := r.Run(context.Background())
	if got[0].Status != StatusDown || got[0].Reason != ReasonError {
		t.Errorf("panicking probe: %+v", got[0])
	}
	if !got[1].Up() {
		t.Errorf("healthy probe after panic: %+v", got[1])
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"auth", fmt.Errorf("%w: bad password", ErrAuth), ReasonAuth},
		{"config", fmt.Errorf("%w: empty", ErrMisconfigured), ReasonConfig},
		{"deadline", fmt.Errorf("dial: %w", context.DeadlineExceeded), ReasonTimeout},
		{"net timeout", &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}, ReasonTimeout},
		{"dns", &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "nope"}}, ReasonDNS},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, ReasonRefused},
		{"other", errors.New("weird"), ReasonError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func unreachableConfig() config.ProbeConfig {
	return config.ProbeConfig{
		Redis:    config.RedisProbeConfig{Host: "127.0.0.1", Port: "1"},
		MySQL:    config.MySQLProbeConfig{Host: "127.0.0.1", Port: "1", Username: "root"},
		Mongo:    config.MongoProbeConfig{URL: ""},
		RabbitMQ: config.RabbitMQProbeConfig{Host: "127.0.0.1", Port: "1", Username: "root"},
		S3: config.S3ProbeConfig{
			Endpoint:        "http://127.0.0.1:1",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Region:          "us-east-1",
			Bucket:          "reviews",
		},
	}
}

func TestDefaultProbesAllUnreachable(t *testing.T) {
	r := &Runner{Probes: DefaultProbes(nil, unreachableConfig()), Timeout: 2 * time.Second, Parallel: true}
	got := r.Run(context.Background())

	names := []string{ResourceDatabase, ResourceRedis, ResourceMySQL, ResourceMongo, ResourceRabbitMQ, ResourceMinIO}
	if len(got) != len(names) {
		t.Fatalf("got %d results, want %d", len(got), len(names))
	}
	for i, n := range names {
		if got[i].Resource != n {
			t.Errorf("result %d is %q, want %q", i, got[i].Resource, n)
		}
		if got[i].Status != StatusDown {
			t.Errorf("%s: status %d, want 0", n, got[i].Status)
		}
	}
	if got[0].Reason != ReasonConfig || got[3].Reason != ReasonConfig {
		t.Errorf("missing settings should classify as config: %+v", got)
	}
}

func TestDatabaseProbeUp(t *testing.T) {
	db, err := database.Open("file::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close(db)

	if err := (DatabaseProbe{DB: db}).Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}
