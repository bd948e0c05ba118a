// Package health checks connectivity to the service's backing resources.
// Each resource kind implements Probe; a Runner executes a fixed list of
// probes and reports one Result per probe, in order.  Probe failures are
// data, never errors returned to the caller.
package health

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Resource names reported by /ping, in report order.
const (
	ResourceDatabase = "Postgres/Embedded DB"
	ResourceRedis    = "Redis"
	ResourceMySQL    = "Mysql"
	ResourceMongo    = "Mongo"
	ResourceRabbitMQ = "RabbitMQ"
	ResourceMinIO    = "MinIO"
)

// Status values of a Result.
const (
	StatusDown = 0
	StatusUp   = 1
)

// Probe is a lightweight liveness check against one external resource.
// Check returns nil when the resource is reachable and usable.
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// Result is the outcome of one probe.  Reason is a coarse failure class
// (see Classify) and is empty for reachable resources.
type Result struct {
	Resource string `json:"Resource"`
	Status   int    `json:"Status"`
	Reason   string `json:"Reason,omitempty"`
}

// Up reports whether the resource was reachable.
func (r Result) Up() bool { return r.Status == StatusUp }

// Runner executes probes and assembles the status report.
type Runner struct {
	Probes   []Probe
	Timeout  time.Duration // per probe; zero means no deadline beyond ctx
	Parallel bool          // run probes concurrently; order of results is unchanged
}

// NewRunner constructs a sequential Runner with the given per-probe timeout.
func NewRunner(timeout time.Duration, probes ...Probe) *Runner {
	return &Runner{Probes: probes, Timeout: timeout}
}

// Run executes every probe and returns one Result per probe in the order
// the probes were registered.  It never fails: errors, panics and timeouts
// all map to StatusDown.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, len(r.Probes))
	if !r.Parallel {
		for i, p := range r.Probes {
			results[i] = r.check(ctx, p)
		}
		return results
	}
	var wg sync.WaitGroup
	for i, p := range r.Probes {
		wg.Add(1)
		go func(i int, p Probe) {
			defer wg.Done()
			results[i] = r.check(ctx, p)
		}(i, p)
	}
	wg.Wait()
	return results
}

func (r *Runner) check(ctx context.Context, p Probe) Result {
	res := Result{Resource: p.Name()}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	// The probe runs in its own goroutine so a client that ignores ctx
	// cannot hold the report past the deadline.
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("%w: %v", errProbePanic, rec)
			}
		}()
		done <- p.Check(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		res.Status = StatusDown
		res.Reason = Classify(err)
		log.Printf("health: %s unreachable (%s): %v", res.Resource, res.Reason, err)
		return res
	}
	res.Status = StatusUp
	return res
}

var errProbePanic = errors.New("probe panicked")
