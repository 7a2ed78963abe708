// Package primesearch runs several prime generations in parallel and
// reports their progress.
package primesearch

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"bignum/internal/bignum"
	"bignum/internal/rng"
	"bignum/internal/trace"
)

// reportEvery is how many candidates pass between StatusSearching events.
const reportEvery = 32

// Status is the state of one job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusSearching Status = "searching"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

// Event reports progress of job Job. Prime is set only with StatusDone.
type Event struct {
	Job      int
	Status   Status
	Attempts int
	Prime    bignum.BigInt
	Err      error
	Elapsed  time.Duration
}

// Sink consumes progress events. OnEvent may be called from several
// goroutines at once.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to Ch, blocking when it is full.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) { s.Ch <- ev }

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// Request describes a batch of Count primes of the same shape.
type Request struct {
	Bits        int
	Safe        bool
	Add         bignum.BigInt
	Rem         bignum.BigInt
	Rounds      int
	MaxAttempts int

	Count int
	// Jobs caps the number of concurrent searches; <= 0 means GOMAXPROCS.
	Jobs int
	// Rand defaults to the system CSPRNG. It is shared between jobs behind
	// a mutex.
	Rand io.Reader
	Sink Sink
}

// Result is one generated prime.
type Result struct {
	Job      int
	Prime    bignum.BigInt
	Attempts int
	Elapsed  time.Duration
}

// Run generates req.Count primes and returns them in job order. The first
// failing job cancels the rest and its error is returned.
func Run(ctx context.Context, req Request) ([]Result, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", bignum.ErrInvalidArgument, req.Count)
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, req.Count)
	src := req.Rand
	if src == nil {
		src = rng.Reader
	}
	src = rng.Locked(src)
	emit := func(Event) {}
	if req.Sink != nil {
		emit = req.Sink.OnEvent
	}

	ctx, batch := trace.Start(ctx, trace.ScopeBatch, "prime search")
	batch.WithExtra("bits", strconv.Itoa(req.Bits)).
		WithExtra("count", strconv.Itoa(req.Count)).
		WithExtra("jobs", strconv.Itoa(jobs))

	for i := range req.Count {
		emit(Event{Job: i, Status: StatusQueued})
	}

	results := make([]Result, req.Count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range req.Count {
		g.Go(func() error {
			res, err := runJob(gctx, req, i, src, emit)
			if err != nil {
				emit(Event{Job: i, Status: StatusError, Attempts: res.Attempts, Err: err, Elapsed: res.Elapsed})
				return err
			}
			results[i] = res
			emit(Event{Job: i, Status: StatusDone, Attempts: res.Attempts, Prime: res.Prime, Elapsed: res.Elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		batch.End("failed")
		return nil, err
	}
	batch.End("")
	return results, nil
}

func runJob(ctx context.Context, req Request, job int, src io.Reader, emit func(Event)) (Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeJob, "job:"+strconv.Itoa(job), trace.ParentSpan(ctx))
	started := time.Now()
	res := Result{Job: job}

	opts := bignum.PrimeOptions{
		Bits:        req.Bits,
		Safe:        req.Safe,
		Add:         req.Add,
		Rem:         req.Rem,
		Rounds:      req.Rounds,
		MaxAttempts: req.MaxAttempts,
		Progress: func(attempt int) error {
			res.Attempts = attempt
			if err := ctx.Err(); err != nil {
				return err
			}
			trace.Point(tracer, trace.ScopeCandidate, "candidate", span.ID(), strconv.Itoa(attempt))
			if attempt == 1 || attempt%reportEvery == 0 {
				emit(Event{Job: job, Status: StatusSearching, Attempts: attempt, Elapsed: time.Since(started)})
			}
			return nil
		},
	}
	p, err := bignum.GeneratePrimeWith(src, opts)
	res.Elapsed = time.Since(started)
	span.WithExtra("attempts", strconv.Itoa(res.Attempts))
	if err != nil {
		span.End("error")
		return res, fmt.Errorf("job %d: %w", job, err)
	}
	span.End("found")
	res.Prime = p
	return res, nil
}
