package password

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of argon2 computations running at once so a
// burst of auth traffic cannot starve I/O-bound request handling.
// Dispatch is fire-and-await: once a slot is acquired the computation
// runs to completion and the caller suspends until it finishes; there
// is no cancellation after dispatch.
type Pool struct {
	hasher *Argon2
	sem    *semaphore.Weighted
}

type hashResult struct {
	hash string
	err  error
}

type verifyResult struct {
	ok  bool
	err error
}

// NewPool wraps hasher with a concurrency bound. maxConcurrent <= 0
// defaults to GOMAXPROCS.
func NewPool(hasher *Argon2, maxConcurrent int64) (*Pool, error) {
	if hasher == nil {
		return nil, errors.New("password: hasher must not be nil")
	}
	if maxConcurrent <= 0 {
		maxConcurrent = int64(runtime.GOMAXPROCS(0))
	}
	return &Pool{
		hasher: hasher,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}, nil
}

// Hash computes an argon2id hash on a pool slot. The context bounds
// only the wait for a free slot.
func (p *Pool) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}

	ch := make(chan hashResult, 1)
	go func() {
		defer p.sem.Release(1)
		hash, err := p.hasher.Hash(password)
		ch <- hashResult{hash: hash, err: err}
	}()

	res := <-ch
	return res.hash, res.err
}

// Verify checks password against encodedHash on a pool slot. The
// context bounds only the wait for a free slot.
func (p *Pool) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}

	ch := make(chan verifyResult, 1)
	go func() {
		defer p.sem.Release(1)
		ok, err := p.hasher.Verify(password, encodedHash)
		ch <- verifyResult{ok: ok, err: err}
	}()

	res := <-ch
	return res.ok, res.err
}
