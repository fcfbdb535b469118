// SPDX-License-Identifier: MIT
package lex

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hecatecr/hecate-lex/sourcemap"
)

// Job describes one source to scan as part of a ScannerPool batch.
type Job[K comparable] struct {
	SourceID SourceID
	RuleSet  *RuleSet[K]
}

// Result is one job's outcome, positionally matched to the Jobs slice passed
// to ScannerPool.ScanBatch.
type Result[K comparable] struct {
	Tokens      []Token[K]
	Diagnostics []Diagnostic
	Err         error
}

// ScannerPool fans a batch of independent ScanAll calls out across a bounded
// worker pool.
//
// This is the concrete realization of base spec §5's claim that a RuleSet is
// "safe to share across threads for concurrent scan calls" — each Job may
// reference its own RuleSet (or share one across jobs; RuleSet is read-only
// once built). A RuleSet built for one Job must not still be receiving
// AddRule/RegisterErrorHandler calls from elsewhere while ScanBatch runs.
type ScannerPool[K comparable] struct {
	cfg *Config
	cap int
}

// NewScannerPool constructs a ScannerPool with the given worker cap. A
// non-positive cap is replaced with ants.DefaultAntsPoolSize.
func NewScannerPool[K comparable](cfg *Config, workerCap int) *ScannerPool[K] {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	if workerCap <= 0 {
		workerCap = ants.DefaultAntsPoolSize
	}

	return &ScannerPool[K]{cfg: cfg, cap: workerCap}
}

// ScanBatch scans every job concurrently, bounded by the pool's worker cap,
// and returns one Result per job in the same order. It blocks until every
// job has finished: a job that starts after ctx is cancelled records
// ctx.Err() instead of scanning, while a scan already running completes.
//
// Coordination (a completion counter plus per-job error capture) is the
// teacher's types.SafeCounter / types.MonitorChannels fan-in idiom, adapted
// to drive ants workers instead of unbounded goroutines.
func (p *ScannerPool[K]) ScanBatch(ctx context.Context, jobs []Job[K], sm sourcemap.SourceMap) ([]Result[K], error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	results := make([]Result[K], len(jobs))

	pool, err := ants.NewPool(p.cap)
	if err != nil {
		return nil, fmt.Errorf("lex: create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	wg.Add(len(jobs))

	for i, job := range jobs {
		i, job := i, job

		submitErr := pool.Submit(func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[i] = Result[K]{Err: ctx.Err()}
				return
			default:
			}

			scanner := NewScanner[K](p.cfg)
			tokens, diags, scanErr := scanner.ScanAll(job.RuleSet, job.SourceID, sm)
			results[i] = Result[K]{Tokens: tokens, Diagnostics: diags, Err: scanErr}
		})
		if submitErr != nil {
			wg.Done()
			results[i] = Result[K]{Err: fmt.Errorf("lex: submit scan job: %w", submitErr)}
		}
	}

	wg.Wait()

	p.cfg.Logger.Debugf("scan batch complete: %d jobs", len(jobs))

	return results, nil
}
