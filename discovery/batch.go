package discovery

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"macremote/logging"
)

// DefaultBatchSize is the number of probes in flight at once
const DefaultBatchSize = 10

// Scheduler runs probes over a candidate list in consecutive fixed-size
// batches and stops at the first reachable candidate.
type Scheduler struct {
	batchSize int
	logger    *logging.Logger
}

// NewScheduler creates a scheduler. Non-positive sizes use DefaultBatchSize.
func NewScheduler(batchSize int, logger *logging.Logger) *Scheduler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Scheduler{
		batchSize: batchSize,
		logger:    logger,
	}
}

// BatchSize returns the configured batch size
func (s *Scheduler) BatchSize() int {
	return s.batchSize
}

// Run probes candidates batch by batch. Each batch is launched concurrently
// and fully settled before the next one starts. After a batch settles,
// onProgress is called with the share of candidates processed so far, and
// the outcomes are scanned in candidate order: the lowest-ordered reachable
// candidate is returned with ok == true.
//
// ctx is only observed between batches. Probes already in flight run to
// completion under their own timeouts; if ctx is done once they settle,
// their outcomes are discarded and ctx.Err() is returned.
func (s *Scheduler) Run(ctx context.Context, candidates []Candidate, probe ProbeFunc, onProgress ProgressFunc) (Candidate, bool, error) {
	total := len(candidates)
	probeCtx := context.WithoutCancel(ctx)

	for start, batchIndex := 0, 0; start < total; start, batchIndex = start+s.batchSize, batchIndex+1 {
		if err := ctx.Err(); err != nil {
			s.logger.Debug("Stopping before batch %d: %v", batchIndex, err)
			return Candidate{}, false, err
		}

		end := min(start+s.batchSize, total)
		batch := candidates[start:end]
		s.logger.Debug("Batch %d: probing %s .. %s", batchIndex, batch[0].Host, batch[len(batch)-1].Host)

		outcomes := s.runBatch(probeCtx, batch, probe)

		if err := ctx.Err(); err != nil {
			s.logger.Debug("Discarding batch %d results: %v", batchIndex, err)
			return Candidate{}, false, err
		}

		if onProgress != nil {
			onProgress(float64(end)*100/float64(total), batch[0].Host)
		}

		for i, outcome := range outcomes {
			if outcome == Reachable {
				return batch[i], true, nil
			}
		}
	}

	return Candidate{}, false, nil
}

// runBatch probes every candidate in batch concurrently and waits for all of
// them. Each probe gets its own cancel handle; once the winner of the batch
// is known (reachable, with every lower-ordered sibling settled), the
// higher-ordered siblings are cancelled since they can no longer win.
func (s *Scheduler) runBatch(ctx context.Context, batch []Candidate, probe ProbeFunc) []Outcome {
	outcomes := make([]Outcome, len(batch))
	settled := make([]bool, len(batch))
	contexts := make([]context.Context, len(batch))
	cancels := make([]context.CancelFunc, len(batch))
	for i := range batch {
		contexts[i], cancels[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for i, c := range batch {
		i, c := i, c
		g.Go(func() error {
			outcome := probe(contexts[i], c)

			mu.Lock()
			defer mu.Unlock()
			outcomes[i] = outcome
			settled[i] = true
			if w := batchWinner(outcomes, settled); w >= 0 {
				for j := w + 1; j < len(batch); j++ {
					if !settled[j] {
						cancels[j]()
					}
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// batchWinner returns the index of the lowest-ordered reachable outcome if
// every outcome before it has settled, or -1 if it is not yet decided.
func batchWinner(outcomes []Outcome, settled []bool) int {
	for i := range outcomes {
		if !settled[i] {
			return -1
		}
		if outcomes[i] == Reachable {
			return i
		}
	}
	return -1
}
