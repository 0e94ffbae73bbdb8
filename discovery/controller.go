package discovery

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"macremote/logging"
	"macremote/settings"
)

// DefaultAuthToken is the control host's factory token, tried when no token
// is given or stored.
const DefaultAuthToken = "replace-this-token"

// Options configures a Controller
type Options struct {
	// BatchSize is the number of concurrent probes; DefaultBatchSize if zero.
	BatchSize int
	// Generate produces the candidate sequence; Generate if nil.
	Generate func() []Candidate
	// Settings supplies the stored token when Start is given none. Optional.
	Settings *settings.Settings
	// DetectNetwork reports the local network for diagnostics; DetectNetworkHint if nil.
	DetectNetwork func() (NetworkHint, error)
}

// searchState belongs to the goroutine running Start and lives for one search
type searchState struct {
	id         string
	total      int
	batchIndex int
	found      *Candidate
}

// Controller runs one discovery search at a time
type Controller struct {
	prober        Prober
	scheduler     *Scheduler
	generate      func() []Candidate
	settings      *settings.Settings
	detectNetwork func() (NetworkHint, error)
	logger        *logging.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewController creates an idle controller
func NewController(prober Prober, opts Options, logger *logging.Logger) *Controller {
	generate := opts.Generate
	if generate == nil {
		generate = Generate
	}
	detect := opts.DetectNetwork
	if detect == nil {
		detect = DetectNetworkHint
	}

	return &Controller{
		prober:        prober,
		scheduler:     NewScheduler(opts.BatchSize, logger),
		generate:      generate,
		settings:      opts.Settings,
		detectNetwork: detect,
		logger:        logger,
		state:         StateIdle,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start searches for the control host and blocks until the search ends.
// It returns ErrSearchRunning if another search is in progress. NotFound and
// Cancelled are results, not errors. Cancelling ctx has the same effect as
// Cancel.
func (c *Controller) Start(ctx context.Context, token string, onProgress ProgressFunc) (Result, error) {
	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		return Result{}, ErrSearchRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.state = StateRunning
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	candidates := c.generate()
	search := &searchState{
		id:    uuid.NewString(),
		total: len(candidates),
	}
	token = c.resolveToken(token)

	c.logger.Info("Discovery %s: searching %d candidates in batches of %d", search.id, search.total, c.scheduler.BatchSize())
	c.logNetworkHint(search.id)

	var probed atomic.Int64
	probe := func(pctx context.Context, cand Candidate) Outcome {
		probed.Add(1)
		return c.prober.Probe(pctx, cand, token)
	}
	progress := func(percent float64, host string) {
		search.batchIndex++
		if onProgress != nil {
			onProgress(percent, host)
		}
	}

	found, ok, err := c.scheduler.Run(runCtx, candidates, probe, progress)

	result := Result{
		SearchID: search.id,
		Probed:   int(probed.Load()),
	}
	final := StateNotFound
	switch {
	case err != nil:
		result.Status = StatusCancelled
		final = StateCancelled
		c.logger.Info("Discovery %s: cancelled after %d batches", search.id, search.batchIndex)
	case ok:
		search.found = &found
		result.Status = StatusFound
		result.Address = found.Address
		final = StateFound
		c.logger.Info("Discovery %s: found control host at %s", search.id, found.Address)
	default:
		result.Status = StatusNotFound
		c.logger.Info("Discovery %s: no control host found in %d candidates", search.id, search.total)
	}

	c.mu.Lock()
	c.state = final
	c.cancel = nil
	c.mu.Unlock()

	return result, nil
}

// Cancel asks the running search to stop at the next batch boundary. It is a
// no-op when no search is running.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.logger.Debug("Discovery cancel requested")
		c.cancel()
	}
}

func (c *Controller) resolveToken(token string) string {
	if token != "" {
		return token
	}
	if c.settings != nil {
		stored, err := c.settings.AuthToken()
		if err != nil {
			c.logger.Error("Failed to read stored auth token: %v", err)
		} else if stored != "" {
			return stored
		}
	}
	c.logger.Debug("No auth token configured, using the factory default")
	return DefaultAuthToken
}

func (c *Controller) logNetworkHint(searchID string) {
	hint, err := c.detectNetwork()
	if err != nil {
		c.logger.Debug("Discovery %s: default gateway unknown: %v", searchID, err)
		return
	}
	if hint.Prefix == "" {
		c.logger.Warn("Discovery %s: default gateway %s is outside the searched networks", searchID, hint.Gateway)
		return
	}
	c.logger.Debug("Discovery %s: default gateway %s is in %s.0/24", searchID, hint.Gateway, hint.Prefix)
}
