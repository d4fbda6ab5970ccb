package analyser

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// ============================================================================
// Analyser - shared handle lifecycle and query surface
// ============================================================================
//
// One Analyser is shared by every worker in the processing loop. The
// underlying detector/recognizer pair is constructed lazily on first use and
// reused for the process lifetime; Reset throws it away so the next caller
// rebuilds it. Nothing holds the handle lock during inference.
//
// ============================================================================

// Analyser owns the lazily constructed capability handle, the per-frame
// result cache and the query operations built on top of them.
type Analyser struct {
	cfg     Config
	factory HandleFactory
	aligner Aligner
	cache   Cache
	gate    *semaphore.Weighted

	mu     sync.Mutex
	handle *Handle
}

// New creates an Analyser. The factory is invoked lazily on first Acquire,
// not here, so construction cost (model loading) is deferred until a frame
// actually needs analysing.
func New(cfg Config, factory HandleFactory, aligner Aligner, cache Cache) (*Analyser, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("handle factory is required")
	}
	if aligner == nil {
		return nil, fmt.Errorf("aligner is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("frame cache is required")
	}
	return &Analyser{
		cfg:     cfg,
		factory: factory,
		aligner: aligner,
		cache:   cache,
		gate:    semaphore.NewWeighted(cfg.DetectorConcurrency),
	}, nil
}

// Acquire returns the shared handle, constructing it exactly once across all
// concurrent callers. A construction failure publishes nothing; the next
// call retries.
func (a *Analyser) Acquire() (*Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.handle != nil {
		return a.handle, nil
	}

	handle, err := a.factory()
	if err != nil {
		return nil, &InitializationError{Err: err}
	}
	if handle == nil || handle.Detector == nil || handle.Recognizer == nil {
		return nil, &InitializationError{Err: fmt.Errorf("factory returned incomplete handle")}
	}

	log.Info("Face analyser handle constructed")
	a.handle = handle
	return a.handle, nil
}

// Reset clears the shared handle. Callers holding a reference from a prior
// Acquire may finish using it; the next Acquire reconstructs from scratch.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handle = nil
	log.Debug("Face analyser handle cleared")
}
