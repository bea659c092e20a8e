// Package guard is the ingestion-boundary safeguard: per-project rate
// limiting, payload validation and exchange deduplication in front of
// the segmentation and indexing pipeline.
package guard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/model/config"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"golang.org/x/time/rate"
)

// Sentinel errors of the ingestion boundary
var (
	ErrInvalidPayload = goerr.New("invalid capture payload")
	ErrRateLimited    = goerr.New("capture rate limit exceeded")
)

// Guard owns the per-project rate and dedup state explicitly, bounded
// by LRU eviction so state cannot grow without limit. It is safe under
// interleaved callers.
type Guard struct {
	cfg *config.GuardConfig

	mu       sync.Mutex
	limiters *lru.Cache[types.ProjectID, *rate.Limiter]
	windows  *lru.Cache[types.ProjectID, *lru.Cache[string, time.Time]]
	now      func() time.Time
}

// New creates a capture guard. A nil config falls back to the defaults.
func New(cfg *config.GuardConfig) (*Guard, error) {
	if cfg == nil {
		cfg = config.DefaultGuardConfig()
	}

	limiters, err := lru.New[types.ProjectID, *rate.Limiter](cfg.ProjectCapacity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create limiter cache")
	}
	windows, err := lru.New[types.ProjectID, *lru.Cache[string, time.Time]](cfg.ProjectCapacity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create dedup cache")
	}

	return &Guard{
		cfg:      cfg,
		limiters: limiters,
		windows:  windows,
		now:      time.Now,
	}, nil
}

// Admit validates the batch, applies the project's rate limit, and
// filters out exchanges already seen within the dedup window. It
// returns the fresh exchanges and whether anything was deduplicated.
// Resubmitting an already-admitted batch yields no fresh exchanges and
// deduplicated=true.
func (g *Guard) Admit(projectID types.ProjectID, exchanges []*model.Exchange) ([]*model.Exchange, bool, error) {
	if err := g.validate(exchanges); err != nil {
		return nil, false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.limiter(projectID).Allow() {
		return nil, false, goerr.Wrap(ErrRateLimited, "project capture throttled",
			goerr.V("project_id", projectID))
	}

	window := g.window(projectID)
	now := g.now()

	var fresh []*model.Exchange
	deduplicated := false
	for _, x := range exchanges {
		digest := exchangeDigest(x)
		if seenAt, ok := window.Get(digest); ok && now.Sub(seenAt) < g.cfg.DedupWindow {
			deduplicated = true
			continue
		}
		window.Add(digest, now)
		fresh = append(fresh, x)
	}

	return fresh, deduplicated, nil
}

// Reset drops all per-project state
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limiters.Purge()
	g.windows.Purge()
}

func (g *Guard) validate(exchanges []*model.Exchange) error {
	if len(exchanges) == 0 {
		return goerr.Wrap(ErrInvalidPayload, "exchange batch is empty")
	}
	if len(exchanges) > g.cfg.MaxBatchSize {
		return goerr.Wrap(ErrInvalidPayload, "exchange batch too large",
			goerr.V("size", len(exchanges)), goerr.V("max", g.cfg.MaxBatchSize))
	}

	for i, x := range exchanges {
		if err := x.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidPayload, "malformed exchange",
				goerr.V("index", i), goerr.V("cause", err.Error()))
		}
		if len(x.User)+len(x.Assistant) > g.cfg.MaxTextSize {
			return goerr.Wrap(ErrInvalidPayload, "exchange text too large",
				goerr.V("index", i), goerr.V("max", g.cfg.MaxTextSize))
		}
	}
	return nil
}

func (g *Guard) limiter(projectID types.ProjectID) *rate.Limiter {
	if l, ok := g.limiters.Get(projectID); ok {
		return l
	}
	l := rate.NewLimiter(rate.Limit(g.cfg.RatePerSecond), g.cfg.RateBurst)
	g.limiters.Add(projectID, l)
	return l
}

func (g *Guard) window(projectID types.ProjectID) *lru.Cache[string, time.Time] {
	if w, ok := g.windows.Get(projectID); ok {
		return w
	}
	// Capacity is validated at construction, so this cannot fail
	w, _ := lru.New[string, time.Time](g.cfg.DedupCapacity)
	g.windows.Add(projectID, w)
	return w
}

func exchangeDigest(x *model.Exchange) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00%s", x.Timestamp, x.User, x.Assistant)
	return hex.EncodeToString(h.Sum(nil))
}
