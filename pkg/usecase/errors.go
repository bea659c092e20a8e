package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/service/guard"
)

// Sentinel errors surfaced at the use case boundary. Payload and rate
// errors originate in the capture guard and are re-exported so callers
// depend on a single error taxonomy.
var (
	ErrInvalidPayload = guard.ErrInvalidPayload
	ErrRateLimited    = guard.ErrRateLimited
	ErrMissingQuery   = goerr.New("search query is required")
)
