package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Exchange is a single user/assistant turn produced by the external
// conversation source. Exchanges are immutable once created.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// Time returns the exchange timestamp as a time.Time
func (x *Exchange) Time() time.Time {
	return time.UnixMilli(x.Timestamp).UTC()
}

// Validate checks that the exchange carries the required fields
func (x *Exchange) Validate() error {
	if x == nil {
		return goerr.New("exchange is nil")
	}
	if x.User == "" {
		return goerr.New("exchange user text is required")
	}
	if x.Timestamp <= 0 {
		return goerr.New("exchange timestamp is required", goerr.V("timestamp", x.Timestamp))
	}
	return nil
}
