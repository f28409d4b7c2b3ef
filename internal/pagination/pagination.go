// Package pagination bounds list queries. The log feed is a window over the
// most recent entries rather than a paged history, so only a limit is exposed.
package pagination

import "gorm.io/gorm"

const (
	// DefaultLimit is the number of entries returned when no limit is requested.
	DefaultLimit = 50
	// MaxLimit is the largest window a caller may request.
	MaxLimit = 50
)

// LimitRequest holds the window size parsed from query strings.
type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Defaults fills in the default window and clamps oversized requests.
func (r *LimitRequest) Defaults() {
	r.Limit = Clamp(r.Limit)
}

// Clamp returns n bounded to [1, MaxLimit], using DefaultLimit for zero or
// negative values.
func Clamp(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Window returns a GORM scope that applies LIMIT for the given window size.
func Window(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(Clamp(limit))
	}
}
