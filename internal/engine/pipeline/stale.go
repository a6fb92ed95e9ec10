package pipeline

import "go.trai.ch/yaac/internal/core/domain"

// IsStale reports whether a cached dependency set no longer matches a fresh
// scan. Only the latest modification time of each set is compared, so any
// change to that maximum counts, including one moving backwards. A file added
// to or removed from the set with an older timestamp than the maximum goes
// unnoticed.
func IsStale(cached, fresh []domain.Dependency) bool {
	return !domain.LatestModification(cached).Equal(domain.LatestModification(fresh))
}
