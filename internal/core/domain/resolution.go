package domain

// Operation is one observable step performed while resolving an asset.
type Operation string

const (
	// OpFindDeps records that the source was located and its dependencies scanned.
	OpFindDeps Operation = "findDeps"
	// OpCompare records that a cached entry was checked for staleness.
	OpCompare Operation = "compare"
	// OpCompile records that the source was compiled and written.
	OpCompile Operation = "compile"
)

// Outcome classifies how a resolution was answered.
type Outcome string

const (
	// OutcomeCached is the production fast path: the cached URL was returned without I/O.
	OutcomeCached Outcome = "cached"
	// OutcomeFresh means the cached entry was compared and found up to date.
	OutcomeFresh Outcome = "fresh"
	// OutcomeCompiled means the asset was compiled and a new entry stored.
	OutcomeCompiled Outcome = "compiled"
	// OutcomeError means the resolution failed.
	OutcomeError Outcome = "error"
)

// Resolution is the result of resolving one logical asset name.
type Resolution struct {
	Name       string
	URL        string
	Outcome    Outcome
	Operations []Operation
}
