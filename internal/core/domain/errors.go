package domain

import "go.trai.ch/zerr"

var (
	// ErrAssetNotFound is returned when no search path root contains the named asset.
	ErrAssetNotFound = zerr.New("asset not found")

	// ErrInvalidAssetName is returned when an asset name is empty, absolute or escapes the search roots.
	ErrInvalidAssetName = zerr.New("invalid asset name")

	// ErrScanFailed is returned when dependency discovery for an asset fails.
	ErrScanFailed = zerr.New("failed to scan asset dependencies")

	// ErrSourceReadFailed is returned when a source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrCompileFailed is returned when a dialect compiler reports an error.
	ErrCompileFailed = zerr.New("failed to compile asset")

	// ErrMinifyFailed is returned when a production build cannot minify compiled output.
	ErrMinifyFailed = zerr.New("failed to minify compiled asset")

	// ErrRequireNotFound is returned when a bundle require directive points at a missing file.
	ErrRequireNotFound = zerr.New("required file not found")

	// ErrImportNotFound is returned when a stylesheet compiler cannot find an imported file.
	ErrImportNotFound = zerr.New("imported file not found")

	// ErrCycleDetected is returned when bundle requires or stylesheet imports form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnbalancedBlock is returned when a stylesheet has mismatched braces.
	ErrUnbalancedBlock = zerr.New("unbalanced block")

	// ErrUndefinedVariable is returned when a stylesheet references a variable that is never defined.
	ErrUndefinedVariable = zerr.New("undefined variable")

	// ErrUnsupportedSyntax is returned when a stylesheet statement is not understood by the built-in compilers.
	ErrUnsupportedSyntax = zerr.New("unsupported stylesheet syntax")

	// ErrCallbackNotInvoked is returned when a callback-style compiler returns without reporting a result.
	ErrCallbackNotInvoked = zerr.New("compiler returned without invoking its callback")

	// ErrOutputDirCreateFailed is returned when the output directory cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrOutputWriteFailed is returned when a compiled asset cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write compiled asset")

	// ErrManifestWriteFailed is returned when the asset manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write asset manifest")

	// ErrCleanFailed is returned when the output directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove output directory")

	// ErrUnknownDialect is returned when the configuration names a dialect that does not exist.
	ErrUnknownDialect = zerr.New("unknown dialect")

	// ErrUnknownDigest is returned when the configuration names a digest that does not exist.
	ErrUnknownDigest = zerr.New("unknown digest, expected 'md5', 'sha256' or 'xxhash'")

	// ErrInvalidExtension is returned when a compiler mapping key is not a file extension.
	ErrInvalidExtension = zerr.New("invalid extension, expected a leading dot")

	// ErrInvalidURLPrefix is returned when the configured URL prefix is empty.
	ErrInvalidURLPrefix = zerr.New("url prefix must not be empty")

	// ErrEmptySearchPath is returned when the configuration has no search path roots.
	ErrEmptySearchPath = zerr.New("search path must contain at least one directory")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileLoadFailed is returned when a .env file exists but cannot be loaded.
	ErrEnvFileLoadFailed = zerr.New("failed to load env file")

	// ErrInvalidLogFormat is returned when the log format flag is not recognised.
	ErrInvalidLogFormat = zerr.New("invalid log format, expected 'auto', 'pretty' or 'json'")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")

	// ErrServerFailed is returned when the HTTP server stops with an error.
	ErrServerFailed = zerr.New("asset server failed")

	// ErrBuildFailed is returned when one or more assets fail during a build.
	ErrBuildFailed = zerr.New("asset build failed")
)
