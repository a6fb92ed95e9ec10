package domain

import "maps"

// Dialect names understood by the built-in dialect factory.
const (
	DialectBundle   = "bundle"
	DialectLess     = "less"
	DialectStylus   = "stylus"
	DialectMarkdown = "markdown"
	DialectCopy     = "copy"
)

// Config is the resolved pipeline configuration.
// All paths are absolute once produced by a ConfigLoader.
type Config struct {
	// Root is the directory containing the configuration file, or the working directory.
	Root string
	// SearchPath lists asset roots in priority order; earlier roots shadow later ones.
	SearchPath []string
	// Dest is the output directory for compiled assets.
	Dest string
	// URLPrefix is prepended to compiled file names to form URLs.
	URLPrefix string
	// ModeEnv names the environment variable holding the deployment mode.
	ModeEnv string
	// Digest names the content digest used for output names.
	Digest string
	// Compilers maps a source extension (".less") to a dialect name ("less").
	Compilers map[string]string
	// Ignore holds file name patterns a full build skips, e.g. "_*" for partials.
	Ignore []string
}

// DefaultCompilers returns the built-in extension to dialect mapping.
func DefaultCompilers() map[string]string {
	return map[string]string{
		".js":   DialectBundle,
		".less": DialectLess,
		".styl": DialectStylus,
		".md":   DialectMarkdown,
	}
}

// DefaultConfig returns the configuration used when no config file exists under root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:       root,
		SearchPath: DefaultSearchPath(root),
		Dest:       DefaultDestPath(root),
		URLPrefix:  DefaultURLPrefix,
		ModeEnv:    DefaultModeEnv,
		Digest:     DefaultDigest,
		Compilers:  DefaultCompilers(),
	}
}

// MergeCompilers overlays overrides on the default mapping.
func MergeCompilers(overrides map[string]string) map[string]string {
	merged := DefaultCompilers()
	maps.Copy(merged, overrides)
	return merged
}
