package config

// Yaacfile represents the structure of the yaac.yaml configuration file.
type Yaacfile struct {
	Version    string   `yaml:"version"`
	SearchPath []string `yaml:"searchPath"`
	Dest       string   `yaml:"dest"`
	// URLPrefix is a pointer so an explicit empty prefix can be rejected.
	URLPrefix *string           `yaml:"urlPrefix"`
	ModeEnv   string            `yaml:"modeEnv"`
	Digest    string            `yaml:"digest"`
	Compilers map[string]string `yaml:"compilers"`
	Ignore    []string          `yaml:"ignore"`
}
