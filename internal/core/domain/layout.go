package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "yaac.yaml"

	// EnvFileName is the name of the optional dotenv file loaded next to the configuration.
	EnvFileName = ".env"

	// DefaultAssetsDirName is the conventional directory holding asset sources.
	DefaultAssetsDirName = "assets"

	// DefaultDestDirName is the conventional directory receiving compiled assets.
	DefaultDestDirName = "builtAssets"

	// DefaultURLPrefix is prepended to generated file names to form URLs.
	DefaultURLPrefix = "/static/"

	// DefaultModeEnv is the environment variable selecting the deployment mode.
	DefaultModeEnv = "YAAC_ENV"

	// DefaultDigest is the digest used to name compiled outputs.
	DefaultDigest = "md5"

	// ManifestFileName is the name of the manifest written into dest by a full build.
	ManifestFileName = "manifest.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultSearchPath returns the default search path rooted at dir.
func DefaultSearchPath(dir string) []string {
	return []string{filepath.Join(dir, DefaultAssetsDirName)}
}

// DefaultDestPath returns the default output directory rooted at dir.
func DefaultDestPath(dir string) string {
	return filepath.Join(dir, DefaultDestDirName)
}

// ManifestPath returns the manifest location inside dest.
func ManifestPath(dest string) string {
	return filepath.Join(dest, ManifestFileName)
}
