package ports

// Digester computes the content address used in compiled file names.
type Digester interface {
	// Name returns the digest identifier, e.g. "md5".
	Name() string
	// Digest returns the lowercase hexadecimal digest of data.
	Digest(data []byte) string
}
