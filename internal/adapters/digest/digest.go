// Package digest provides the content addressers used to name compiled outputs.
package digest

import (
	"crypto/md5" //nolint:gosec // names outputs, not a security boundary
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

// Digest names.
const (
	NameMD5    = "md5"
	NameSHA256 = "sha256"
	NameXXHash = "xxhash"
)

var (
	_ ports.Digester = MD5{}
	_ ports.Digester = SHA256{}
	_ ports.Digester = XXHash{}
)

// New returns the digester registered under name.
func New(name string) (ports.Digester, error) {
	switch name {
	case NameMD5:
		return MD5{}, nil
	case NameSHA256:
		return SHA256{}, nil
	case NameXXHash:
		return XXHash{}, nil
	default:
		return nil, zerr.With(domain.ErrUnknownDigest, "digest", name)
	}
}

// MD5 digests to 128 bits, rendered as 32 hex characters.
type MD5 struct{}

// Name implements ports.Digester.
func (MD5) Name() string { return NameMD5 }

// Digest implements ports.Digester.
func (MD5) Digest(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// SHA256 digests to 256 bits, rendered as 64 hex characters.
type SHA256 struct{}

// Name implements ports.Digester.
func (SHA256) Name() string { return NameSHA256 }

// Digest implements ports.Digester.
func (SHA256) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// XXHash digests to 64 bits with xxHash64, rendered as 16 zero-padded hex characters.
type XXHash struct{}

// Name implements ports.Digester.
func (XXHash) Name() string { return NameXXHash }

// Digest implements ports.Digester.
func (XXHash) Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
