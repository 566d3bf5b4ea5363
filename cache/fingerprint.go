package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Configuration is the cache key described in spec.md §3
// "BuildConfiguration": the ordered root list plus the two build
// flags that change what gets extracted.
type Configuration struct {
	Roots                      []string
	IncludeExternalPackages    bool
	ExcludeTypeCheckingImports bool
}

// Fingerprint hashes the configuration into the filename used for its
// cache file. Root order is significant (it is part of the
// configuration's identity per spec.md §3), so it is not sorted.
func (c Configuration) Fingerprint() string {
	var sb strings.Builder
	for _, r := range c.Roots {
		sb.WriteString(r)
		sb.WriteByte(0)
	}
	fmt.Fprintf(&sb, "ext=%t;tc=%t", c.IncludeExternalPackages, c.ExcludeTypeCheckingImports)
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])[:32]
}
