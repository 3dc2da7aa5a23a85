// Package cache provides content-addressed storage for rendered
// timeline artifacts.
//
// Rendering an SVG (or converting it to PNG/PDF) is deterministic in
// the dataset, the configuration, and the render options, so artifacts
// are stored under a key derived from hashing all three. An entry is
// immutable: a dataset edit, config change, or option change produces a
// new key rather than updating an old one. Superseded entries are never
// read again and linger until `cache clear`.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Cache is the storage interface for rendered artifacts.
type Cache interface {
	// Get retrieves an artifact. The second result reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores an artifact. Entries are immutable; putting the same
	// key twice writes identical content.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes an artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the render options that participate in an
// artifact's cache key.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	ViewportWidth float64 `json:"viewport_width"`
	ShowLegend    bool    `json:"show_legend"`
	ActiveIndex   int     `json:"active_index"`
}

// artifactKeyPayload fixes the field order hashed into a key.
type artifactKeyPayload struct {
	Dataset string          `json:"dataset"`
	Config  string          `json:"config"`
	Opts    ArtifactKeyOpts `json:"opts"`
}

// ArtifactKey builds the cache key for a rendered artifact.
// datasetHash and configHash are content hashes of the loaded dataset
// file and the effective configuration.
func ArtifactKey(datasetHash, configHash string, opts ArtifactKeyOpts) string {
	payload, _ := json.Marshal(artifactKeyPayload{
		Dataset: datasetHash,
		Config:  configHash,
		Opts:    opts,
	})
	sum := sha256.Sum256(payload)
	return "artifact:" + hex.EncodeToString(sum[:])
}

// Hash computes the SHA-256 content hash of data as a 64-character hex
// string, used for the dataset and config components of artifact keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
