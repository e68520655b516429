package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no artifact exists at a key.
var ErrNotFound = errors.New("artifact not found")

// Metadata describes an archived artifact
type Metadata struct {
	ContentType string            `json:"contentType,omitempty"`
	Format      string            `json:"format,omitempty"`
	Title       string            `json:"title,omitempty"`
	StartCity   string            `json:"startCity,omitempty"`
	EndCity     string            `json:"endCity,omitempty"`
	Days        int               `json:"days,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
}

// FileInfo contains information about a stored artifact
type FileInfo struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	Checksum   string    `json:"checksum"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Storage is a key/value store for exported trip artifacts.
type Storage interface {
	// Put stores content at the given key with optional metadata
	Put(ctx context.Context, key string, content []byte, metadata *Metadata) error

	// Get retrieves content from the given key
	Get(ctx context.Context, key string) ([]byte, error)

	// GetInfo retrieves artifact information without content
	GetInfo(ctx context.Context, key string) (*FileInfo, error)

	// Exists checks if an artifact exists at the given key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an artifact and its metadata
	Delete(ctx context.Context, key string) error

	// List returns all keys under the given prefix, sorted
	List(ctx context.Context, prefix string) ([]string, error)
}
