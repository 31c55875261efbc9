package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the local ledger of completed downloads.

// Store tracks downloads that already landed on disk.
type Store interface {
	Close() error
	SeenDownload(key string) (Record, bool, error)
	MarkDownload(key, path string) error
}

// Record is one ledger entry.
type Record struct {
	Path      string
	ExpiresAt time.Time
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	RecordTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultRecordTTL       = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// DownloadKey identifies one purchased rendition.
func DownloadKey(assetType, assetID, sizeCode string) string {
	return strings.Join([]string{assetType, assetID, sizeCode}, ":")
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return Disabled(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.RecordTTL <= 0 {
		opts.RecordTTL = defaultRecordTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// Disabled returns a Store that remembers nothing.
func Disabled() Store { return noopStore{} }

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) SeenDownload(string) (Record, bool, error) { return Record{}, false, nil }
func (noopStore) MarkDownload(string, string) error         { return nil }
