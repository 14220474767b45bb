// Package backup copies prompt libraries to object storage.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/exchange"
	"github.com/Paintersrp/promptorg/internal/store"
)

// ObjectStore is where backups are written. S3 implements it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

// Backup writes timestamped JSON snapshots under a key prefix.
type Backup struct {
	dst    ObjectStore
	prefix string
	now    func() time.Time
	log    *zap.Logger
}

func New(dst ObjectStore, prefix string, log *zap.Logger) *Backup {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backup{
		dst:    dst,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
		log:    log.Named("backup"),
	}
}

// Key returns the object key for a backup taken at t.
func Key(prefix string, t time.Time) string {
	name := "promptorg-" + t.UTC().Format("20060102-150405") + ".json"
	if prefix = strings.Trim(prefix, "/"); prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// Run uploads snap and returns the object key.
func (b *Backup) Run(ctx context.Context, snap store.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := exchange.Export(&buf, snap, exchange.FormatJSON, exchange.Options{}); err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	key := Key(b.prefix, b.now())
	location, err := b.dst.Upload(ctx, key, &buf)
	if err != nil {
		return "", err
	}

	b.log.Info("backup uploaded",
		zap.String("key", key),
		zap.String("location", location),
		zap.Int("prompts", len(snap.Prompts)),
	)
	return key, nil
}

// Restore downloads the backup stored under key.
func (b *Backup) Restore(ctx context.Context, key string) (store.Snapshot, error) {
	data, err := b.dst.Download(ctx, key)
	if err != nil {
		return store.Snapshot{}, err
	}
	snap, err := exchange.Decode(bytes.NewReader(data), exchange.FormatJSON)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read backup %s: %w", key, err)
	}
	return snap, nil
}
