package backup

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Paintersrp/promptorg/internal/store"
)

type memoryStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryStore) Upload(_ context.Context, key string, body io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "mem://" + key, nil
}

func (m *memoryStore) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return data, nil
}

func TestKey(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 30, 5, 0, time.UTC)

	if got := Key("/backups/", at); got != "backups/promptorg-20240601-093005.json" {
		t.Errorf("Key() = %q", got)
	}
	if got := Key("", at); got != "promptorg-20240601-093005.json" {
		t.Errorf("Key() without prefix = %q", got)
	}
}

func TestRunAndRestore(t *testing.T) {
	mem := &memoryStore{objects: make(map[string][]byte)}
	b := New(mem, "nightly", nil)
	b.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	snap := store.Snapshot{
		Prompts: []store.Prompt{{ID: 1, Title: "Plan", Content: "Plan the week", CreatedAt: "2024-01-01 00:00:00"}},
	}

	key, err := b.Run(context.Background(), snap)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if key != "nightly/promptorg-20240102-030405.json" {
		t.Fatalf("Run() key = %q", key)
	}

	restored, err := b.Restore(context.Background(), key)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(restored.Prompts) != 1 || restored.Prompts[0].Content != "Plan the week" {
		t.Fatalf("unexpected restored snapshot %+v", restored)
	}
}

func TestRunUploadError(t *testing.T) {
	boom := errors.New("access denied")
	b := New(&memoryStore{err: boom}, "", nil)

	if _, err := b.Run(context.Background(), store.Snapshot{}); !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatal("expected error without a bucket")
	}
}
