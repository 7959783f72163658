package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Archiver appends world snapshots to a zstd-compressed JSONL file, one
// record per line. The file is readable with `zstd -dc | jq`.
type Archiver struct {
	mu   sync.Mutex
	file *os.File
	zw   *zstd.Encoder
	enc  *json.Encoder
}

// NewArchiver opens (or creates) the archive file for appending.
func NewArchiver(path string) (*Archiver, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Archiver{file: f, zw: zw, enc: json.NewEncoder(zw)}, nil
}

// WriteRecord appends one JSON line to the archive.
func (a *Archiver) WriteRecord(v any) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enc.Encode(v); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

// Close flushes the compressor and closes the file.
func (a *Archiver) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.zw.Close(); err != nil {
		a.file.Close()
		return fmt.Errorf("close zstd: %w", err)
	}
	return a.file.Close()
}
