package preference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	dompref "github.com/boardka/boardka/internal/domain/preference"
)

// FileStore keeps preference weights in a JSON object on disk ({"tag": weight}).
// The file is created on first write. An unreadable or corrupt file reads as
// an empty profile.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed preference store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

// Increment adds one to the weight of every tag.
func (f *FileStore) Increment(_ context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	w := f.read()
	for _, tag := range tags {
		w[tag]++
	}
	return f.write(w)
}

// All returns every stored weight.
func (f *FileStore) All(_ context.Context) (dompref.Weights, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read(), nil
}

// Reset writes an empty profile.
func (f *FileStore) Reset(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(dompref.Weights{})
}

func (f *FileStore) read() dompref.Weights {
	out := dompref.Weights{}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return out
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return out
	}
	for tag, v := range raw {
		if n, ok := parseWeight(v); ok {
			out[tag] = n
		}
	}
	return out
}

// parseWeight accepts JSON numbers (fractions truncated) and numeric strings.
func parseWeight(v json.RawMessage) (int, bool) {
	var num float64
	if err := json.Unmarshal(v, &num); err == nil {
		if math.IsInf(num, 0) || math.IsNaN(num) {
			return 0, false
		}
		return int(num), true
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func (f *FileStore) write(w dompref.Weights) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(w); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preference dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

