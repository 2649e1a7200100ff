package persist

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"lab_asset_ledger/models"
)

const defaultDataFile = "./data/lab-assets.json"

// FileStore keeps the snapshot in a single JSON file, written atomically
// via a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a file store at path, creating the parent directory if
// needed. An empty path uses the default location.
func NewFile(path string) (*FileStore, error) {
	if path == "" {
		path = defaultDataFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Printf("snapshot file %s is corrupt, starting fresh: %v", f.path, err)
		return nil, nil
	}
	return &snap, nil
}

func (f *FileStore) Save(ctx context.Context, snap *models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Close() error { return nil }
