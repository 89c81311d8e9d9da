// Package kvstore provides the persistent key-value storage the rest of the
// application is built on. It mirrors the contract of the browser's
// localStorage: synchronous string get/set/remove, durable across restarts.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Store is the key-value contract consumed by the repositories.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys returns all present keys in sorted order.
	Keys() []string
}

// FileStore persists the whole key space as a single JSON document on disk.
// Every mutation rewrites the file; there are no transactions across keys.
// A crash between two Set calls can leave related keys inconsistent, which
// is an accepted limitation of the storage model.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// Open loads the store at path. A missing file yields an empty store.
// A file that cannot be parsed as JSON also yields an empty store: the
// storage model recovers from corruption by resetting, never by failing.
func Open(path string) (*FileStore, error) {
	fs := &FileStore{path: path, data: make(map[string]string)}

	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("kvstore: read %s: %w", path, err)
	}
	if err := json.Unmarshal(buf, &fs.data); err != nil {
		// Corrupt document: start over with an empty key space.
		fs.data = make(map[string]string)
	}
	return fs, nil
}

// Get returns the value stored under key.
func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.data[key]
	return v, ok
}

// Set stores value under key and synchronously rewrites the backing file.
func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = value
	return fs.flush()
}

// Remove deletes key and synchronously rewrites the backing file.
func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

// Keys returns all present keys in sorted order.
func (fs *FileStore) Keys() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	keys := make([]string, 0, len(fs.data))
	for k := range fs.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flush writes the whole document back to disk. Callers must hold mu.
func (fs *FileStore) flush() error {
	buf, err := json.Marshal(fs.data)
	if err != nil {
		return fmt.Errorf("kvstore: marshal: %w", err)
	}
	if err := os.WriteFile(fs.path, buf, 0o600); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", fs.path, err)
	}
	return nil
}
