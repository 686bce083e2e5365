package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// Bucket names
var (
	bucketPages = []byte("pages")
)

// pageEntry wraps a page with its fetch time for TTL checks
type pageEntry struct {
	StoredAt time.Time   `json:"stored_at"`
	Page     domain.Page `json:"page"`
}

// PageStore implements domain.PageCache using BoltDB.
// The database lives in a private temporary directory that is removed on
// Close, so nothing survives the session.
type PageStore struct {
	db  *bolt.DB
	dir string
	ttl time.Duration
	now func() time.Time

	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewMemoryStore returns a store without a backing database
func NewMemoryStore(ttl time.Duration) *PageStore {
	return &PageStore{ttl: ttl, now: time.Now, cache: make(map[string][]byte)}
}

// NewPageStore opens a session database under a fresh directory inside
// baseDir (os.TempDir() when empty)
func NewPageStore(baseDir string, ttl time.Duration) (*PageStore, error) {
	dir, err := os.MkdirTemp(baseDir, "pixgrid-session-")
	if err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	dbPath := filepath.Join(dir, "pages.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		os.RemoveAll(dir)
		return nil, err
	}

	return &PageStore{
		db:    db,
		dir:   dir,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string][]byte),
	}, nil
}

// Dir returns the session directory ("" in memory-only mode)
func (s *PageStore) Dir() string { return s.dir }

// Close closes the database and deletes the session directory
func (s *PageStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if rmErr := os.RemoveAll(s.dir); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

// === Generic helpers ===

func (s *PageStore) get(bucket []byte, key string) []byte {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data
}

func (s *PageStore) set(bucket []byte, key string, value interface{}) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *PageStore) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}
	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

// === Pages ===

// GetPage returns a cached page if present and younger than the TTL
func (s *PageStore) GetPage(key string) (domain.Page, bool) {
	data := s.get(bucketPages, key)
	if data == nil {
		return domain.Page{}, false
	}

	var entry pageEntry
	if err := sonic.Unmarshal(data, &entry); err != nil {
		s.delete(bucketPages, key)
		return domain.Page{}, false
	}
	if s.ttl > 0 && s.now().Sub(entry.StoredAt) > s.ttl {
		s.delete(bucketPages, key)
		return domain.Page{}, false
	}
	return entry.Page, true
}

// SavePage stores a page under key
func (s *PageStore) SavePage(key string, page domain.Page) error {
	return s.set(bucketPages, key, pageEntry{StoredAt: s.now(), Page: page})
}

// Len returns the number of stored pages
func (s *PageStore) Len() int {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.cache)
	}
	n := 0
	s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketPages).Stats().KeyN
		return nil
	})
	return n
}

// InvalidateAll drops every stored page
func (s *PageStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
