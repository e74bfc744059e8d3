package history

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	"github.com/bytedance/sonic"
)

// Store persists history entries, most recent first.
type Store interface {
	// Load returns the stored entries. A store that has never been saved
	// holds no entries.
	Load() ([]Entry, error)
	// Save replaces the stored entries.
	Save(entries []Entry) error
	Close() error
}

// Open opens a store by file extension: .json files hold a JSON array of
// entries, and .db files are bolt databases.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &FileStore{Path: path}, nil
	case ".db":
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("history: unknown store type for %q", path)
	}
}

// FileStore stores entries as a JSON array in a file.
type FileStore struct {
	Path string
}

// Load reads the file. A missing file holds no entries.
func (s *FileStore) Load() ([]Entry, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := sonic.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("history: decoding %s: %w", s.Path, err)
	}
	return entries, nil
}

// Save writes the file through a temporary file in the same directory.
func (s *FileStore) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := sonic.Marshal(entries)
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

func (s *FileStore) Close() error {
	return nil
}

var bucketName = []byte("history")

// BoltStore stores entries in a bolt bucket, keyed by position.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates a bolt database.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	return &BoltStore{db: db}, nil
}

// Load reads entries in key order.
func (s *BoltStore) Load() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var e Entry
			if err := sonic.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("history: decoding entry %x: %w", k, err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

// Save replaces the bucket's contents in one transaction.
func (s *BoltStore) Save(entries []Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(bucketName)
		if err != nil {
			return err
		}
		for i, e := range entries {
			v, err := sonic.Marshal(e)
			if err != nil {
				return err
			}
			var k [8]byte
			binary.BigEndian.PutUint64(k[:], uint64(i))
			if err := b.Put(k[:], v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
