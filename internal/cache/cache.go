// Package cache persists research records between runs. The store sits in
// front of the expensive search and completion calls, so every operation
// is total: storage failures and corrupt entries degrade to a miss or a
// no-op and are logged, never returned to the caller.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
	ttl     time.Duration
	log     *zap.Logger

	// clock is swapped in tests to cross the freshness boundary.
	clock func() time.Time
}

func Open(dbPath string, ttl time.Duration, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{
		readDB:  readDB,
		writeDB: writeDB,
		ttl:     ttl,
		log:     log,
		clock:   time.Now,
	}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS research (
			key           TEXT PRIMARY KEY,
			topic         TEXT NOT NULL,
			research_type TEXT NOT NULL,
			cached_at     DATETIME NOT NULL,
			payload       TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// TTL returns the freshness window applied uniformly to all entries.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Key derives the storage key for a topic and research type. It is a pure
// function of its lowercased inputs, so identical requests always address
// the same slot regardless of case.
func Key(topic, researchType string) string {
	h := sha256.Sum256([]byte(strings.ToLower(topic) + "_" + strings.ToLower(researchType)))
	return hex.EncodeToString(h[:])
}

// Get returns the fresh record stored for the topic, if any. A stale
// entry is treated like a missing one but not deleted; corrupt payloads
// are logged and treated as a miss.
func (s *Store) Get(topic, researchType string) (*Record, bool) {
	key := Key(topic, researchType)

	var (
		cachedAt time.Time
		payload  []byte
	)
	err := s.readDB.QueryRow(
		"SELECT cached_at, payload FROM research WHERE key = ?", key,
	).Scan(&cachedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("cache read failed", zap.String("topic", topic), zap.Error(err))
		return nil, false
	}

	age := s.clock().Sub(cachedAt)
	if age >= s.ttl {
		s.log.Debug("cache expired", zap.String("topic", topic), zap.Duration("age", age))
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		s.log.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	s.log.Debug("cache hit", zap.String("topic", topic), zap.Duration("age", age))
	return &rec, true
}

// Set writes or overwrites the entry for the topic, stamping it with the
// current time. Returns whether the write succeeded; failures are logged
// and the caller proceeds uncached.
func (s *Store) Set(topic, researchType string, rec *Record) bool {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.log.Warn("cache encode failed", zap.String("topic", topic), zap.Error(err))
		return false
	}

	_, err = s.writeDB.Exec(`
		INSERT INTO research (key, topic, research_type, cached_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			topic = excluded.topic,
			research_type = excluded.research_type,
			cached_at = excluded.cached_at,
			payload = excluded.payload
	`, Key(topic, researchType), topic, researchType, s.clock(), payload)
	if err != nil {
		s.log.Warn("cache write failed", zap.String("topic", topic), zap.Error(err))
		return false
	}

	s.log.Debug("cached research", zap.String("topic", topic))
	return true
}

// Invalidate removes the entry for the topic if present. Absent entries
// are a no-op, not an error.
func (s *Store) Invalidate(topic, researchType string) bool {
	res, err := s.writeDB.Exec(
		"DELETE FROM research WHERE key = ?", Key(topic, researchType),
	)
	if err != nil {
		s.log.Warn("cache invalidate failed", zap.String("topic", topic), zap.Error(err))
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false
	}
	return n > 0
}

// ClearAll removes every entry regardless of freshness and returns the
// number removed.
func (s *Store) ClearAll() int {
	res, err := s.writeDB.Exec("DELETE FROM research")
	if err != nil {
		s.log.Warn("cache clear failed", zap.Error(err))
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

// Prune removes entries older than the given age and returns the number
// removed. This is the explicit bulk eviction the read path never does.
func (s *Store) Prune(olderThan time.Duration) int {
	res, err := s.writeDB.Exec(
		"DELETE FROM research WHERE cached_at < ?", s.clock().Add(-olderThan),
	)
	if err != nil {
		s.log.Warn("cache prune failed", zap.Error(err))
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

// Stats classifies every stored entry as valid or expired against the
// current ttl without mutating the store. Rows whose timestamp cannot be
// read count as expired so Total always equals Valid + Expired.
func (s *Store) Stats() Stats {
	rows, err := s.readDB.Query("SELECT cached_at FROM research")
	if err != nil {
		s.log.Warn("cache stats failed", zap.Error(err))
		return Stats{}
	}
	defer rows.Close()

	now := s.clock()
	var st Stats
	for rows.Next() {
		st.Total++
		var cachedAt time.Time
		if err := rows.Scan(&cachedAt); err != nil {
			st.Expired++
			continue
		}
		if now.Sub(cachedAt) < s.ttl {
			st.Valid++
		} else {
			st.Expired++
		}
	}
	if err := rows.Err(); err != nil {
		s.log.Warn("cache stats failed", zap.Error(err))
	}
	return st
}
