package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Persisted document keys. One JSON document per logical record.
const (
	KeyGameState     = "GitaLearn_GameState"
	KeyStreak        = "streak_data"
	KeyDailyQuests   = "GitaLearn_DailyQuests"
	KeyWeeklyQuests  = "GitaLearn_WeeklyQuests"
	KeyLeague        = "league_data"
	KeyLeaderboard   = "leaderboard_data"
	KeyStudyProgress = "study_progress"
)

// AllKeys lists every document key the app writes.
func AllKeys() []string {
	return []string{
		KeyGameState, KeyStreak, KeyDailyQuests, KeyWeeklyQuests,
		KeyLeague, KeyLeaderboard, KeyStudyProgress,
	}
}

// KV is a JSON document store keyed by string. No schema is enforced
// beyond what callers decode into.
type KV interface {
	// Get decodes the document at key into dest. found is false when the
	// key does not exist; a decode failure is returned as an error.
	Get(ctx context.Context, key string, dest any) (found bool, err error)

	// Put encodes value as JSON and stores it under key, replacing any
	// previous document.
	Put(ctx context.Context, key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// sqliteKV implements KV on the kv_entries table.
type sqliteKV struct {
	drv *entsql.Driver
}

func (r *sqliteKV) Get(ctx context.Context, key string, dest any) (bool, error) {
	t := entsql.Table(kvEntriesTable.Name)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("value")).
		From(t).
		Where(entsql.EQ(t.C("key"), key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}
	var raw string
	if err := rows.Scan(&raw); err != nil {
		return false, fmt.Errorf("scan %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *sqliteKV) Put(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(kvEntriesTable.Name).
		Columns("key", "value", "updated_at").
		Values(key, string(b), time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *sqliteKV) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(kvEntriesTable.Name).
		Where(entsql.EQ("key", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *sqliteKV) Keys(ctx context.Context) ([]string, error) {
	t := entsql.Table(kvEntriesTable.Name)
	query, args := entsql.Dialect(dialect.SQLite).
		Select(t.C("key")).
		From(t).
		OrderBy(t.C("key")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// MemoryKV is an in-process KV. Documents are stored encoded so reads
// behave exactly like the SQLite store, including decode errors.
type MemoryKV struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{docs: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = b
	return nil
}

// PutRaw stores raw bytes under key without encoding. Used to simulate
// corrupted documents.
func (m *MemoryKV) PutRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = raw
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
