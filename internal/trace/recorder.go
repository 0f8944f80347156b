// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/trace/recorder.go
// Summary: SQLite-backed install trace wrapping a keyframes.Installer.
//
// Every InstallOrReplace is forwarded to the wrapped installer first, then
// queued and written in batches:
//   - one row per installer call with its block count and size
//   - optional rule text for later inspection
//   - per-key summaries for checking the one-call-per-cycle contract

package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/keyframes"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("trace: recorder closed")

// Config holds configuration for the recorder.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BatchSize is the number of installs to accumulate before writing.
	// Default: 64
	BatchSize int

	// BatchTimeout is how long a partial batch may wait.
	// Default: 1s
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async queue.
	// Default: 1024
	ChannelBuffer int

	// KeepText stores each rule text alongside its counters.
	KeepText bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     64,
		BatchTimeout:  time.Second,
		ChannelBuffer: 1024,
		KeepText:      true,
	}
}

// ConfigFrom overlays the "trace" section of cfg on DefaultConfig.
func ConfigFrom(dbPath string, cfg config.Config) Config {
	c := DefaultConfig(dbPath)
	c.BatchSize = cfg.GetPositiveInt("trace", "batch_size", c.BatchSize)
	if ms := cfg.GetFloat("trace", "batch_timeout_ms", 0); ms > 0 {
		c.BatchTimeout = time.Duration(ms * float64(time.Millisecond))
	}
	c.KeepText = cfg.GetBool("trace", "keep_text", c.KeepText)
	return c
}

// KeyStats summarises the installs recorded under one key.
type KeyStats struct {
	Key      string
	Installs int
	Blocks   int
	Bytes    int64
	Last     time.Time
}

type entry struct {
	at     time.Time
	key    string
	blocks int
	text   string
}

// Recorder is a keyframes.Installer that traces installs to SQLite.
type Recorder struct {
	inner  keyframes.Installer
	config Config
	db     *sql.DB

	queue   chan entry
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once

	mu sync.Mutex
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS installs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at INTEGER NOT NULL,              -- UnixNano
    key TEXT NOT NULL,
    blocks INTEGER NOT NULL,
    bytes INTEGER NOT NULL,
    rule TEXT
);

CREATE INDEX IF NOT EXISTS idx_installs_key ON installs(key);
`

// Open creates the database if needed and starts the background writer.
func Open(inner keyframes.Installer, config Config) (*Recorder, error) {
	if inner == nil {
		return nil, fmt.Errorf("trace: nil installer")
	}
	def := DefaultConfig(config.DBPath)
	if config.BatchSize <= 0 {
		config.BatchSize = def.BatchSize
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = def.BatchTimeout
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = def.ChannelBuffer
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}

	r := &Recorder{
		inner:   inner,
		config:  config,
		db:      db,
		queue:   make(chan entry, config.ChannelBuffer),
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go r.writer()
	return r, nil
}

// InstallOrReplace forwards to the wrapped installer and queues a trace row.
// Installs after Close are forwarded but not traced.
func (r *Recorder) InstallOrReplace(key, ruleText string) {
	r.inner.InstallOrReplace(key, ruleText)
	e := entry{
		at:     time.Now(),
		key:    key,
		blocks: strings.Count(ruleText, "@keyframes"),
		text:   ruleText,
	}
	select {
	case <-r.stopCh:
	case r.queue <- e:
	}
}

func (r *Recorder) writer() {
	defer close(r.doneCh)

	batch := make([]entry, 0, r.config.BatchSize)
	timer := time.NewTimer(r.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		r.write(batch)
		batch = batch[:0]
	}
	drain := func() {
		for {
			select {
			case e := <-r.queue:
				batch = append(batch, e)
			default:
				return
			}
		}
	}

	for {
		select {
		case e := <-r.queue:
			batch = append(batch, e)
			if len(batch) >= r.config.BatchSize {
				flush()
				timer.Reset(r.config.BatchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(r.config.BatchTimeout)
		case done := <-r.flushCh:
			drain()
			flush()
			close(done)
		case <-r.stopCh:
			drain()
			flush()
			return
		}
	}
}

// write stores a batch in a single transaction.
func (r *Recorder) write(batch []entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		log.Printf("Trace: Failed to begin transaction: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT INTO installs (at, key, blocks, bytes, rule) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		log.Printf("Trace: Failed to prepare statement: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, e := range batch {
		var text sql.NullString
		if r.config.KeepText {
			text = sql.NullString{String: e.text, Valid: true}
		}
		if _, err := stmt.Exec(e.at.UnixNano(), e.key, e.blocks, len(e.text), text); err != nil {
			log.Printf("Trace: Failed to insert %q: %v", e.key, err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Trace: Failed to commit batch: %v", err)
	}
}

// Flush blocks until every queued install is written.
func (r *Recorder) Flush() error {
	done := make(chan struct{})
	select {
	case r.flushCh <- done:
		<-done
		return nil
	case <-r.doneCh:
		return ErrClosed
	}
}

// Close writes pending installs and closes the database.
func (r *Recorder) Close() error {
	var err error
	r.once.Do(func() {
		close(r.stopCh)
		<-r.doneCh
		err = r.db.Close()
	})
	return err
}

// Summary returns per-key install counters, ordered by key.
func (r *Recorder) Summary() ([]KeyStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT key, COUNT(*), SUM(blocks), SUM(bytes), MAX(at)
		FROM installs GROUP BY key ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("trace: summary: %w", err)
	}
	defer rows.Close()

	var out []KeyStats
	for rows.Next() {
		var s KeyStats
		var last int64
		if err := rows.Scan(&s.Key, &s.Installs, &s.Blocks, &s.Bytes, &last); err != nil {
			return nil, fmt.Errorf("trace: summary: %w", err)
		}
		s.Last = time.Unix(0, last)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the most recent rule text recorded for key.
func (r *Recorder) Latest(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var text sql.NullString
	err := r.db.QueryRow("SELECT rule FROM installs WHERE key = ? ORDER BY id DESC LIMIT 1", key).Scan(&text)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("trace: no installs for %q", key)
	}
	if err != nil {
		return "", fmt.Errorf("trace: latest %q: %w", key, err)
	}
	return text.String, nil
}

var _ keyframes.Installer = (*Recorder)(nil)
