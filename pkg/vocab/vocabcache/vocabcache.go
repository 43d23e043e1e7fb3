// Package vocabcache provides a SQLite-backed cache of vocabulary prompt
// embeddings, so repeated invocations don't re-encode the whole candidate
// list through the model.
package vocabcache

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/encoder"
	"github.com/papercomputeco/lenscap/pkg/vocab"
)

// Cache stores per-label prompt embeddings keyed by the encoder identity.
// A row written by one model configuration is never returned for another.
type Cache struct {
	db     *sql.DB
	scope  string
	logger *zap.Logger
}

// Config holds configuration for the cache.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Use ":memory:" for a process-local cache.
	DBPath string

	// Provider, Model, and Pretrained identify the encoder whose vectors
	// are being cached. Together they scope the cache rows.
	Provider   string
	Model      string
	Pretrained string
}

// New opens (and if needed creates) the label-vector cache.
func New(c Config, logger *zap.Logger) (*Cache, error) {
	if c.DBPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite3", c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS label_vectors (
			scope TEXT NOT NULL,
			label TEXT NOT NULL,
			embedding BLOB NOT NULL,
			PRIMARY KEY (scope, label)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating label_vectors table: %w", err)
	}

	scope := fmt.Sprintf("%s/%s/%s", c.Provider, c.Model, c.Pretrained)

	logger.Debug("label vector cache opened",
		zap.String("db_path", c.DBPath),
		zap.String("scope", scope),
	)

	return &Cache{
		db:     db,
		scope:  scope,
		logger: logger,
	}, nil
}

// serializeFloat32 converts a float32 slice to a little-endian byte slice.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// deserializeFloat32 converts a little-endian byte slice back to a float32 slice.
func deserializeFloat32(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d: must be divisible by 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

// Warm returns the embedding for every vocabulary label, in vocabulary
// order. Labels already cached are read back; the rest are encoded through
// enc and inserted. The returned slice is safe to hold for the process
// lifetime; the cache never mutates it.
func (c *Cache) Warm(ctx context.Context, enc encoder.Encoder) ([][]float32, error) {
	labels := vocab.Labels()
	vectors := make([][]float32, len(labels))

	cached, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	missing := 0
	for i, label := range labels {
		if v, ok := cached[label]; ok {
			vectors[i] = v
			continue
		}

		v, err := enc.EncodeText(ctx, vocab.Prompt(label))
		if err != nil {
			return nil, fmt.Errorf("encoding prompt for label %q: %w", label, err)
		}

		if err := c.put(ctx, label, v); err != nil {
			return nil, err
		}
		vectors[i] = v
		missing++
	}

	c.logger.Debug("label vectors warmed",
		zap.Int("labels", len(labels)),
		zap.Int("encoded", missing),
		zap.Int("cached", len(labels)-missing),
	)

	return vectors, nil
}

// load reads every cached row for this cache's scope.
func (c *Cache) load(ctx context.Context) (map[string][]float32, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT label, embedding FROM label_vectors WHERE scope = ?`, c.scope)
	if err != nil {
		return nil, fmt.Errorf("querying label vectors: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]float32)
	for rows.Next() {
		var label string
		var blob []byte
		if err := rows.Scan(&label, &blob); err != nil {
			return nil, fmt.Errorf("scanning label vector: %w", err)
		}

		v, err := deserializeFloat32(blob)
		if err != nil {
			return nil, fmt.Errorf("deserializing embedding for label %q: %w", label, err)
		}
		out[label] = v
	}
	return out, rows.Err()
}

func (c *Cache) put(ctx context.Context, label string, v []float32) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO label_vectors (scope, label, embedding) VALUES (?, ?, ?)`,
		c.scope, label, serializeFloat32(v),
	)
	if err != nil {
		return fmt.Errorf("storing embedding for label %q: %w", label, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
