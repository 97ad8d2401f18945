package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"libridex/internal/core"
	"libridex/internal/models"
)

var _ core.VectorStore = (*PgvectorStore)(nil)

// PgvectorStore keeps namespaced vector records in Postgres with the
// pgvector extension, for self-hosted deployments. One index maps to one
// table; the namespace is a column of the primary key, so re-upserting an
// id overwrites the prior row.
type PgvectorStore struct {
	db *sql.DB

	// bound by EnsureIndex
	table     string
	dimension int
}

var indexNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

func NewPgvectorStore(ctx context.Context, databaseURL string) (*PgvectorStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &PgvectorStore{db: db}, nil
}

func (s *PgvectorStore) EnsureIndex(ctx context.Context, name string, dimension int, indexedFields []string) error {
	if !indexNameRe.MatchString(name) {
		return fmt.Errorf("invalid index name %q", name)
	}
	table := strings.ReplaceAll(name, "-", "_")

	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("ensure vector extension: %w", err)
	}
	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         text NOT NULL,
			namespace  text NOT NULL,
			embedding  vector(%d) NOT NULL,
			metadata   jsonb NOT NULL DEFAULT '{}',
			created_at timestamptz NOT NULL DEFAULT now(),
			PRIMARY KEY (id, namespace)
		)`, table, dimension)
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("ensure table %s: %w", table, err)
	}
	// Cosine metric, mirroring the hosted index. Metadata stays jsonb; the
	// declared indexed fields become expression indexes for filtered reads.
	createIdx := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s USING hnsw (embedding vector_cosine_ops)`,
		table, table)
	if _, err := s.db.ExecContext(ctx, createIdx); err != nil {
		return fmt.Errorf("ensure embedding index: %w", err)
	}
	for _, field := range indexedFields {
		if !indexNameRe.MatchString(field) {
			continue
		}
		stmt := fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s_meta_%s_idx ON %s ((metadata->>'%s'))`,
			table, strings.ReplaceAll(field, "-", "_"), table, field)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure metadata index on %s: %w", field, err)
		}
	}

	s.table = table
	s.dimension = dimension
	return nil
}

func (s *PgvectorStore) Upsert(ctx context.Context, namespace string, records []models.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	if s.table == "" {
		return fmt.Errorf("pgvector: no index bound, call EnsureIndex first")
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin upsert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := fmt.Sprintf(`
		INSERT INTO %s (id, namespace, embedding, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id, namespace) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			metadata  = EXCLUDED.metadata`, s.table)
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if s.dimension > 0 && len(rec.Values) != s.dimension {
			return fmt.Errorf("pgvector: vector %s has dimension %d, index expects %d",
				rec.ID, len(rec.Values), s.dimension)
		}
		meta, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, namespace, pgvector.NewVector(rec.Values), meta); err != nil {
			return fmt.Errorf("upsert vector %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert tx: %w", err)
	}
	return nil
}

func (s *PgvectorStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]core.QueryMatch, error) {
	if s.table == "" {
		return nil, fmt.Errorf("pgvector: no index bound, call EnsureIndex first")
	}
	if topK <= 0 {
		topK = 10
	}
	q := fmt.Sprintf(`
		SELECT id, metadata, 1 - (embedding <=> $1) AS score
		FROM %s
		WHERE namespace = $2
		ORDER BY embedding <=> $1
		LIMIT $3`, s.table)
	rows, err := s.db.QueryContext(ctx, q, pgvector.NewVector(vector), namespace, topK)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}
	defer rows.Close()

	out := make([]core.QueryMatch, 0, topK)
	for rows.Next() {
		var (
			m    core.QueryMatch
			meta []byte
		)
		if err := rows.Scan(&m.ID, &meta, &m.Score); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if err := json.Unmarshal(meta, &m.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PgvectorStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
