package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const pgDocumentID = 1

// PgBackend stores the whole document as one jsonb row. The single-row upsert
// keeps the load/save contract of the flat JSON file while gaining durability
// over a managed database.
type PgBackend struct {
	pool *pgxpool.Pool
}

func NewPgBackend(ctx context.Context, pool *pgxpool.Pool) (*PgBackend, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS taskboard_document (
			id  INT PRIMARY KEY,
			doc JSONB NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create document table: %w", err)
	}

	return &PgBackend{pool: pool}, nil
}

func (b *PgBackend) Load(ctx context.Context) (Document, error) {
	row := b.pool.QueryRow(
		ctx,
		`SELECT doc FROM taskboard_document WHERE id = $1`,
		pgDocumentID,
	)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			doc := Document{}
			doc.Normalize()
			return doc, nil
		}
		return Document{}, fmt.Errorf("failed to load document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse document: %w", err)
	}

	doc.Normalize()
	return doc, nil
}

func (b *PgBackend) Save(ctx context.Context, doc Document) error {
	doc.Normalize()

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = b.pool.Exec(
		ctx,
		`INSERT INTO taskboard_document (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
		pgDocumentID,
		raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}
