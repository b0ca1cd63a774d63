package businessdirectory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"outreach-campaigns/internal/common/database"
	"outreach-campaigns/internal/models"
)

// PostgresStore keeps one row per business; insertion order is the directory order.
type PostgresStore struct {
	client *database.PostgresClient
	table  string
}

func NewPostgresStore(client *database.PostgresClient, table string) *PostgresStore {
	return &PostgresStore{client: client, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the directory table and its type index when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	address TEXT NOT NULL,
	website TEXT,
	phone TEXT,
	email TEXT,
	description TEXT,
	tags TEXT[] NOT NULL DEFAULT '{}',
	social_media JSONB,
	web_presence JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, s.table)
	index := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (type)`,
		pq.QuoteIdentifier(strings.Trim(s.table, `"`)+"_type_idx"), s.table)

	return s.client.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
		if _, err := tx.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("create index on %s: %w", s.table, err)
		}
		return nil
	})
}

func (s *PostgresStore) Load(ctx context.Context) ([]models.Business, error) {
	query := fmt.Sprintf(`SELECT name, type, address, website, phone, email, description, tags, social_media, web_presence FROM %s ORDER BY id`, s.table)
	rows, err := s.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	businesses := []models.Business{}
	for rows.Next() {
		var (
			b                                  models.Business
			website, phone, email, description sql.NullString
			tags                               []string
			socialMedia, webPresence           []byte
		)
		if err := rows.Scan(&b.Name, &b.Type, &b.Address, &website, &phone, &email, &description,
			pq.Array(&tags), &socialMedia, &webPresence); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		b.Website = website.String
		b.Phone = phone.String
		b.Email = email.String
		b.Description = description.String
		if len(tags) > 0 {
			b.Tags = tags
		}
		if len(socialMedia) > 0 {
			b.SocialMedia = &models.SocialMedia{}
			if err := json.Unmarshal(socialMedia, b.SocialMedia); err != nil {
				return nil, fmt.Errorf("decode social_media for %s: %w", b.Name, err)
			}
		}
		if len(webPresence) > 0 {
			b.CurrentWebPresence = &models.WebPresence{}
			if err := json.Unmarshal(webPresence, b.CurrentWebPresence); err != nil {
				return nil, fmt.Errorf("decode web_presence for %s: %w", b.Name, err)
			}
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

func (s *PostgresStore) Append(ctx context.Context, b models.Business) error {
	socialMedia, err := nullableJSON(b.SocialMedia)
	if err != nil {
		return err
	}
	webPresence, err := nullableJSON(b.CurrentWebPresence)
	if err != nil {
		return err
	}

	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, type, address, website, phone, email, description, tags, social_media, web_presence) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, s.table)
	_, err = s.client.DB.ExecContext(ctx, query,
		b.Name, b.Type, b.Address,
		nullString(b.Website), nullString(b.Phone), nullString(b.Email), nullString(b.Description),
		pq.Array(tags), socialMedia, webPresence,
	)
	if err != nil {
		return fmt.Errorf("insert business %s: %w", b.Name, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullableJSON encodes v, mapping a nil pointer to SQL NULL.
func nullableJSON[T any](v *T) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return raw, nil
}
