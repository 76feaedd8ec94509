package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/common"
	"github.com/aditwb/storysync/internal/dbx"
)

// SQLiteRepository implements Repository over a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertQuery = `INSERT INTO stories (id, name, description, lat, lon, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name,
			description = excluded.description,
			lat = excluded.lat,
			lon = excluded.lon,
			photo_url = excluded.photo_url,
			created_at = excluded.created_at
`

// CreateOrUpdate upserts a story by id. On conflict the whole row is replaced.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, s *models.Story) error {
	_, err := r.db.ExecContext(ctx, upsertQuery,
		s.ID, s.Name, s.Description, nullFloat(s.Lat), nullFloat(s.Lon), s.PhotoURL, s.CreatedAt)
	if err != nil {
		return common.StorageError("failed to upsert story", err)
	}
	return nil
}

// PutMany upserts the batch inside one transaction so a mid-batch failure
// leaves the table untouched.
func (r *SQLiteRepository) PutMany(ctx context.Context, batch []models.Story) error {
	if len(batch) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range batch {
			s := &batch[i]
			if _, err := tx.ExecContext(ctx, upsertQuery,
				s.ID, s.Name, s.Description, nullFloat(s.Lat), nullFloat(s.Lon), s.PhotoURL, s.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return common.StorageError("failed to upsert story batch", err)
	}
	return nil
}

// GetAll lists all saved stories.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Story, error) {
	query := `SELECT id, name, description, lat, lon, photo_url, created_at FROM stories`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.StorageError("failed to select stories", err)
	}
	defer rows.Close()

	var result []models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("failed to iterate stories", err)
	}
	return result, nil
}

// GetByID returns a single saved story or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := `SELECT id, name, description, lat, lon, photo_url, created_at FROM stories WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanStory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the local copy. Absent ids are a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id); err != nil {
		return common.StorageError("failed to delete story", err)
	}
	return nil
}

// Clear removes all saved stories.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stories`); err != nil {
		return common.StorageError("failed to clear stories", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*models.Story, error) {
	s := &models.Story{}
	var lat, lon sql.NullFloat64
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &lat, &lon, &s.PhotoURL, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.StorageError("story row scan failed", err)
	}
	if lat.Valid {
		s.Lat = &lat.Float64
	}
	if lon.Valid {
		s.Lon = &lon.Float64
	}
	return s, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
