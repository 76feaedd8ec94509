package pending

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aditwb/storysync/internal/client/models"
	"github.com/aditwb/storysync/internal/common"
)

// SQLiteRepository implements Repository over a local SQLite database.
// temp_id is an AUTOINCREMENT column, so SQLite guarantees monotonically
// increasing keys that are never handed out twice.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts the story and returns the store-assigned TempID.
func (r *SQLiteRepository) Add(ctx context.Context, p *models.PendingStory) (int64, error) {
	query := `INSERT INTO pending_stories
		(name, description, lat, lon, photo, photo_base64, created_at, synced, client_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, nullFloat(p.Lat), nullFloat(p.Lon),
		p.Photo, p.PhotoBase64, p.CreatedAt, boolToInt(p.Synced), p.ClientKey)
	if err != nil {
		return 0, common.StorageError("failed to insert pending story", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, common.StorageError("failed to read assigned temp id", err)
	}
	p.TempID = id
	return id, nil
}

const selectColumns = `temp_id, name, description, lat, lon, photo, photo_base64, created_at, synced, client_key`

// GetAll lists queued stories oldest first, matching upload order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.PendingStory, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_stories ORDER BY temp_id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.StorageError("failed to select pending stories", err)
	}
	defer rows.Close()

	var result []models.PendingStory
	for rows.Next() {
		p, err := scanPending(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("failed to iterate pending stories", err)
	}
	return result, nil
}

// GetByID returns one queued story or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, tempID int64) (*models.PendingStory, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_stories WHERE temp_id = ?`
	p, err := scanPending(r.db.QueryRowContext(ctx, query, tempID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pending story %d: %w", tempID, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByClientKey returns the queued story carrying the idempotency key, or
// common.ErrNotFound.
func (r *SQLiteRepository) GetByClientKey(ctx context.Context, key string) (*models.PendingStory, error) {
	query := `SELECT ` + selectColumns + ` FROM pending_stories WHERE client_key = ?`
	p, err := scanPending(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pending story with key %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes one queued story. No rows affected is not an error: the
// record may already have been removed by a concurrent sync drain.
func (r *SQLiteRepository) Delete(ctx context.Context, tempID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories WHERE temp_id = ?`, tempID); err != nil {
		return common.StorageError("failed to delete pending story", err)
	}
	return nil
}

// Clear removes every queued story.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_stories`); err != nil {
		return common.StorageError("failed to clear pending stories", err)
	}
	return nil
}

// Count returns the number of queued stories.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_stories`).Scan(&n); err != nil {
		return 0, common.StorageError("failed to count pending stories", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPending(row rowScanner) (*models.PendingStory, error) {
	p := &models.PendingStory{}
	var lat, lon sql.NullFloat64
	var synced int
	if err := row.Scan(&p.TempID, &p.Name, &p.Description, &lat, &lon,
		&p.Photo, &p.PhotoBase64, &p.CreatedAt, &synced, &p.ClientKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, common.StorageError("pending story row scan failed", err)
	}
	if lat.Valid {
		p.Lat = &lat.Float64
	}
	if lon.Valid {
		p.Lon = &lon.Float64
	}
	p.Synced = synced != 0
	return p, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
