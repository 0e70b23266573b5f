package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id INTEGER PRIMARY KEY,
	title TEXT,
	release_date DATE,
	length TEXT,
	genre TEXT,
	description TEXT,
	rating REAL,
	poster_image_link TEXT,
	movie_location_link TEXT
)`

// SQLiteCatalog is a Catalog backed by a SQLite movies table.
type SQLiteCatalog struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the SQLite database at path and
// ensures the movies table exists.
func OpenSQLite(path string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create movies table: %w", err)
	}
	return &SQLiteCatalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCatalog) Close() error {
	return c.db.Close()
}

// AssetByID implements Catalog.AssetByID.
func (c *SQLiteCatalog) AssetByID(ctx context.Context, id AssetID) (Asset, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, title, release_date, length, genre, description, rating,
		       poster_image_link, movie_location_link
		FROM movies WHERE id = ?`, int64(id))

	a, err := scanAsset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Asset{}, ErrNotFound
	}
	if err != nil {
		return Asset{}, fmt.Errorf("query movie %d: %w", id, err)
	}
	return a, nil
}

// AllAssets implements Catalog.AllAssets.
func (c *SQLiteCatalog) AllAssets(ctx context.Context) ([]Asset, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, release_date, length, genre, description, rating,
		       poster_image_link, movie_location_link
		FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return assets, nil
}

// InsertAsset adds one movie row. Used by the catalogctl bootstrap tool and
// by tests; the server itself never writes.
func (c *SQLiteCatalog) InsertAsset(ctx context.Context, a Asset) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO movies (
			title, release_date, length, genre, description, rating,
			poster_image_link, movie_location_link
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.ReleaseDate.Format(dateLayout), a.Length, a.Genre,
		a.Description, a.Rating, a.PosterRef, a.SourceRef)
	if err != nil {
		return fmt.Errorf("insert movie %q: %w", a.Title, err)
	}
	return nil
}

// Empty reports whether the movies table has no rows.
func (c *SQLiteCatalog) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return false, fmt.Errorf("count movies: %w", err)
	}
	return n == 0, nil
}

func scanAsset(scan func(dest ...any) error) (Asset, error) {
	var (
		a    Asset
		id   int64
		date string
	)
	err := scan(&id, &a.Title, &date, &a.Length, &a.Genre, &a.Description,
		&a.Rating, &a.PosterRef, &a.SourceRef)
	if err != nil {
		return Asset{}, err
	}
	a.ID = AssetID(id)

	// release_date is stored as an ISO date string.
	if t, err := time.Parse(dateLayout, date); err == nil {
		a.ReleaseDate = t
	}
	return a, nil
}
