package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crud-backends/internal/domain"
)

const artistColumns = `id, name, city, state, phone, genres, image_link,
        facebook_link, website, seeking_venues, seeking_description`

// ArtistRepository encapsulates artist persistence.
type ArtistRepository interface {
	Create(ctx context.Context, artist *domain.Artist) error
	Update(ctx context.Context, artist *domain.Artist) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	List(ctx context.Context) ([]domain.Artist, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Artist, error)
	SearchByName(ctx context.Context, term string) ([]domain.Artist, error)
}

type artistRepository struct {
	pool *pgxpool.Pool
}

// NewArtistRepository instantiates repository.
func NewArtistRepository(pool *pgxpool.Pool) ArtistRepository {
	return &artistRepository{pool: pool}
}

func (r *artistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	const query = `
        INSERT INTO artist (name, city, state, phone, genres, image_link,
            facebook_link, website, seeking_venues, seeking_description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		artist.Name,
		artist.City,
		artist.State,
		artist.Phone,
		artist.Genres,
		artist.ImageLink,
		artist.FacebookLink,
		artist.Website,
		artist.SeekingVenues,
		artist.SeekingDescription,
	).Scan(&artist.ID)
}

func (r *artistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	const query = `
        UPDATE artist SET name=$1, city=$2, state=$3, phone=$4, genres=$5, image_link=$6,
            facebook_link=$7, website=$8, seeking_venues=$9, seeking_description=$10
        WHERE id=$11`
	return expectRows(r.pool.Exec(ctx, query,
		artist.Name,
		artist.City,
		artist.State,
		artist.Phone,
		artist.Genres,
		artist.ImageLink,
		artist.FacebookLink,
		artist.Website,
		artist.SeekingVenues,
		artist.SeekingDescription,
		artist.ID,
	))
}

func (r *artistRepository) Delete(ctx context.Context, id int64) error {
	return expectRows(r.pool.Exec(ctx, `DELETE FROM artist WHERE id=$1`, id))
}

func (r *artistRepository) GetByID(ctx context.Context, id int64) (*domain.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artist WHERE id=$1`
	artist, err := scanArtist(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	return r.list(ctx, `SELECT `+artistColumns+` FROM artist ORDER BY name`)
}

func (r *artistRepository) ListRecent(ctx context.Context, limit int) ([]domain.Artist, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, `SELECT `+artistColumns+` FROM artist ORDER BY id DESC LIMIT $1`, limit)
}

func (r *artistRepository) SearchByName(ctx context.Context, term string) ([]domain.Artist, error) {
	return r.list(ctx, `SELECT `+artistColumns+` FROM artist WHERE name ILIKE $1 ORDER BY name`, likePattern(term))
}

func (r *artistRepository) list(ctx context.Context, query string, args ...any) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Artist
	for rows.Next() {
		artist, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, artist)
	}
	return result, rows.Err()
}

func scanArtist(row pgx.Row) (domain.Artist, error) {
	var artist domain.Artist
	err := row.Scan(
		&artist.ID,
		&artist.Name,
		&artist.City,
		&artist.State,
		&artist.Phone,
		&artist.Genres,
		&artist.ImageLink,
		&artist.FacebookLink,
		&artist.Website,
		&artist.SeekingVenues,
		&artist.SeekingDescription,
	)
	return artist, err
}
