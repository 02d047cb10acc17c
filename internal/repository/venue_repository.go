package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crud-backends/internal/domain"
)

const venueColumns = `id, name, city, state, address, phone, genres, image_link,
        facebook_link, website, seeking_talent, seeking_description`

// VenueRepository encapsulates venue persistence.
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) error
	Update(ctx context.Context, venue *domain.Venue) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Venue, error)
	SearchByName(ctx context.Context, term string) ([]domain.Venue, error)
}

type venueRepository struct {
	pool *pgxpool.Pool
}

// NewVenueRepository instantiates repository.
func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &venueRepository{pool: pool}
}

func (r *venueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	const query = `
        INSERT INTO venue (name, city, state, address, phone, genres, image_link,
            facebook_link, website, seeking_talent, seeking_description)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		venue.Name,
		venue.City,
		venue.State,
		venue.Address,
		venue.Phone,
		venue.Genres,
		venue.ImageLink,
		venue.FacebookLink,
		venue.Website,
		venue.SeekingTalent,
		venue.SeekingDescription,
	).Scan(&venue.ID)
}

func (r *venueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	const query = `
        UPDATE venue SET name=$1, city=$2, state=$3, address=$4, phone=$5, genres=$6,
            image_link=$7, facebook_link=$8, website=$9, seeking_talent=$10, seeking_description=$11
        WHERE id=$12`
	return expectRows(r.pool.Exec(ctx, query,
		venue.Name,
		venue.City,
		venue.State,
		venue.Address,
		venue.Phone,
		venue.Genres,
		venue.ImageLink,
		venue.FacebookLink,
		venue.Website,
		venue.SeekingTalent,
		venue.SeekingDescription,
		venue.ID,
	))
}

func (r *venueRepository) Delete(ctx context.Context, id int64) error {
	return expectRows(r.pool.Exec(ctx, `DELETE FROM venue WHERE id=$1`, id))
}

func (r *venueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venue WHERE id=$1`
	venue, err := scanVenue(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	return r.list(ctx, `SELECT `+venueColumns+` FROM venue ORDER BY state, city, name`)
}

func (r *venueRepository) ListRecent(ctx context.Context, limit int) ([]domain.Venue, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, `SELECT `+venueColumns+` FROM venue ORDER BY id DESC LIMIT $1`, limit)
}

func (r *venueRepository) SearchByName(ctx context.Context, term string) ([]domain.Venue, error) {
	return r.list(ctx, `SELECT `+venueColumns+` FROM venue WHERE name ILIKE $1 ORDER BY name`, likePattern(term))
}

func (r *venueRepository) list(ctx context.Context, query string, args ...any) ([]domain.Venue, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, venue)
	}
	return result, rows.Err()
}

func scanVenue(row pgx.Row) (domain.Venue, error) {
	var venue domain.Venue
	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.City,
		&venue.State,
		&venue.Address,
		&venue.Phone,
		&venue.Genres,
		&venue.ImageLink,
		&venue.FacebookLink,
		&venue.Website,
		&venue.SeekingTalent,
		&venue.SeekingDescription,
	)
	return venue, err
}
