package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crud-backends/internal/domain"
)

// ShowRepository manages show bookings and their joined projections.
type ShowRepository interface {
	Create(ctx context.Context, show *domain.Show) error
	ListListings(ctx context.Context) ([]domain.ShowListing, error)
	ListByVenue(ctx context.Context, venueID int64) ([]domain.VenueShow, error)
	ListByArtist(ctx context.Context, artistID int64) ([]domain.ArtistShow, error)
	CountUpcomingByVenue(ctx context.Context, venueIDs []int64, now time.Time) (map[int64]int, error)
	CountUpcomingByArtist(ctx context.Context, artistIDs []int64, now time.Time) (map[int64]int, error)
}

type showRepository struct {
	pool *pgxpool.Pool
}

// NewShowRepository instantiates repository.
func NewShowRepository(pool *pgxpool.Pool) ShowRepository {
	return &showRepository{pool: pool}
}

func (r *showRepository) Create(ctx context.Context, show *domain.Show) error {
	const query = `
        INSERT INTO shows (venue_id, artist_id, show_date)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, show.VenueID, show.ArtistID, show.ShowDate).Scan(&show.ID)
}

func (r *showRepository) ListListings(ctx context.Context) ([]domain.ShowListing, error) {
	const query = `
        SELECT s.venue_id, v.name, s.artist_id, a.name, a.image_link, s.show_date
        FROM shows s
        JOIN venue v ON v.id = s.venue_id
        JOIN artist a ON a.id = s.artist_id
        ORDER BY s.show_date`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ShowListing
	for rows.Next() {
		var l domain.ShowListing
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *showRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.VenueShow, error) {
	const query = `
        SELECT a.id, a.name, a.image_link, s.show_date
        FROM shows s
        JOIN artist a ON a.id = s.artist_id
        WHERE s.venue_id = $1
        ORDER BY s.show_date`
	rows, err := r.pool.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VenueShow
	for rows.Next() {
		var s domain.VenueShow
		if err := rows.Scan(&s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *showRepository) ListByArtist(ctx context.Context, artistID int64) ([]domain.ArtistShow, error) {
	const query = `
        SELECT v.id, v.name, v.image_link, s.show_date
        FROM shows s
        JOIN venue v ON v.id = s.venue_id
        WHERE s.artist_id = $1
        ORDER BY s.show_date`
	rows, err := r.pool.Query(ctx, query, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ArtistShow
	for rows.Next() {
		var s domain.ArtistShow
		if err := rows.Scan(&s.VenueID, &s.VenueName, &s.VenueImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *showRepository) CountUpcomingByVenue(ctx context.Context, venueIDs []int64, now time.Time) (map[int64]int, error) {
	const query = `
        SELECT venue_id, COUNT(*) FROM shows
        WHERE venue_id = ANY($1) AND show_date >= $2
        GROUP BY venue_id`
	return r.countBy(ctx, query, venueIDs, now)
}

func (r *showRepository) CountUpcomingByArtist(ctx context.Context, artistIDs []int64, now time.Time) (map[int64]int, error) {
	const query = `
        SELECT artist_id, COUNT(*) FROM shows
        WHERE artist_id = ANY($1) AND show_date >= $2
        GROUP BY artist_id`
	return r.countBy(ctx, query, artistIDs, now)
}

func (r *showRepository) countBy(ctx context.Context, query string, ids []int64, now time.Time) (map[int64]int, error) {
	counts := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	rows, err := r.pool.Query(ctx, query, ids, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		id    int64
		count int
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &count}, func() error {
		counts[id] = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
