package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripmate/backend/internal/domain"
)

// PlaceRepo defines the persistence operations for the global place catalog.
type PlaceRepo interface {
	// Create inserts a new catalog place and returns the persisted record.
	Create(ctx context.Context, place domain.Place) (domain.Place, error)

	// GetByID retrieves a single place by primary key.
	// Returns domain.ErrNotFound if no place with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)

	// GetByIDs returns the places whose IDs appear in ids, keyed by ID.
	// Missing IDs are simply absent from the map — callers use this to
	// prune stale references at display time.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error)

	// List returns a page of places matching the filter, ordered by
	// country, city, name, plus the total match count for pagination.
	List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error)

	// Update overwrites the mutable fields of a place and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, place domain.Place) (domain.Place, error)

	// Delete removes a place by ID. Returns domain.ErrNotFound if it does
	// not exist. Trips referencing the deleted place keep their stored
	// references; resolution prunes them from display.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, name, country, city, type, fee, google_map_url, timing,
	time_to_cover, highlight, notes, image_url, created_at, updated_at`

func (r *pgPlaceRepo) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (name, country, city, type, fee, google_map_url, timing,
			time_to_cover, highlight, notes, image_url)
		VALUES (@name, @country, @city, @type, @fee, @google_map_url, @timing,
			@time_to_cover, @highlight, @notes, @image_url)
		RETURNING ` + placeColumns

	result, err := scanPlace(r.db.QueryRow(ctx, q, placeArgs(place)))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Place, error) {
	places := make(map[uuid.UUID]domain.Place, len(ids))
	if len(ids) == 0 {
		return places, nil
	}

	const q = `SELECT ` + placeColumns + ` FROM places WHERE id = ANY(@ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: scan: %w", err)
		}
		places[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.GetByIDs: rows: %w", err)
	}

	return places, nil
}

func (r *pgPlaceRepo) List(ctx context.Context, filter domain.PlaceFilter, page domain.PaginationParams) ([]domain.Place, int64, error) {
	// The filter is applied identically to the page query and the count
	// query so pagination totals always match the visible rows.
	const where = `
		WHERE (@country = '' OR country ILIKE '%' || @country || '%')
		  AND (@city = '' OR city ILIKE '%' || @city || '%')
		  AND (@type = '' OR type = @type)
		  AND (@search = ''
		       OR name ILIKE '%' || @search || '%'
		       OR country ILIKE '%' || @search || '%'
		       OR city ILIKE '%' || @search || '%'
		       OR notes ILIKE '%' || @search || '%')`

	args := pgx.NamedArgs{
		"country": filter.Country,
		"city":    filter.City,
		"type":    filter.Type,
		"search":  filter.Search,
		"limit":   page.Limit,
		"offset":  page.Offset(),
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+placeColumns+`
		FROM places `+where+`
		ORDER BY country, city, name
		LIMIT @limit OFFSET @offset`, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: %w", err)
	}
	defer rows.Close()

	var places []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PlaceRepo.List: scan: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM places `+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.List: count: %w", err)
	}

	return places, total, nil
}

func (r *pgPlaceRepo) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		UPDATE places
		SET name           = @name,
		    country        = @country,
		    city           = @city,
		    type           = @type,
		    fee            = @fee,
		    google_map_url = @google_map_url,
		    timing         = @timing,
		    time_to_cover  = @time_to_cover,
		    highlight      = @highlight,
		    notes          = @notes,
		    image_url      = @image_url,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + placeColumns

	args := placeArgs(place)
	args["id"] = place.ID

	result, err := scanPlace(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgPlaceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM places WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlaceRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func placeArgs(p domain.Place) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":           p.Name,
		"country":        p.Country,
		"city":           p.City,
		"type":           p.Type,
		"fee":            p.Fee,
		"google_map_url": p.GoogleMapURL,
		"timing":         p.Timing,
		"time_to_cover":  p.TimeToCover,
		"highlight":      p.Highlight,
		"notes":          p.Notes,
		"image_url":      p.ImageURL,
	}
}

// scanPlace maps a single database row into a domain.Place.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p  domain.Place
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Name, &p.Country, &p.City, &p.Type, &p.Fee, &p.GoogleMapURL,
		&p.Timing, &p.TimeToCover, &p.Highlight, &p.Notes, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
