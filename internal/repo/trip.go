package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripmate/backend/internal/domain"
)

// TripRepo defines the persistence operations for the Trip aggregate.
//
// A trip is stored as a single row: scalar columns for the searchable
// fields plus jsonb columns for the embedded members, itinerary, places,
// and documents. Every mutation goes through Save, which overwrites the
// whole document in one UPDATE — that single-row write is what gives the
// aggregate its document-level atomicity and its last-writer-wins
// concurrency semantics.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListForUser returns all trips where the user is the owner or appears
	// in the members list, ordered by updated_at descending.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Save overwrites the whole trip document and bumps updated_at,
	// returning the persisted record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Referenced users and places survive.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, title, description, destination, start_date, end_date, owner_id,
	members, itinerary, places, documents, notes, status, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (title, description, destination, start_date, end_date, owner_id,
			members, itinerary, places, documents, notes, status)
		VALUES (@title, @description, @destination, @start_date, @end_date, @owner_id,
			@members, @itinerary, @places, @documents, @notes, @status)
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	// Membership matches the policy in domain: owner or any entry in the
	// members jsonb array. The @> containment check is index-assisted by
	// the GIN index on members.
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @user_id
		   OR members @> @member
		ORDER BY updated_at DESC`

	member, err := json.Marshal([]map[string]string{{"user": userID.String()}})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForUser: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "member": member})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListForUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListForUser: rows: %w", err)
	}

	return trips, nil
}

func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	// Whole-document overwrite. owner_id is deliberately absent from the
	// SET list: the owner is immutable after creation.
	const q = `
		UPDATE trips
		SET title       = @title,
		    description = @description,
		    destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    members     = @members,
		    itinerary   = @itinerary,
		    places      = @places,
		    documents   = @documents,
		    notes       = @notes,
		    status      = @status,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args, err := tripArgs(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	args["id"] = trip.ID
	delete(args, "owner_id")

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs marshals the embedded document parts to jsonb parameters.
// Nil slices are stored as empty arrays so stored documents never contain
// JSON null where a list belongs.
func tripArgs(t domain.Trip) (pgx.NamedArgs, error) {
	members, err := marshalList(t.Members)
	if err != nil {
		return nil, fmt.Errorf("members: %w", err)
	}
	itinerary, err := marshalList(t.Itinerary)
	if err != nil {
		return nil, fmt.Errorf("itinerary: %w", err)
	}
	places, err := marshalList(t.Places)
	if err != nil {
		return nil, fmt.Errorf("places: %w", err)
	}
	documents, err := marshalList(t.Documents)
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}

	return pgx.NamedArgs{
		"title":       t.Title,
		"description": t.Description,
		"destination": t.Destination,
		"start_date":  t.StartDate,
		"end_date":    t.EndDate,
		"owner_id":    t.OwnerID,
		"members":     members,
		"itinerary":   itinerary,
		"places":      places,
		"documents":   documents,
		"notes":       t.Notes,
		"status":      string(t.Status),
	}, nil
}

func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

// scanTrip maps a single database row into a domain.Trip, unmarshalling the
// jsonb document columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		ownerID   pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
		members   []byte
		itinerary []byte
		places    []byte
		documents []byte
	)

	err := s.Scan(&id, &t.Title, &t.Description, &t.Destination, &startDate, &endDate,
		&ownerID, &members, &itinerary, &places, &documents, &t.Notes, &status,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	t.Status = domain.TripStatus(status)
	if startDate.Valid {
		sd := startDate.Time
		t.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		t.EndDate = &ed
	}

	if err := json.Unmarshal(members, &t.Members); err != nil {
		return domain.Trip{}, fmt.Errorf("members: %w", err)
	}
	if err := json.Unmarshal(itinerary, &t.Itinerary); err != nil {
		return domain.Trip{}, fmt.Errorf("itinerary: %w", err)
	}
	if err := json.Unmarshal(places, &t.Places); err != nil {
		return domain.Trip{}, fmt.Errorf("places: %w", err)
	}
	if err := json.Unmarshal(documents, &t.Documents); err != nil {
		return domain.Trip{}, fmt.Errorf("documents: %w", err)
	}

	return t, nil
}
