package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/hotels/internal/hotel"
	"github.com/roach88/hotels/internal/value"
)

// ErrNotFound is returned when a hotel ID is not in the store.
var ErrNotFound = errors.New("hotel not found")

// ImportResult summarizes one Import call.
type ImportResult struct {
	Total    int // Hotels offered
	Inserted int // Hotels that were not already stored
}

// Skipped returns how many hotels were already present.
func (r ImportResult) Skipped() int {
	return r.Total - r.Inserted
}

// Import stores hotels in order inside one transaction. Hotels whose
// content hash or ID is already stored are skipped. Hotels without an ID
// are assigned one by the store's IDGenerator. source is recorded in the
// import history.
func (s *Store) Import(ctx context.Context, source string, hotels []hotel.Hotel) (ImportResult, error) {
	result := ImportResult{Total: len(hotels)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("import: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hotels
		(id, name, stars, price, image, amenities, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return result, fmt.Errorf("import: prepare: %w", err)
	}
	defer stmt.Close()

	for i, h := range hotels {
		hash, err := h.ContentHash()
		if err != nil {
			return result, fmt.Errorf("import hotel %d: %w", i, err)
		}

		amenities, err := marshalAmenities(h.Amenities)
		if err != nil {
			return result, fmt.Errorf("import hotel %d: %w", i, err)
		}

		id := h.ID
		if id == "" {
			id = s.ids.NewID()
		}

		res, err := stmt.ExecContext(ctx, id, h.Name, h.Stars, h.Price, h.Image, amenities, hash)
		if err != nil {
			return result, fmt.Errorf("import hotel %d: %w", i, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return result, fmt.Errorf("import hotel %d: %w", i, err)
		}
		result.Inserted += int(n)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, total, inserted) VALUES (?, ?, ?)`,
		source, result.Total, result.Inserted,
	); err != nil {
		return result, fmt.Errorf("import: record history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("import: commit: %w", err)
	}
	return result, nil
}

// All returns every stored hotel in insertion order. Store implements
// hotel.Source.
func (s *Store) All(ctx context.Context) ([]hotel.Hotel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, stars, price, image, amenities
		FROM hotels
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []hotel.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}
	return hotels, nil
}

// Get returns the hotel with the given ID.
func (s *Store) Get(ctx context.Context, id string) (hotel.Hotel, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, stars, price, image, amenities
		FROM hotels
		WHERE id = ?
	`, id)

	h, err := scanHotel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return hotel.Hotel{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, err
}

// Count returns the number of stored hotels.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hotels: %w", err)
	}
	return n, nil
}

// ImportRecord is one row of the import history.
type ImportRecord struct {
	Seq    int64
	Source string
	ImportResult
}

// Imports returns the import history, oldest first.
func (s *Store) Imports(ctx context.Context) ([]ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, source, total, inserted
		FROM imports
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var r ImportRecord
		if err := rows.Scan(&r.Seq, &r.Source, &r.Total, &r.Inserted); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHotel(row scanner) (hotel.Hotel, error) {
	var (
		h         hotel.Hotel
		amenities string
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Stars, &h.Price, &h.Image, &amenities); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return hotel.Hotel{}, err
		}
		return hotel.Hotel{}, fmt.Errorf("scan hotel: %w", err)
	}

	if err := json.Unmarshal([]byte(amenities), &h.Amenities); err != nil {
		return hotel.Hotel{}, fmt.Errorf("decode amenities for %s: %w", h.ID, err)
	}
	if len(h.Amenities) == 0 {
		h.Amenities = nil
	}
	return h, nil
}

// marshalAmenities stores amenities as canonical JSON, "[]" when empty.
func marshalAmenities(amenities []string) (string, error) {
	if len(amenities) == 0 {
		return "[]", nil
	}
	b, err := value.MarshalCanonical(value.From(amenities))
	if err != nil {
		return "", fmt.Errorf("marshal amenities: %w", err)
	}
	return string(b), nil
}
