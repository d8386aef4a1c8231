package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

var bedColumns = []any{
	"id", "bed_number", "ward", "floor", "bed_type", "status",
	"patient_id", "created_at", "updated_at",
}

// BedAdapter implements the BedRepository interface
type BedAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBedAdapter creates a new bed adapter
func NewBedAdapter(client *postgres.Client) repositories.BedRepository {
	return &BedAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new bed
func (a *BedAdapter) Create(ctx context.Context, bed *entities.Bed) error {
	record := goqu.Record{
		"id":         bed.ID,
		"bed_number": bed.BedNumber,
		"ward":       bed.Ward,
		"floor":      bed.Floor,
		"bed_type":   bed.BedType,
		"status":     bed.Status,
		"patient_id": bed.PatientID,
		"created_at": bed.CreatedAt,
		"updated_at": bed.UpdatedAt,
	}

	query, args, err := a.db.Insert("beds").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create bed", err)
	}

	return nil
}

// GetByID retrieves a bed by ID
func (a *BedAdapter) GetByID(ctx context.Context, id string) (*entities.Bed, error) {
	query, args, err := a.db.Select(bedColumns...).
		From("beds").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	bed, err := scanBed(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bed with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get bed", err)
	}

	return bed, nil
}

// Update updates a bed
func (a *BedAdapter) Update(ctx context.Context, bed *entities.Bed) error {
	bed.UpdatedAt = time.Now()

	record := goqu.Record{
		"bed_number": bed.BedNumber,
		"ward":       bed.Ward,
		"floor":      bed.Floor,
		"bed_type":   bed.BedType,
		"status":     bed.Status,
		"patient_id": bed.PatientID,
		"updated_at": bed.UpdatedAt,
	}

	query, args, err := a.db.Update("beds").
		Set(record).
		Where(goqu.Ex{"id": bed.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update bed", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bed with id %s not found", bed.ID))
	}

	return nil
}

// List retrieves beds matching the filter
func (a *BedAdapter) List(ctx context.Context, filter entities.BedFilter) ([]*entities.Bed, error) {
	conds := []goqu.Expression{}
	if filter.Ward != "" {
		conds = append(conds, goqu.Ex{"ward": filter.Ward})
	}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}

	ds := a.db.Select(bedColumns...).
		From("beds").
		Where(goqu.And(conds...)).
		Order(goqu.I("ward").Asc(), goqu.I("bed_number").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list beds", err)
	}
	defer rows.Close()

	var beds []*entities.Bed
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bed", err)
		}
		beds = append(beds, bed)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate beds", err)
	}

	return beds, nil
}

// Assign places a patient in a bed
func (a *BedAdapter) Assign(ctx context.Context, bedID, patientID string) error {
	query, args, err := a.db.Update("beds").
		Set(goqu.Record{
			"status":     entities.BedStatusOccupied,
			"patient_id": patientID,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": bedID, "status": entities.BedStatusAvailable}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build assign query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to assign bed", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("available bed with id %s not found", bedID))
	}

	return nil
}

// Release frees a bed and marks it for cleaning
func (a *BedAdapter) Release(ctx context.Context, bedID string) error {
	query, args, err := a.db.Update("beds").
		Set(goqu.Record{
			"status":     entities.BedStatusCleaning,
			"patient_id": nil,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": bedID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build release query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to release bed", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bed with id %s not found", bedID))
	}

	return nil
}

// CountByStatus returns bed counts grouped by status
func (a *BedAdapter) CountByStatus(ctx context.Context) (map[entities.BedStatus]int, error) {
	query, args, err := a.db.Select("status", goqu.COUNT("*").As("count")).
		From("beds").
		GroupBy("status").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build count query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count beds", err)
	}
	defer rows.Close()

	counts := make(map[entities.BedStatus]int)
	for rows.Next() {
		var status entities.BedStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan bed count", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bed counts", err)
	}

	return counts, nil
}

func scanBed(row rowScanner) (*entities.Bed, error) {
	bed := &entities.Bed{}
	var patientID sql.NullString

	err := row.Scan(
		&bed.ID,
		&bed.BedNumber,
		&bed.Ward,
		&bed.Floor,
		&bed.BedType,
		&bed.Status,
		&patientID,
		&bed.CreatedAt,
		&bed.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientID.Valid {
		bed.PatientID = &patientID.String
	}

	return bed, nil
}
