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

var staffColumns = []any{
	"id", "staff_number", "first_name", "last_name", "role",
	"department", "phone", "email", "status", "shift_start",
	"shift_end", "created_at", "updated_at",
}

// StaffAdapter implements the StaffRepository interface
type StaffAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewStaffAdapter creates a new staff adapter
func NewStaffAdapter(client *postgres.Client) repositories.StaffRepository {
	return &StaffAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new staff member
func (a *StaffAdapter) Create(ctx context.Context, staff *entities.Staff) error {
	record := goqu.Record{
		"id":           staff.ID,
		"staff_number": staff.StaffNumber,
		"first_name":   staff.FirstName,
		"last_name":    staff.LastName,
		"role":         staff.Role,
		"department":   staff.Department,
		"phone":        staff.Phone,
		"email":        staff.Email,
		"status":       staff.Status,
		"shift_start":  staff.ShiftStart,
		"shift_end":    staff.ShiftEnd,
		"created_at":   staff.CreatedAt,
		"updated_at":   staff.UpdatedAt,
	}

	query, args, err := a.db.Insert("staff").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create staff member", err)
	}

	return nil
}

// GetByID retrieves a staff member by ID
func (a *StaffAdapter) GetByID(ctx context.Context, id string) (*entities.Staff, error) {
	query, args, err := a.db.Select(staffColumns...).
		From("staff").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	staff, err := scanStaff(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("staff member with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get staff member", err)
	}

	return staff, nil
}

// Update updates a staff member
func (a *StaffAdapter) Update(ctx context.Context, staff *entities.Staff) error {
	staff.UpdatedAt = time.Now()

	record := goqu.Record{
		"first_name":  staff.FirstName,
		"last_name":   staff.LastName,
		"role":        staff.Role,
		"department":  staff.Department,
		"phone":       staff.Phone,
		"email":       staff.Email,
		"status":      staff.Status,
		"shift_start": staff.ShiftStart,
		"shift_end":   staff.ShiftEnd,
		"updated_at":  staff.UpdatedAt,
	}

	query, args, err := a.db.Update("staff").
		Set(record).
		Where(goqu.Ex{"id": staff.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update staff member", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("staff member with id %s not found", staff.ID))
	}

	return nil
}

// Delete removes a staff member
func (a *StaffAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("staff").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete staff member", err)
	}

	return nil
}

// List retrieves staff matching the filter
func (a *StaffAdapter) List(ctx context.Context, filter entities.StaffFilter) ([]*entities.Staff, error) {
	conds := []goqu.Expression{}
	if filter.Role != "" {
		conds = append(conds, goqu.Ex{"role": filter.Role})
	}
	if filter.Department != "" {
		conds = append(conds, goqu.Ex{"department": filter.Department})
	}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, goqu.Or(
			goqu.I("first_name").ILike(pattern),
			goqu.I("last_name").ILike(pattern),
		))
	}

	ds := a.db.Select(staffColumns...).
		From("staff").
		Where(goqu.And(conds...)).
		Order(goqu.I("last_name").Asc())

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
		return nil, apperrors.NewInternalError("failed to list staff", err)
	}
	defer rows.Close()

	var members []*entities.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan staff member", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate staff", err)
	}

	return members, nil
}

// CountOnDuty returns the number of staff currently on duty
func (a *StaffAdapter) CountOnDuty(ctx context.Context) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("staff").
		Where(goqu.Ex{"status": entities.StaffStatusOnDuty}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count on-duty staff", err)
	}

	return count, nil
}

func scanStaff(row rowScanner) (*entities.Staff, error) {
	staff := &entities.Staff{}
	var phone, email sql.NullString
	var shiftStart, shiftEnd sql.NullTime

	err := row.Scan(
		&staff.ID,
		&staff.StaffNumber,
		&staff.FirstName,
		&staff.LastName,
		&staff.Role,
		&staff.Department,
		&phone,
		&email,
		&staff.Status,
		&shiftStart,
		&shiftEnd,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	staff.Phone = phone.String
	staff.Email = email.String
	staff.ShiftStart = shiftStart.Time
	staff.ShiftEnd = shiftEnd.Time

	return staff, nil
}
