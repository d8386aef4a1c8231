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

var appointmentColumns = []any{
	"id", "patient_id", "staff_id", "department", "scheduled_at",
	"duration_min", "status", "reason", "notes", "created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":           appointment.ID,
		"patient_id":   appointment.PatientID,
		"staff_id":     appointment.StaffID,
		"department":   appointment.Department,
		"scheduled_at": appointment.ScheduledAt,
		"duration_min": appointment.DurationMin,
		"status":       appointment.Status,
		"reason":       appointment.Reason,
		"notes":        appointment.Notes,
		"created_at":   appointment.CreatedAt,
		"updated_at":   appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// Update updates an appointment
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	appointment.UpdatedAt = time.Now()

	record := goqu.Record{
		"staff_id":     appointment.StaffID,
		"department":   appointment.Department,
		"scheduled_at": appointment.ScheduledAt,
		"duration_min": appointment.DurationMin,
		"status":       appointment.Status,
		"reason":       appointment.Reason,
		"notes":        appointment.Notes,
		"updated_at":   appointment.UpdatedAt,
	}

	query, args, err := a.db.Update("appointments").
		Set(record).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	return nil
}

// Cancel marks an appointment as cancelled
func (a *AppointmentAdapter) Cancel(ctx context.Context, id string) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"status":     entities.AppointmentStatusCancelled,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cancel query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to cancel appointment", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

// List retrieves appointments matching the filter
func (a *AppointmentAdapter) List(ctx context.Context, filter entities.AppointmentFilter) ([]*entities.Appointment, error) {
	conds := []goqu.Expression{}
	if filter.PatientID != "" {
		conds = append(conds, goqu.Ex{"patient_id": filter.PatientID})
	}
	if filter.StaffID != "" {
		conds = append(conds, goqu.Ex{"staff_id": filter.StaffID})
	}
	if filter.Department != "" {
		conds = append(conds, goqu.Ex{"department": filter.Department})
	}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}
	if filter.From != nil {
		conds = append(conds, goqu.I("scheduled_at").Gte(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, goqu.I("scheduled_at").Lt(*filter.To))
	}

	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.And(conds...)).
		Order(goqu.I("scheduled_at").Asc())

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
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}

	return appointments, nil
}

// CountToday returns the number of non-cancelled appointments scheduled today
func (a *AppointmentAdapter) CountToday(ctx context.Context) (int, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("appointments").
		Where(
			goqu.I("scheduled_at").Gte(dayStart),
			goqu.I("scheduled_at").Lt(dayEnd),
			goqu.I("status").Neq(entities.AppointmentStatusCancelled),
		).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count appointments", err)
	}

	return count, nil
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var reason, notes sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.StaffID,
		&appointment.Department,
		&appointment.ScheduledAt,
		&appointment.DurationMin,
		&appointment.Status,
		&reason,
		&notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Reason = reason.String
	appointment.Notes = notes.String

	return appointment, nil
}
