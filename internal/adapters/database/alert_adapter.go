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

var alertColumns = []any{
	"id", "source", "severity", "status", "title", "message",
	"entity_id", "created_at", "resolved_at",
}

// AlertAdapter implements the AlertRepository interface
type AlertAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAlertAdapter creates a new alert adapter
func NewAlertAdapter(client *postgres.Client) repositories.AlertRepository {
	return &AlertAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new alert
func (a *AlertAdapter) Create(ctx context.Context, alert *entities.Alert) error {
	record := goqu.Record{
		"id":          alert.ID,
		"source":      alert.Source,
		"severity":    alert.Severity,
		"status":      alert.Status,
		"title":       alert.Title,
		"message":     alert.Message,
		"entity_id":   alert.EntityID,
		"created_at":  alert.CreatedAt,
		"resolved_at": alert.ResolvedAt,
	}

	query, args, err := a.db.Insert("alerts").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create alert", err)
	}

	return nil
}

// GetByID retrieves an alert by ID
func (a *AlertAdapter) GetByID(ctx context.Context, id string) (*entities.Alert, error) {
	query, args, err := a.db.Select(alertColumns...).
		From("alerts").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	alert, err := scanAlert(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("alert with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get alert", err)
	}

	return alert, nil
}

// UpdateStatus transitions an alert's lifecycle state. Resolving an
// alert also stamps resolved_at.
func (a *AlertAdapter) UpdateStatus(ctx context.Context, id string, status entities.AlertStatus) error {
	record := goqu.Record{"status": status}
	if status == entities.AlertStatusResolved {
		record["resolved_at"] = time.Now()
	}

	query, args, err := a.db.Update("alerts").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update alert status", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("alert with id %s not found", id))
	}

	return nil
}

// List retrieves alerts matching the filter
func (a *AlertAdapter) List(ctx context.Context, filter entities.AlertFilter) ([]*entities.Alert, error) {
	conds := []goqu.Expression{}
	if filter.Severity != "" {
		conds = append(conds, goqu.Ex{"severity": filter.Severity})
	}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}
	if filter.Source != "" {
		conds = append(conds, goqu.Ex{"source": filter.Source})
	}

	ds := a.db.Select(alertColumns...).
		From("alerts").
		Where(goqu.And(conds...)).
		Order(goqu.I("created_at").Desc())

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
		return nil, apperrors.NewInternalError("failed to list alerts", err)
	}
	defer rows.Close()

	var alerts []*entities.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan alert", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate alerts", err)
	}

	return alerts, nil
}

// CountActive returns the total and critical counts of unresolved alerts
func (a *AlertAdapter) CountActive(ctx context.Context) (int, int, error) {
	query, args, err := a.db.Select(
		goqu.COUNT("*").As("total"),
		goqu.L("COUNT(*) FILTER (WHERE severity = 'critical')").As("critical"),
	).
		From("alerts").
		Where(goqu.I("status").Neq(entities.AlertStatusResolved)).
		ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total, critical int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total, &critical); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to count active alerts", err)
	}

	return total, critical, nil
}

func scanAlert(row rowScanner) (*entities.Alert, error) {
	alert := &entities.Alert{}
	var entityID sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(
		&alert.ID,
		&alert.Source,
		&alert.Severity,
		&alert.Status,
		&alert.Title,
		&alert.Message,
		&entityID,
		&alert.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	alert.EntityID = entityID.String
	if resolvedAt.Valid {
		alert.ResolvedAt = &resolvedAt.Time
	}

	return alert, nil
}
