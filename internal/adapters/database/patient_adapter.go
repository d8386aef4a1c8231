package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

var patientColumns = []any{
	"id", "patient_number", "first_name", "last_name", "date_of_birth",
	"gender", "phone", "email", "address", "emergency_contact_name",
	"emergency_contact_phone", "blood_type", "allergies",
	"medical_history", "status", "created_at", "updated_at",
}

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new patient
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	record := goqu.Record{
		"id":                      patient.ID,
		"patient_number":          patient.PatientNumber,
		"first_name":              patient.FirstName,
		"last_name":               patient.LastName,
		"date_of_birth":           patient.DateOfBirth,
		"gender":                  patient.Gender,
		"phone":                   patient.Phone,
		"email":                   patient.Email,
		"address":                 patient.Address,
		"emergency_contact_name":  patient.EmergencyContactName,
		"emergency_contact_phone": patient.EmergencyContactPhone,
		"blood_type":              patient.BloodType,
		"allergies":               patient.Allergies,
		"medical_history":         patient.MedicalHistory,
		"status":                  patient.Status,
		"created_at":              patient.CreatedAt,
		"updated_at":              patient.UpdatedAt,
	}

	query, args, err := a.db.Insert("patients").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}

	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select(patientColumns...).
		From("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient, err := scanPatient(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	return patient, nil
}

// Update updates a patient
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	patient.UpdatedAt = time.Now()

	record := goqu.Record{
		"first_name":              patient.FirstName,
		"last_name":               patient.LastName,
		"date_of_birth":           patient.DateOfBirth,
		"gender":                  patient.Gender,
		"phone":                   patient.Phone,
		"email":                   patient.Email,
		"address":                 patient.Address,
		"emergency_contact_name":  patient.EmergencyContactName,
		"emergency_contact_phone": patient.EmergencyContactPhone,
		"blood_type":              patient.BloodType,
		"allergies":               patient.Allergies,
		"medical_history":         patient.MedicalHistory,
		"status":                  patient.Status,
		"updated_at":              patient.UpdatedAt,
	}

	query, args, err := a.db.Update("patients").
		Set(record).
		Where(goqu.Ex{"id": patient.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", patient.ID))
	}

	return nil
}

// Delete removes a patient
func (a *PatientAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete patient", err)
	}

	return nil
}

// List retrieves patients matching the filter
func (a *PatientAdapter) List(ctx context.Context, filter entities.PatientFilter) ([]*entities.Patient, error) {
	ds := a.db.Select(patientColumns...).
		From("patients").
		Where(patientFilterEx(filter)).
		Order(goqu.I("last_name").Asc(), goqu.I("first_name").Asc())

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
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	var patients []*entities.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate patients", err)
	}

	return patients, nil
}

// Count returns the number of patients matching the filter
func (a *PatientAdapter) Count(ctx context.Context, filter entities.PatientFilter) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("patients").
		Where(patientFilterEx(filter)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count patients", err)
	}

	return count, nil
}

func patientFilterEx(filter entities.PatientFilter) goqu.Expression {
	conds := []goqu.Expression{}
	if filter.Status != "" {
		conds = append(conds, goqu.Ex{"status": filter.Status})
	}
	if filter.Gender != "" {
		conds = append(conds, goqu.Ex{"gender": filter.Gender})
	}
	if filter.BloodType != "" {
		conds = append(conds, goqu.Ex{"blood_type": filter.BloodType})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, goqu.Or(
			goqu.I("first_name").ILike(pattern),
			goqu.I("last_name").ILike(pattern),
			goqu.I("patient_number").ILike(pattern),
		))
	}
	return goqu.And(conds...)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*entities.Patient, error) {
	patient := &entities.Patient{}
	var phone, email, address, ecName, ecPhone sql.NullString
	var bloodType, allergies, history sql.NullString

	err := row.Scan(
		&patient.ID,
		&patient.PatientNumber,
		&patient.FirstName,
		&patient.LastName,
		&patient.DateOfBirth,
		&patient.Gender,
		&phone,
		&email,
		&address,
		&ecName,
		&ecPhone,
		&bloodType,
		&allergies,
		&history,
		&patient.Status,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	patient.Phone = phone.String
	patient.Email = email.String
	patient.Address = address.String
	patient.EmergencyContactName = ecName.String
	patient.EmergencyContactPhone = ecPhone.String
	patient.BloodType = bloodType.String
	patient.Allergies = allergies.String
	patient.MedicalHistory = history.String

	return patient, nil
}
