package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/adapters/database"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/entities"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/domain/repositories"
	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

var patientColumns = []string{
	"id", "patient_number", "first_name", "last_name", "date_of_birth",
	"gender", "phone", "email", "address", "emergency_contact_name",
	"emergency_contact_phone", "blood_type", "allergies",
	"medical_history", "status", "created_at", "updated_at",
}

func setupPatientAdapter(t *testing.T) (repositories.PatientRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := database.NewPatientAdapter(postgres.NewClientWithDB(db))
	return adapter, mock
}

func patientRow(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(patientColumns).AddRow(
		id, "PAT-0001", "Adaeze", "Okafor", now.AddDate(-34, 0, 0),
		"female", "+234-801-0000000", nil, nil, nil,
		nil, "O+", nil,
		nil, "active", now, now,
	)
}

func TestPatientAdapter_GetByID(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectQuery(`SELECT (.+) FROM "patients" WHERE \("id" = 'p-1'\)`).
		WillReturnRows(patientRow("p-1"))

	patient, err := adapter.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", patient.ID)
	assert.Equal(t, "Adaeze", patient.FirstName)
	assert.Equal(t, "O+", patient.BloodType)
	assert.Empty(t, patient.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_GetByIDNotFound(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectQuery(`SELECT (.+) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows(patientColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCodeNotFound, appErr.Code)
}

func TestPatientAdapter_Create(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectExec(`INSERT INTO "patients"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	err := adapter.Create(context.Background(), &entities.Patient{
		ID:            "p-1",
		PatientNumber: "PAT-0001",
		FirstName:     "Adaeze",
		LastName:      "Okafor",
		DateOfBirth:   now.AddDate(-34, 0, 0),
		Gender:        "female",
		Status:        entities.PatientStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_UpdateNotFound(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectExec(`UPDATE "patients" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), &entities.Patient{ID: "missing"})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCodeNotFound, appErr.Code)
}

func TestPatientAdapter_ListAppliesFilter(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectQuery(`SELECT (.+) FROM "patients" WHERE \(\("status" = 'active'\) AND \("blood_type" = 'O\+'\)\) ORDER BY "last_name" ASC, "first_name" ASC LIMIT 10`).
		WillReturnRows(patientRow("p-1"))

	patients, err := adapter.List(context.Background(), entities.PatientFilter{
		Status:    entities.PatientStatusActive,
		BloodType: "O+",
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p-1", patients[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientAdapter_Count(t *testing.T) {
	adapter, mock := setupPatientAdapter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := adapter.Count(context.Background(), entities.PatientFilter{})
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
