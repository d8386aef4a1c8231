package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/hospital-ops-dashboard/backend/pkg/errors"
)

func TestHistory_RecordAndLen(t *testing.T) {
	history := apperrors.NewHistory(5)
	assert.Equal(t, 0, history.Len())

	history.Record(apperrors.NewServerError("boom", nil), "patients", true)
	history.Record(nil, "ignored", false)

	assert.Equal(t, 1, history.Len())
}

func TestHistory_SnapshotOldestFirst(t *testing.T) {
	history := apperrors.NewHistory(5)
	for i := 0; i < 3; i++ {
		history.Record(apperrors.NewServerError(fmt.Sprintf("err-%d", i), nil), "patients", false)
	}

	records := history.Snapshot()
	require.Len(t, records, 3)
	assert.Equal(t, "err-0", records[0].Message)
	assert.Equal(t, "err-2", records[2].Message)
}

func TestHistory_RingOverwritesOldest(t *testing.T) {
	history := apperrors.NewHistory(3)
	for i := 0; i < 5; i++ {
		history.Record(apperrors.NewServerError(fmt.Sprintf("err-%d", i), nil), "patients", false)
	}

	assert.Equal(t, 3, history.Len())

	records := history.Snapshot()
	require.Len(t, records, 3)
	assert.Equal(t, "err-2", records[0].Message)
	assert.Equal(t, "err-4", records[2].Message)
}

func TestHistory_RecentNewestFirst(t *testing.T) {
	history := apperrors.NewHistory(10)
	for i := 0; i < 4; i++ {
		history.Record(apperrors.NewServerError(fmt.Sprintf("err-%d", i), nil), "patients", false)
	}

	recent := history.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "err-3", recent[0].Message)
	assert.Equal(t, "err-2", recent[1].Message)

	all := history.Recent(100)
	assert.Len(t, all, 4)
}

func TestHistory_RecordFields(t *testing.T) {
	history := apperrors.NewHistory(5)
	history.Record(apperrors.NewAuthError("denied"), "staff", true)

	records := history.Snapshot()
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, apperrors.ErrorCodeAuth, rec.Code)
	assert.Equal(t, "denied", rec.Message)
	assert.Equal(t, "staff", rec.Context)
	assert.False(t, rec.Retryable)
	assert.True(t, rec.FallbackAvailable)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestHistory_DefaultSize(t *testing.T) {
	history := apperrors.NewHistory(0)
	for i := 0; i < apperrors.DefaultHistorySize+10; i++ {
		history.Record(apperrors.NewServerError("boom", nil), "patients", false)
	}

	assert.Equal(t, apperrors.DefaultHistorySize, history.Len())
}
