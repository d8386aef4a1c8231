package resilience_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/hospital-ops-dashboard/backend/internal/resilience"
)

func TestBreakerRegistry_OpensAtThreshold(t *testing.T) {
	registry := resilience.NewBreakerRegistry(3, time.Minute)

	registry.RecordFailure("fetch")
	registry.RecordFailure("fetch")
	assert.Equal(t, resilience.BreakerClosed, registry.State("fetch"))
	assert.True(t, registry.Allow("fetch"))

	registry.RecordFailure("fetch")
	assert.Equal(t, resilience.BreakerOpen, registry.State("fetch"))
	assert.False(t, registry.Allow("fetch"))
	assert.Equal(t, 3, registry.FailureCount("fetch"))
}

func TestBreakerRegistry_PerOperationIsolation(t *testing.T) {
	registry := resilience.NewBreakerRegistry(1, time.Minute)

	registry.RecordFailure("fetch_a")
	assert.False(t, registry.Allow("fetch_a"))
	assert.True(t, registry.Allow("fetch_b"))
	assert.Equal(t, resilience.BreakerClosed, registry.State("fetch_b"))
}

func TestBreakerRegistry_HalfOpenAfterCooldown(t *testing.T) {
	registry := resilience.NewBreakerRegistry(1, 20*time.Millisecond)

	registry.RecordFailure("fetch")
	assert.False(t, registry.Allow("fetch"))

	time.Sleep(30 * time.Millisecond)

	// Cool-down elapsed: one trial call is admitted
	assert.True(t, registry.Allow("fetch"))
	assert.Equal(t, resilience.BreakerHalfOpen, registry.State("fetch"))
}

func TestBreakerRegistry_FailedTrialReopens(t *testing.T) {
	registry := resilience.NewBreakerRegistry(2, 20*time.Millisecond)

	registry.RecordFailure("fetch")
	registry.RecordFailure("fetch")
	time.Sleep(30 * time.Millisecond)
	assert.True(t, registry.Allow("fetch"))

	registry.RecordFailure("fetch")
	assert.Equal(t, resilience.BreakerOpen, registry.State("fetch"))
	assert.False(t, registry.Allow("fetch"))
}

func TestBreakerRegistry_SuccessResets(t *testing.T) {
	registry := resilience.NewBreakerRegistry(2, time.Minute)

	registry.RecordFailure("fetch")
	registry.RecordFailure("fetch")
	assert.Equal(t, resilience.BreakerOpen, registry.State("fetch"))

	registry.RecordSuccess("fetch")
	assert.Equal(t, resilience.BreakerClosed, registry.State("fetch"))
	assert.Equal(t, 0, registry.FailureCount("fetch"))
	assert.True(t, registry.Allow("fetch"))
}

func TestBreakerRegistry_DefaultsOnNonPositiveArgs(t *testing.T) {
	registry := resilience.NewBreakerRegistry(0, 0)

	for i := 0; i < resilience.DefaultFailureThreshold-1; i++ {
		registry.RecordFailure("fetch")
	}
	assert.Equal(t, resilience.BreakerClosed, registry.State("fetch"))

	registry.RecordFailure("fetch")
	assert.Equal(t, resilience.BreakerOpen, registry.State("fetch"))
}
