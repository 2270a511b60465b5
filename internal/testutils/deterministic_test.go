package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	coursectx "courseforge/internal/context"
)

func TestGenerateUUID_DeterministicInTestMode(t *testing.T) {
	ResetTestCounters()
	ctx := coursectx.New()
	ctx.SetTestMode(true)

	assert.Equal(t, "00000001-0000-4000-8000-000000000001", GenerateUUID(ctx))
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", GenerateUUID(ctx))
}

func TestGenerateUUID_RandomInProduction(t *testing.T) {
	ctx := coursectx.New()

	first := GenerateUUID(ctx)
	second := GenerateUUID(ctx)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, 36)
}

func TestGetCurrentTime_IncrementsInTestMode(t *testing.T) {
	ResetTestCounters()
	ctx := coursectx.New()
	ctx.SetTestMode(true)

	first := GetCurrentTime(ctx)
	second := GetCurrentTime(ctx)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC), first)
	assert.Equal(t, time.Second, second.Sub(first))
}

func TestResetTestCounters(t *testing.T) {
	ctx := coursectx.New()
	ctx.SetTestMode(true)

	_ = GenerateUUID(ctx)
	ResetTestCounters()
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", GenerateUUID(ctx))
}
