package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-api/internal/application/dto"
	"github.com/jhoicas/negocio-api/internal/domain"
)

func TestParsePeriod_FinInclusivo(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	start, end, err := dto.ParsePeriod("2026-03-01", "2026-03-10", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999999, time.UTC), end)

	start, end, err = dto.ParsePeriod("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 15, end.Day())
}

func TestParsePeriod_Invalido(t *testing.T) {
	now := time.Now()
	_, _, err := dto.ParsePeriod("2026-13-01", "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = dto.ParsePeriod("2026-03-10", "2026-03-01", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	start, end, err := dto.ParseMonth("2024-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 29, end.Day(), "año bisiesto")

	start, _, err = dto.ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, time.February, start.Month(), "por defecto el mes anterior")
}
