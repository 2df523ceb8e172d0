package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/negocio-api/internal/domain"
)

// DateLayout formato de fechas en query params y reportes.
const DateLayout = "2006-01-02"

// EndOfDay último instante del día de t (rangos inclusivos).
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// StartOfDay medianoche del día de t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate interpreta YYYY-MM-DD en la zona de now; vacío devuelve el día de now.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return StartOfDay(now), nil
	}
	d, err := time.ParseInLocation(DateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida, use YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// ParsePeriod rango inclusivo [start 00:00, end 23:59:59.999].
// Sin start se usa el primer día del mes de now; sin end, el día de now.
func ParsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else if start, err = ParseDate(startStr, now); err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDay, err := ParseDate(endStr, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = EndOfDay(endDay)
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: la fecha inicial no puede ser posterior a la final", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// ParseMonth interpreta YYYY-MM; vacío devuelve el mes anterior a now.
// Devuelve el rango inclusivo del mes.
func ParseMonth(s string, now time.Time) (start, end time.Time, err error) {
	if s == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	} else {
		start, err = time.ParseInLocation("2006-01", s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: mes %q inválido, use YYYY-MM", domain.ErrInvalidInput, s)
		}
	}
	end = EndOfDay(start.AddDate(0, 1, -1))
	return start, end, nil
}
