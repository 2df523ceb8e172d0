package entity

import "time"

// EmailConfig configuración única del reporte mensual por email.
type EmailConfig struct {
	Recipient string
	SendDay   int // 1..31; >= 30 se envía el último día si el mes es más corto
	Enabled   bool
	UpdatedBy string
	UpdatedAt *time.Time
}

// DefaultEmailConfig valores cuando aún no se ha configurado.
func DefaultEmailConfig() *EmailConfig {
	return &EmailConfig{SendDay: 1}
}
