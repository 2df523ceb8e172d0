package entity

import "time"

// StockRecord existencias de un insumo (1:1 con Supply, se crea en la primera escritura).
// Reserved es una retención contra OnHand, no un subconjunto descontado.
type StockRecord struct {
	SupplyID  string
	OnHand    int64
	Reserved  int64
	Location  string
	UpdatedAt time.Time
}

// Available cantidad que se puede reservar o vender sin tocar reservas.
func (s *StockRecord) Available() int64 {
	return s.OnHand - s.Reserved
}

// OverReserved indica reservas por encima de lo disponible (p.ej. tras un ajuste a la baja).
func (s *StockRecord) OverReserved() bool {
	return s.Reserved > s.OnHand
}
