package entity

// Lifecycle estado de vida de los registros de catálogo (insumos, cuentas, proveedores, cajas).
// Reemplaza la bandera "activo": la única transición válida es active -> retired.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleRetired Lifecycle = "retired"
)

// IsActive indica si el registro sigue vigente.
func (l Lifecycle) IsActive() bool { return l == LifecycleActive }

// Valid indica si el valor pertenece al conjunto cerrado.
func (l Lifecycle) Valid() bool {
	return l == LifecycleActive || l == LifecycleRetired
}

// Retire aplica la transición active -> retired. Retirar dos veces no tiene efecto.
// Devuelve true si hubo cambio.
func (l *Lifecycle) Retire() bool {
	if *l == LifecycleRetired {
		return false
	}
	*l = LifecycleRetired
	return true
}
