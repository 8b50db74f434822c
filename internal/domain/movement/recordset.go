// Package movement contiene el motor de filtros y el cálculo de métricas
// de volumen y perfil de órdenes para los flujos inbound y outbound.
//
// Todo el cálculo se hace en memoria sobre el RecordSet completo cargado al
// inicio de la sesión; no hay agregación incremental ni caché entre eventos.
package movement

import (
	"github.com/jhoicas/dc-flow-dashboard/internal/domain/entity"
)

// RecordSet conjunto de filas de un flujo. Lo posee quien lo cargó; el motor
// solo lo lee, salvo la normalización de fechas que se hace una única vez.
type RecordSet struct {
	Flow entity.Flow
	Rows []entity.Movement

	normalized bool
}

// NewRecordSet envuelve las filas cargadas del origen.
func NewRecordSet(flow entity.Flow, rows []entity.Movement) *RecordSet {
	return &RecordSet{Flow: flow, Rows: rows}
}

// Len número de filas.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Normalize lleva todas las fechas a fecha civil UTC. Idempotente.
func (rs *RecordSet) Normalize() {
	if rs == nil || rs.normalized {
		return
	}
	for i := range rs.Rows {
		rs.Rows[i].Date = entity.NormalizeDate(rs.Rows[i].Date)
	}
	rs.normalized = true
}

// Normalized indica si Normalize ya se ejecutó.
func (rs *RecordSet) Normalized() bool { return rs != nil && rs.normalized }
