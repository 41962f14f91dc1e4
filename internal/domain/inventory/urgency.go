package inventory

// Urgency evaluación de reposición de un (ciudad, producto).
type Urgency struct {
	Urgent         bool
	ColdStart      bool    // sin ventas en la ventana: se comparó contra el nivel de reorden
	AvgDaily       float64 // unidades promedio por día en la ventana
	DemandEstimate float64 // AvgDaily * windowDays
	Rank           float64 // stock / (DemandEstimate + 1); menor = más urgente
}

// EvaluateUrgency decide si un ítem requiere reposición urgente.
//
// Con ventas recientes: urgente si stock < thresholdRatio * AvgDaily * windowDays.
// Sin ventas recientes (cold start): urgente si stock < reorderLevel.
func EvaluateUrgency(stock, reorderLevel, unitsInWindow, windowDays int, thresholdRatio float64) Urgency {
	u := Urgency{}
	if windowDays > 0 && unitsInWindow > 0 {
		u.AvgDaily = float64(unitsInWindow) / float64(windowDays)
		u.DemandEstimate = u.AvgDaily * float64(windowDays)
		u.Urgent = float64(stock) < thresholdRatio*u.DemandEstimate
	} else {
		u.ColdStart = true
		u.Urgent = stock < reorderLevel
	}
	u.Rank = float64(stock) / (u.DemandEstimate + 1)
	return u
}

// MoreUrgent orden total: menor rank primero, luego menor stock absoluto.
// Devuelve false en empate completo; el caller desempata por clave estable.
func MoreUrgent(rankA float64, stockA int, rankB float64, stockB int) bool {
	if rankA != rankB {
		return rankA < rankB
	}
	return stockA < stockB
}
