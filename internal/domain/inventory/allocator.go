package inventory

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
)

// ErrNoDemand no hay unidades históricas sobre las cuales calcular proporciones.
var ErrNoDemand = errors.New("sin demanda histórica")

// Distribute reparte total unidades en proporción a unitsByCity (método del mayor residuo).
//
// Cada ciudad recibe floor(units * total / Σunits); las unidades que sobran por redondeo
// se asignan una a una a las ciudades con mayor residuo fraccionario (empate: mayor venta
// histórica, luego nombre). Con aritmética entera el resultado es exacto:
// Σ asignaciones == total, y una ciudad con 0 ventas recibe 0.
// units * total se descompone como units*q + units*r/Σunits para no desbordar con total grande.
func Distribute(unitsByCity map[string]int, total int) (map[string]int, error) {
	if total < 0 {
		return nil, fmt.Errorf("total negativo %d", total)
	}
	var sumUnits int64
	for _, u := range unitsByCity {
		if u > 0 {
			sumUnits += int64(u)
		}
	}
	if sumUnits == 0 {
		return nil, ErrNoDemand
	}

	type share struct {
		city      string
		units     int64
		remainder int64 // numerador del residuo sobre sumUnits
	}

	q, r := int64(total)/sumUnits, int64(total)%sumUnits
	out := make(map[string]int, len(unitsByCity))
	shares := make([]share, 0, len(unitsByCity))
	var assigned int64
	for city, u := range unitsByCity {
		if u <= 0 {
			out[city] = 0
			continue
		}
		// u*r < Σunits², producto en 128 bits.
		hi, lo := bits.Mul64(uint64(u), uint64(r))
		extra, rem := bits.Div64(hi, lo, uint64(sumUnits))
		base := int64(u)*q + int64(extra)
		out[city] = int(base)
		assigned += base
		shares = append(shares, share{city: city, units: int64(u), remainder: int64(rem)})
	}

	residue := int64(total) - assigned
	if residue == 0 {
		return out, nil
	}
	if residue < 0 || residue > int64(len(shares)) {
		return nil, fmt.Errorf("reparto inconsistente: residuo %d con %d ciudades", residue, len(shares))
	}

	sort.Slice(shares, func(i, j int) bool {
		a, b := shares[i], shares[j]
		if a.remainder != b.remainder {
			return a.remainder > b.remainder
		}
		if a.units != b.units {
			return a.units > b.units
		}
		return a.city < b.city
	})
	// residue < len(shares): la suma de residuos fraccionarios es exactamente residue.
	for i := int64(0); i < residue; i++ {
		out[shares[i].city]++
	}
	return out, nil
}
