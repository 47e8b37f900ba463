// Package listing implements the derived view over the live listings feed:
// free-text search, categorical filters and price ordering. All operations
// are pure; input slices are never mutated.
package listing

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the ESTATUS column of a listing row. Any status may be set from
// any other; transitions only happen through an explicit user action.
type Status string

const (
	StatusDisponible Status = "Disponible"
	StatusReservado  Status = "Reservado"
	StatusVendido    Status = "Vendido"
)

// ParseStatus validates a user-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disponible":
		return StatusDisponible, nil
	case "reservado":
		return StatusReservado, nil
	case "vendido":
		return StatusVendido, nil
	default:
		return "", fmt.Errorf("unknown listing status %q", s)
	}
}

// Listing is one row of the spreadsheet feed. JSON tags preserve the sheet's
// header names verbatim.
type Listing struct {
	Producto     string  `json:"Producto"`
	Ubicacion    string  `json:"Ubicación (referencia)"`
	Referencia   string  `json:"Referencia"`
	Precio       float64 `json:"PRECIO TOTAL"`
	Metros2      float64 `json:"Metros2"`
	Recamaras    float64 `json:"N° de recámaras"`
	Banos        float64 `json:"N° de Baños"`
	Estatus      string  `json:"ESTATUS"`
	Direccion    string  `json:"Dirección Completa"`
	Operacion    string  `json:"Renta/Venta"`
	FichaTecnica string  `json:"Ficha Tecnica,omitempty"`
}

// Query holds the user-entered view predicates.
type Query struct {
	// Search matches case-insensitively against Producto, Ubicacion,
	// Direccion and Referencia.
	Search string
	// Producto and Operacion are categorical equality filters; empty,
	// "all" and "todos" match everything.
	Producto  string
	Operacion string
	// PriceSort is "asc" or "desc"; anything else sorts descending.
	PriceSort string
}

// Apply filters rows by the query, then stable-sorts by price. Filtering
// happens before sorting; the default order is price descending.
func Apply(rows []Listing, q Query) []Listing {
	out := make([]Listing, 0, len(rows))
	for _, row := range rows {
		if matches(row, q) {
			out = append(out, row)
		}
	}
	asc := q.PriceSort == "asc"
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return out[i].Precio < out[j].Precio
		}
		return out[i].Precio > out[j].Precio
	})
	return out
}

func matches(row Listing, q Query) bool {
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		hit := strings.Contains(strings.ToLower(row.Producto), term) ||
			strings.Contains(strings.ToLower(row.Ubicacion), term) ||
			strings.Contains(strings.ToLower(row.Direccion), term) ||
			strings.Contains(strings.ToLower(row.Referencia), term)
		if !hit {
			return false
		}
	}
	if !matchesCategory(row.Producto, q.Producto) {
		return false
	}
	return matchesCategory(row.Operacion, q.Operacion)
}

func matchesCategory(value, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" || filter == "all" || filter == "todos" {
		return true
	}
	return strings.ToLower(value) == filter
}

// Patch returns a copy of rows with the status of the listing identified by
// referencia replaced. It is the optimistic local update applied after a
// mutation is forwarded upstream; the feed re-fetch remains authoritative.
func Patch(rows []Listing, referencia string, status Status) []Listing {
	out := make([]Listing, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Referencia == referencia {
			out[i].Estatus = string(status)
		}
	}
	return out
}
