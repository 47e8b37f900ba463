package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Listing {
	return []Listing{
		{
			Producto:   "Casa Moderna",
			Ubicacion:  "Zona Norte",
			Referencia: "Casa Moderna en Zona Norte",
			Precio:     100,
			Estatus:    "Disponible",
			Direccion:  "Calle Principal #123, Colonia Centro",
			Operacion:  "Venta",
		},
		{
			Producto:   "Departamento Lujo",
			Ubicacion:  "Centro",
			Referencia: "Departamento Lujo en Centro",
			Precio:     300,
			Estatus:    "Reservado",
			Direccion:  "Ave. Reforma #456, Torre Elite, Piso 8",
			Operacion:  "Renta",
		},
		{
			Producto:   "Casa Familiar",
			Ubicacion:  "Sur",
			Referencia: "Casa Familiar en Sur",
			Precio:     200,
			Estatus:    "Disponible",
			Direccion:  "Privada Los Pinos #789, Residencial del Valle",
			Operacion:  "Venta",
		},
	}
}

func prices(rows []Listing) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Precio
	}
	return out
}

func TestApplySortsDescendingByDefault(t *testing.T) {
	got := Apply(sample(), Query{})
	assert.Equal(t, []float64{300, 200, 100}, prices(got))
}

func TestApplySortsAscendingWhenRequested(t *testing.T) {
	got := Apply(sample(), Query{PriceSort: "asc"})
	assert.Equal(t, []float64{100, 200, 300}, prices(got))
}

func TestApplySearchMatchesSingleAddress(t *testing.T) {
	got := Apply(sample(), Query{Search: "torre elite"})
	require.Len(t, got, 1)
	assert.Equal(t, "Departamento Lujo", got[0].Producto)
}

func TestApplyFiltersBeforeSorting(t *testing.T) {
	got := Apply(sample(), Query{Operacion: "venta", PriceSort: "asc"})
	require.Len(t, got, 2)
	assert.Equal(t, []float64{100, 200}, prices(got))
}

func TestApplyCategoricalWildcards(t *testing.T) {
	assert.Len(t, Apply(sample(), Query{Producto: "all"}), 3)
	assert.Len(t, Apply(sample(), Query{Producto: "todos"}), 3)
	assert.Len(t, Apply(sample(), Query{Producto: "Casa Moderna"}), 1)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := sample()
	_ = Apply(rows, Query{PriceSort: "asc"})
	assert.Equal(t, []float64{100, 300, 200}, prices(rows))
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Disponible": StatusDisponible,
		"reservado":  StatusReservado,
		" Vendido ":  StatusVendido,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStatus("ocupado")
	assert.Error(t, err)
}

func TestPatchUpdatesOnlyMatchingRow(t *testing.T) {
	rows := sample()
	got := Patch(rows, "Casa Moderna en Zona Norte", StatusVendido)
	assert.Equal(t, "Vendido", got[0].Estatus)
	assert.Equal(t, "Reservado", got[1].Estatus)
	// input untouched
	assert.Equal(t, "Disponible", rows[0].Estatus)
}
