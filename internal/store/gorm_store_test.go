package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"inmocrm/pkg/domain"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "crm.db")), &gorm.Config{})
	require.NoError(t, err)
	s, err := NewGormStoreFromDB(db)
	require.NoError(t, err)
	return s
}

func TestGormStoreAssignsIDsAndTimestamps(t *testing.T) {
	s := newSQLiteStore(t)

	prop, err := s.CreateProperty(domain.Property{
		UserID: 1, Title: "Casa Moderna", Description: "d", Price: 2500000,
		Address: "Calle Principal 123", Bedrooms: 3, Bathrooms: 2, Area: 180,
		Status: domain.PropertyAvailable,
	})
	require.NoError(t, err)
	assert.NotZero(t, prop.ID)
	assert.False(t, prop.CreatedAt.IsZero())

	again, err := s.CreateProperty(prop)
	require.NoError(t, err)
	assert.NotEqual(t, prop.ID, again.ID)
}

func TestGormStoreListScopesByOwner(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.CreateClient(domain.Client{UserID: 1, Name: "Ana", Email: "ana@example.com", Phone: "555", Status: domain.ClientActive})
	require.NoError(t, err)
	_, err = s.CreateClient(domain.Client{UserID: 2, Name: "Luis", Email: "luis@example.com", Phone: "556", Status: domain.ClientInactive})
	require.NoError(t, err)

	mine, err := s.ListClients(1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ana", mine[0].Name)

	all, err := s.ListAllClients()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormStoreRoundTripsOptionalFields(t *testing.T) {
	s := newSQLiteStore(t)

	budget := 500000
	notes := "prefers ground floor"
	created, err := s.CreateClient(domain.Client{
		UserID: 1, Name: "Ana", Email: "ana@example.com", Phone: "555",
		Budget: &budget, Notes: &notes, Status: domain.ClientActive,
	})
	require.NoError(t, err)

	listed, err := s.ListClients(1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Budget)
	assert.Equal(t, budget, *listed[0].Budget)
	require.NotNil(t, listed[0].Notes)
	assert.Equal(t, notes, *listed[0].Notes)
	assert.Nil(t, listed[0].PropertyType)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestGormStoreUserLookups(t *testing.T) {
	s := newSQLiteStore(t)

	created, err := s.CreateUser(domain.User{Email: "a@example.com", Name: "A", PasswordHash: "x"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	ok, err := s.HasUserEmail("a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	byEmail, found, err := s.GetUserByEmail("a@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, byEmail.ID)

	_, found, err = s.GetUserByID(created.ID + 100)
	require.NoError(t, err)
	assert.False(t, found)

	count, err := s.UserCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGormStoreAppointmentAndSaleRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)

	when := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	appt, err := s.CreateAppointment(domain.Appointment{
		UserID: 1, ClientID: 10, PropertyID: 20, Date: when,
		Status: domain.AppointmentScheduled,
	})
	require.NoError(t, err)
	assert.NotZero(t, appt.ID)

	sale, err := s.CreateSale(domain.Sale{
		UserID: 1, PropertyID: 20, ClientID: 10, Amount: 3200000, Date: when,
		Status: domain.SalePending,
	})
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)

	appts, err := s.ListAppointments(1)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.True(t, appts[0].Date.Equal(when))

	sales, err := s.ListAllSales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, domain.SalePending, sales[0].Status)
}
