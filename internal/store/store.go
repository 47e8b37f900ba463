package store

import "inmocrm/pkg/domain"

// Store defines persistence operations for CRM records.
//
// Create methods assign the record identifier and creation timestamp and
// return the stored record. Owner-scoped List methods filter on the userId
// foreign key; ListAll variants are reserved for admin callers.
type Store interface {
	// users
	CreateUser(domain.User) (domain.User, error)
	HasUserEmail(email string) (bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id int) (domain.User, bool, error)
	ListUsers() ([]domain.User, error)
	UserCount() (int, error)

	// properties
	ListProperties(userID int) ([]domain.Property, error)
	ListAllProperties() ([]domain.Property, error)
	CreateProperty(domain.Property) (domain.Property, error)

	// clients
	ListClients(userID int) ([]domain.Client, error)
	ListAllClients() ([]domain.Client, error)
	CreateClient(domain.Client) (domain.Client, error)

	// appointments
	ListAppointments(userID int) ([]domain.Appointment, error)
	ListAllAppointments() ([]domain.Appointment, error)
	CreateAppointment(domain.Appointment) (domain.Appointment, error)

	// sales
	ListSales(userID int) ([]domain.Sale, error)
	ListAllSales() ([]domain.Sale, error)
	CreateSale(domain.Sale) (domain.Sale, error)
}

// SessionStore persists session tokens.
type SessionStore interface {
	NewSession(userID int) (string, error)
	GetUserIDByToken(token string) (int, bool, error)
	DeleteSession(token string) error
}
