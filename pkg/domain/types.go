package domain

import "time"

type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "available"
	PropertySold      PropertyStatus = "sold"
	PropertyRented    PropertyStatus = "rented"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PhotoURL     *string   `json:"photoUrl"`
	ExternalID   *string   `json:"externalId"`
	Admin        bool      `json:"admin"`
	Paid         bool      `json:"paid"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Property struct {
	ID          int            `json:"id"`
	UserID      int            `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       int            `json:"price"`
	Address     string         `json:"address"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Area        int            `json:"area"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type Client struct {
	ID           int          `json:"id"`
	UserID       int          `json:"userId"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Budget       *int         `json:"budget"`
	PropertyType *string      `json:"propertyType"`
	Status       ClientStatus `json:"status"`
	Notes        *string      `json:"notes"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type Appointment struct {
	ID         int               `json:"id"`
	UserID     int               `json:"userId"`
	ClientID   int               `json:"clientId"`
	PropertyID int               `json:"propertyId"`
	Date       time.Time         `json:"date"`
	Status     AppointmentStatus `json:"status"`
	Notes      *string           `json:"notes"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type Sale struct {
	ID         int        `json:"id"`
	UserID     int        `json:"userId"`
	PropertyID int        `json:"propertyId"`
	ClientID   int        `json:"clientId"`
	Amount     int        `json:"amount"`
	Date       time.Time  `json:"date"`
	Status     SaleStatus `json:"status"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
}
