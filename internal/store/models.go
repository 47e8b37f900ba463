package store

import "time"

// GORM models used for persistence. Table and column names match the
// original relational schema.

type UserModel struct {
	ID           int     `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Name         string  `gorm:"not null"`
	PhotoURL     *string `gorm:"column:photo_url"`
	ExternalID   *string `gorm:"column:external_id;index"`
	Admin        bool    `gorm:"not null"`
	Paid         bool    `gorm:"not null"`
	PasswordHash string
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type PropertyModel struct {
	ID          int       `gorm:"primaryKey"`
	UserID      int       `gorm:"column:user_id;not null;index"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Price       int       `gorm:"not null"`
	Address     string    `gorm:"not null"`
	Bedrooms    int       `gorm:"not null"`
	Bathrooms   int       `gorm:"not null"`
	Area        int       `gorm:"not null"`
	Status      string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (PropertyModel) TableName() string { return "properties" }

type ClientModel struct {
	ID           int    `gorm:"primaryKey"`
	UserID       int    `gorm:"column:user_id;not null;index"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	Budget       *int
	PropertyType *string `gorm:"column:property_type"`
	Status       string  `gorm:"not null"`
	Notes        *string
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (ClientModel) TableName() string { return "clients" }

type AppointmentModel struct {
	ID         int       `gorm:"primaryKey"`
	UserID     int       `gorm:"column:user_id;not null;index"`
	ClientID   int       `gorm:"column:client_id;not null"`
	PropertyID int       `gorm:"column:property_id;not null"`
	Date       time.Time `gorm:"not null"`
	Status     string    `gorm:"not null"`
	Notes      *string
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (AppointmentModel) TableName() string { return "appointments" }

type SaleModel struct {
	ID         int       `gorm:"primaryKey"`
	UserID     int       `gorm:"column:user_id;not null;index"`
	PropertyID int       `gorm:"column:property_id;not null"`
	ClientID   int       `gorm:"column:client_id;not null"`
	Amount     int       `gorm:"not null"`
	Date       time.Time `gorm:"not null"`
	Status     string    `gorm:"not null"`
	Notes      *string
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (SaleModel) TableName() string { return "sales" }
