package domain

import (
	"errors"
	"time"
)

// Insert payloads mirror the wire shape of a create request. Required fields
// are pointers so a missing key can be told apart from a zero value.

type InsertProperty struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Address     *string `json:"address"`
	Bedrooms    *int    `json:"bedrooms"`
	Bathrooms   *int    `json:"bathrooms"`
	Area        *int    `json:"area"`
	Status      *string `json:"status"`
}

func (p InsertProperty) Validate() error {
	if p.Title == nil || p.Description == nil || p.Price == nil || p.Address == nil ||
		p.Bedrooms == nil || p.Bathrooms == nil || p.Area == nil || p.Status == nil {
		return errors.New("missing required field")
	}
	if *p.Price < 0 {
		return errors.New("price must be >= 0")
	}
	switch PropertyStatus(*p.Status) {
	case PropertyAvailable, PropertySold, PropertyRented:
	default:
		return errors.New("invalid property status")
	}
	return nil
}

type InsertClient struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Budget       *int    `json:"budget"`
	PropertyType *string `json:"propertyType"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

func (c InsertClient) Validate() error {
	if c.Name == nil || c.Email == nil || c.Phone == nil || c.Status == nil {
		return errors.New("missing required field")
	}
	switch ClientStatus(*c.Status) {
	case ClientActive, ClientInactive:
	default:
		return errors.New("invalid client status")
	}
	return nil
}

type InsertAppointment struct {
	ClientID   *int       `json:"clientId"`
	PropertyID *int       `json:"propertyId"`
	Date       *time.Time `json:"date"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

func (a InsertAppointment) Validate() error {
	if a.ClientID == nil || a.PropertyID == nil || a.Date == nil || a.Status == nil {
		return errors.New("missing required field")
	}
	switch AppointmentStatus(*a.Status) {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
	default:
		return errors.New("invalid appointment status")
	}
	return nil
}

type InsertSale struct {
	PropertyID *int       `json:"propertyId"`
	ClientID   *int       `json:"clientId"`
	Amount     *int       `json:"amount"`
	Date       *time.Time `json:"date"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

func (s InsertSale) Validate() error {
	if s.PropertyID == nil || s.ClientID == nil || s.Amount == nil || s.Date == nil || s.Status == nil {
		return errors.New("missing required field")
	}
	if *s.Amount < 0 {
		return errors.New("amount must be >= 0")
	}
	switch SaleStatus(*s.Status) {
	case SalePending, SaleCompleted, SaleCancelled:
	default:
		return errors.New("invalid sale status")
	}
	return nil
}
