package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"inmocrm/pkg/domain"
)

// GormStore implements Store on a relational database through GORM.
// Identifiers are assigned by the database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens a Postgres connection and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return NewGormStoreFromDB(db)
}

// NewGormStoreFromDB wraps an existing connection and runs auto-migrations.
// Tests use this with an in-memory SQLite database.
func NewGormStoreFromDB(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&UserModel{}, &PropertyModel{}, &ClientModel{}, &AppointmentModel{}, &SaleModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateUser registers a user.
func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	model.ID = 0
	model.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// HasUserEmail checks if email exists.
func (s *GormStore) HasUserEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByEmail looks up a user by email.
func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByID returns a user by ID.
func (s *GormStore) GetUserByID(id int) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListUsers returns all users in id order.
func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

// UserCount returns number of users.
func (s *GormStore) UserCount() (int, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// ListProperties returns properties owned by userID.
func (s *GormStore) ListProperties(userID int) ([]domain.Property, error) {
	return s.listProperties("user_id = ?", userID)
}

// ListAllProperties returns every property.
func (s *GormStore) ListAllProperties() ([]domain.Property, error) {
	return s.listProperties()
}

func (s *GormStore) listProperties(conds ...any) ([]domain.Property, error) {
	var models []PropertyModel
	tx := s.db.Order("id ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Property, 0, len(models))
	for _, m := range models {
		res = append(res, propertyFromModel(m))
	}
	return res, nil
}

// CreateProperty stores a new property record.
func (s *GormStore) CreateProperty(p domain.Property) (domain.Property, error) {
	model := propertyToModel(p)
	model.ID = 0
	model.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Property{}, err
	}
	return propertyFromModel(model), nil
}

// ListClients returns clients owned by userID.
func (s *GormStore) ListClients(userID int) ([]domain.Client, error) {
	return s.listClients("user_id = ?", userID)
}

// ListAllClients returns every client.
func (s *GormStore) ListAllClients() ([]domain.Client, error) {
	return s.listClients()
}

func (s *GormStore) listClients(conds ...any) ([]domain.Client, error) {
	var models []ClientModel
	tx := s.db.Order("id ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Client, 0, len(models))
	for _, m := range models {
		res = append(res, clientFromModel(m))
	}
	return res, nil
}

// CreateClient stores a new client record.
func (s *GormStore) CreateClient(c domain.Client) (domain.Client, error) {
	model := clientToModel(c)
	model.ID = 0
	model.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Client{}, err
	}
	return clientFromModel(model), nil
}

// ListAppointments returns appointments owned by userID.
func (s *GormStore) ListAppointments(userID int) ([]domain.Appointment, error) {
	return s.listAppointments("user_id = ?", userID)
}

// ListAllAppointments returns every appointment.
func (s *GormStore) ListAllAppointments() ([]domain.Appointment, error) {
	return s.listAppointments()
}

func (s *GormStore) listAppointments(conds ...any) ([]domain.Appointment, error) {
	var models []AppointmentModel
	tx := s.db.Order("id ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		res = append(res, appointmentFromModel(m))
	}
	return res, nil
}

// CreateAppointment stores a new appointment record.
func (s *GormStore) CreateAppointment(a domain.Appointment) (domain.Appointment, error) {
	model := appointmentToModel(a)
	model.ID = 0
	model.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Appointment{}, err
	}
	return appointmentFromModel(model), nil
}

// ListSales returns sales owned by userID.
func (s *GormStore) ListSales(userID int) ([]domain.Sale, error) {
	return s.listSales("user_id = ?", userID)
}

// ListAllSales returns every sale.
func (s *GormStore) ListAllSales() ([]domain.Sale, error) {
	return s.listSales()
}

func (s *GormStore) listSales(conds ...any) ([]domain.Sale, error) {
	var models []SaleModel
	tx := s.db.Order("id ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Sale, 0, len(models))
	for _, m := range models {
		res = append(res, saleFromModel(m))
	}
	return res, nil
}

// CreateSale stores a new sale record.
func (s *GormStore) CreateSale(sale domain.Sale) (domain.Sale, error) {
	model := saleToModel(sale)
	model.ID = 0
	model.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Sale{}, err
	}
	return saleFromModel(model), nil
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PhotoURL:     u.PhotoURL,
		ExternalID:   u.ExternalID,
		Admin:        u.Admin,
		Paid:         u.Paid,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PhotoURL:     m.PhotoURL,
		ExternalID:   m.ExternalID,
		Admin:        m.Admin,
		Paid:         m.Paid,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func propertyToModel(p domain.Property) PropertyModel {
	return PropertyModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Address:     p.Address,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func propertyFromModel(m PropertyModel) domain.Property {
	return domain.Property{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Address:     m.Address,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		Area:        m.Area,
		Status:      domain.PropertyStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func clientToModel(c domain.Client) ClientModel {
	return ClientModel{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Budget:       c.Budget,
		PropertyType: c.PropertyType,
		Status:       string(c.Status),
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
	}
}

func clientFromModel(m ClientModel) domain.Client {
	return domain.Client{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Budget:       m.Budget,
		PropertyType: m.PropertyType,
		Status:       domain.ClientStatus(m.Status),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

func appointmentToModel(a domain.Appointment) AppointmentModel {
	return AppointmentModel{
		ID:         a.ID,
		UserID:     a.UserID,
		ClientID:   a.ClientID,
		PropertyID: a.PropertyID,
		Date:       a.Date,
		Status:     string(a.Status),
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
	}
}

func appointmentFromModel(m AppointmentModel) domain.Appointment {
	return domain.Appointment{
		ID:         m.ID,
		UserID:     m.UserID,
		ClientID:   m.ClientID,
		PropertyID: m.PropertyID,
		Date:       m.Date,
		Status:     domain.AppointmentStatus(m.Status),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

func saleToModel(s domain.Sale) SaleModel {
	return SaleModel{
		ID:         s.ID,
		UserID:     s.UserID,
		PropertyID: s.PropertyID,
		ClientID:   s.ClientID,
		Amount:     s.Amount,
		Date:       s.Date,
		Status:     string(s.Status),
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

func saleFromModel(m SaleModel) domain.Sale {
	return domain.Sale{
		ID:         m.ID,
		UserID:     m.UserID,
		PropertyID: m.PropertyID,
		ClientID:   m.ClientID,
		Amount:     m.Amount,
		Date:       m.Date,
		Status:     domain.SaleStatus(m.Status),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}
