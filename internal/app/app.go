package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"inmocrm/internal/store"
	"inmocrm/pkg/auth"
	"inmocrm/pkg/domain"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike so the two cases cannot be told apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when signing up with an email that exists.
var ErrEmailTaken = errors.New("email already exists")

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	// Store and Sessions override backend selection; tests use these.
	Store    store.Store
	Sessions store.SessionStore
}

// App wires the entity store and session store behind the HTTP layer.
// Every operation is scoped to an explicit caller; there is no ambient
// current user.
type App struct {
	store    store.Store
	sessions store.SessionStore
}

// New constructs the application, selecting the storage backend at process
// start: the relational store when a database URL is configured, the
// volatile in-memory store otherwise.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL != "" {
			gs, err := store.NewGormStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
			dataStore = gs
		} else {
			dataStore = store.NewMemoryStore()
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		switch {
		case cfg.JWTSecret != "":
			sessionStore = store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL)
		case cfg.RedisAddr != "":
			sessionStore = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		default:
			return nil, errors.New("session store required (jwtSecret or redisAddr)")
		}
	}

	return &App{store: dataStore, sessions: sessionStore}, nil
}

// SignUp registers a new user and issues a session token. The first user of
// a fresh installation becomes admin.
func (a *App) SignUp(email, password, name string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return domain.User{}, "", errors.New("email and password required")
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrEmailTaken
	}
	count, err := a.store.UserCount()
	if err != nil {
		return domain.User{}, "", fmt.Errorf("count users: %w", err)
	}
	user, err := a.store.CreateUser(domain.User{
		Email:        email,
		Name:         name,
		Admin:        count == 0,
		PasswordHash: auth.HashPassword(password),
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Logout removes a session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// UserFromToken resolves the caller from a session token.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// ListUsers returns all users (admin use only).
func (a *App) ListUsers() ([]domain.User, error) {
	return a.store.ListUsers()
}

// Properties

func (a *App) PropertiesForOwner(userID int) ([]domain.Property, error) {
	return a.store.ListProperties(userID)
}

func (a *App) AllProperties() ([]domain.Property, error) {
	return a.store.ListAllProperties()
}

// CreateProperty stamps the caller as owner and stores the record. The
// payload must already be validated.
func (a *App) CreateProperty(ownerID int, in domain.InsertProperty) (domain.Property, error) {
	return a.store.CreateProperty(domain.Property{
		UserID:      ownerID,
		Title:       *in.Title,
		Description: *in.Description,
		Price:       *in.Price,
		Address:     *in.Address,
		Bedrooms:    *in.Bedrooms,
		Bathrooms:   *in.Bathrooms,
		Area:        *in.Area,
		Status:      domain.PropertyStatus(*in.Status),
	})
}

// Clients

func (a *App) ClientsForOwner(userID int) ([]domain.Client, error) {
	return a.store.ListClients(userID)
}

func (a *App) AllClients() ([]domain.Client, error) {
	return a.store.ListAllClients()
}

func (a *App) CreateClient(ownerID int, in domain.InsertClient) (domain.Client, error) {
	return a.store.CreateClient(domain.Client{
		UserID:       ownerID,
		Name:         *in.Name,
		Email:        *in.Email,
		Phone:        *in.Phone,
		Budget:       in.Budget,
		PropertyType: in.PropertyType,
		Status:       domain.ClientStatus(*in.Status),
		Notes:        in.Notes,
	})
}

// Appointments

func (a *App) AppointmentsForOwner(userID int) ([]domain.Appointment, error) {
	return a.store.ListAppointments(userID)
}

func (a *App) AllAppointments() ([]domain.Appointment, error) {
	return a.store.ListAllAppointments()
}

func (a *App) CreateAppointment(ownerID int, in domain.InsertAppointment) (domain.Appointment, error) {
	return a.store.CreateAppointment(domain.Appointment{
		UserID:     ownerID,
		ClientID:   *in.ClientID,
		PropertyID: *in.PropertyID,
		Date:       *in.Date,
		Status:     domain.AppointmentStatus(*in.Status),
		Notes:      in.Notes,
	})
}

// Sales

func (a *App) SalesForOwner(userID int) ([]domain.Sale, error) {
	return a.store.ListSales(userID)
}

func (a *App) AllSales() ([]domain.Sale, error) {
	return a.store.ListAllSales()
}

func (a *App) CreateSale(ownerID int, in domain.InsertSale) (domain.Sale, error) {
	return a.store.CreateSale(domain.Sale{
		UserID:     ownerID,
		PropertyID: *in.PropertyID,
		ClientID:   *in.ClientID,
		Amount:     *in.Amount,
		Date:       *in.Date,
		Status:     domain.SaleStatus(*in.Status),
		Notes:      in.Notes,
	})
}
