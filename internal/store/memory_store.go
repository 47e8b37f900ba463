package store

import (
	"sync"
	"time"

	"inmocrm/pkg/domain"
)

// MemoryStore keeps all records in-process. A single counter assigns
// identifiers across every entity type; ids are never reused. State is lost
// on restart.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[int]domain.User
	email        map[string]int // email -> user ID
	properties   map[int]domain.Property
	clients      map[int]domain.Client
	appointments map[int]domain.Appointment
	sales        map[int]domain.Sale
	nextID       int
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int]domain.User),
		email:        make(map[string]int),
		properties:   make(map[int]domain.Property),
		clients:      make(map[int]domain.Client),
		appointments: make(map[int]domain.Appointment),
		sales:        make(map[int]domain.Sale),
		nextID:       1,
	}
}

// getNextID must be called with mu held.
func (m *MemoryStore) getNextID() int {
	id := m.nextID
	m.nextID++
	return id
}

// CreateUser registers a user.
func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.getNextID()
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return u, nil
}

// HasUserEmail checks if email exists.
func (m *MemoryStore) HasUserEmail(email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.email[email]
	return ok, nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id int) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// ListUsers returns all users in id order.
func (m *MemoryStore) ListUsers() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.User, 0, len(m.users))
	for id := 1; id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			res = append(res, u)
		}
	}
	return res, nil
}

// UserCount returns number of users.
func (m *MemoryStore) UserCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

// ListProperties returns properties owned by userID.
func (m *MemoryStore) ListProperties(userID int) ([]domain.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Property, 0)
	for id := 1; id < m.nextID; id++ {
		if p, ok := m.properties[id]; ok && p.UserID == userID {
			res = append(res, p)
		}
	}
	return res, nil
}

// ListAllProperties returns every property.
func (m *MemoryStore) ListAllProperties() ([]domain.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Property, 0, len(m.properties))
	for id := 1; id < m.nextID; id++ {
		if p, ok := m.properties[id]; ok {
			res = append(res, p)
		}
	}
	return res, nil
}

// CreateProperty stores a new property record.
func (m *MemoryStore) CreateProperty(p domain.Property) (domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.getNextID()
	p.CreatedAt = time.Now().UTC()
	m.properties[p.ID] = p
	return p, nil
}

// ListClients returns clients owned by userID.
func (m *MemoryStore) ListClients(userID int) ([]domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Client, 0)
	for id := 1; id < m.nextID; id++ {
		if c, ok := m.clients[id]; ok && c.UserID == userID {
			res = append(res, c)
		}
	}
	return res, nil
}

// ListAllClients returns every client.
func (m *MemoryStore) ListAllClients() ([]domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Client, 0, len(m.clients))
	for id := 1; id < m.nextID; id++ {
		if c, ok := m.clients[id]; ok {
			res = append(res, c)
		}
	}
	return res, nil
}

// CreateClient stores a new client record.
func (m *MemoryStore) CreateClient(c domain.Client) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.getNextID()
	c.CreatedAt = time.Now().UTC()
	m.clients[c.ID] = c
	return c, nil
}

// ListAppointments returns appointments owned by userID.
func (m *MemoryStore) ListAppointments(userID int) ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Appointment, 0)
	for id := 1; id < m.nextID; id++ {
		if a, ok := m.appointments[id]; ok && a.UserID == userID {
			res = append(res, a)
		}
	}
	return res, nil
}

// ListAllAppointments returns every appointment.
func (m *MemoryStore) ListAllAppointments() ([]domain.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Appointment, 0, len(m.appointments))
	for id := 1; id < m.nextID; id++ {
		if a, ok := m.appointments[id]; ok {
			res = append(res, a)
		}
	}
	return res, nil
}

// CreateAppointment stores a new appointment record. The referenced client
// and property ids are not checked here; only the relational backend can
// enforce them.
func (m *MemoryStore) CreateAppointment(a domain.Appointment) (domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.getNextID()
	a.CreatedAt = time.Now().UTC()
	m.appointments[a.ID] = a
	return a, nil
}

// ListSales returns sales owned by userID.
func (m *MemoryStore) ListSales(userID int) ([]domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Sale, 0)
	for id := 1; id < m.nextID; id++ {
		if s, ok := m.sales[id]; ok && s.UserID == userID {
			res = append(res, s)
		}
	}
	return res, nil
}

// ListAllSales returns every sale.
func (m *MemoryStore) ListAllSales() ([]domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Sale, 0, len(m.sales))
	for id := 1; id < m.nextID; id++ {
		if s, ok := m.sales[id]; ok {
			res = append(res, s)
		}
	}
	return res, nil
}

// CreateSale stores a new sale record.
func (m *MemoryStore) CreateSale(s domain.Sale) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.getNextID()
	s.CreatedAt = time.Now().UTC()
	m.sales[s.ID] = s
	return s, nil
}
