package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"inmocrm/pkg/domain"
	"inmocrm/pkg/listing"
)

// Collection handlers. Each follows the same shape: GET lists the caller's
// records, POST validates the payload and stores it with the caller as owner.
// Malformed or incomplete payloads get a fixed per-entity message.

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		properties, err := s.app.PropertiesForOwner(user.ID)
		if err != nil {
			storeFailure(w, "list properties", err)
			return
		}
		writeJSON(w, http.StatusOK, properties)
	case http.MethodPost:
		var in domain.InsertProperty
		if err := decodeBody(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property data")
			return
		}
		if err := in.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property data")
			return
		}
		property, err := s.app.CreateProperty(user.ID, in)
		if err != nil {
			storeFailure(w, "create property", err)
			return
		}
		writeJSON(w, http.StatusOK, property)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		clients, err := s.app.ClientsForOwner(user.ID)
		if err != nil {
			storeFailure(w, "list clients", err)
			return
		}
		writeJSON(w, http.StatusOK, clients)
	case http.MethodPost:
		var in domain.InsertClient
		if err := decodeBody(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid client data")
			return
		}
		if err := in.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid client data")
			return
		}
		client, err := s.app.CreateClient(user.ID, in)
		if err != nil {
			storeFailure(w, "create client", err)
			return
		}
		writeJSON(w, http.StatusOK, client)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		appointments, err := s.app.AppointmentsForOwner(user.ID)
		if err != nil {
			storeFailure(w, "list appointments", err)
			return
		}
		writeJSON(w, http.StatusOK, appointments)
	case http.MethodPost:
		var in domain.InsertAppointment
		if err := decodeBody(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid appointment data")
			return
		}
		if err := in.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid appointment data")
			return
		}
		appointment, err := s.app.CreateAppointment(user.ID, in)
		if err != nil {
			storeFailure(w, "create appointment", err)
			return
		}
		writeJSON(w, http.StatusOK, appointment)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request, user domain.User) {
	switch r.Method {
	case http.MethodGet:
		sales, err := s.app.SalesForOwner(user.ID)
		if err != nil {
			storeFailure(w, "list sales", err)
			return
		}
		writeJSON(w, http.StatusOK, sales)
	case http.MethodPost:
		var in domain.InsertSale
		if err := decodeBody(r, &in); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid sale data")
			return
		}
		if err := in.Validate(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid sale data")
			return
		}
		sale, err := s.app.CreateSale(user.ID, in)
		if err != nil {
			storeFailure(w, "create sale", err)
			return
		}
		writeJSON(w, http.StatusOK, sale)
	default:
		methodNotAllowed(w)
	}
}

// Admin handlers. The base path lists every user's records; a trailing
// /{userId} narrows to one agent.

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	users, err := s.app.ListUsers()
	if err != nil {
		storeFailure(w, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleAdminProperties(w http.ResponseWriter, r *http.Request, _ domain.User) {
	s.adminCollection(w, r, "/api/admin/properties",
		func() (any, error) { return s.app.AllProperties() },
		func(userID int) (any, error) { return s.app.PropertiesForOwner(userID) })
}

func (s *Server) handleAdminClients(w http.ResponseWriter, r *http.Request, _ domain.User) {
	s.adminCollection(w, r, "/api/admin/clients",
		func() (any, error) { return s.app.AllClients() },
		func(userID int) (any, error) { return s.app.ClientsForOwner(userID) })
}

func (s *Server) handleAdminAppointments(w http.ResponseWriter, r *http.Request, _ domain.User) {
	s.adminCollection(w, r, "/api/admin/appointments",
		func() (any, error) { return s.app.AllAppointments() },
		func(userID int) (any, error) { return s.app.AppointmentsForOwner(userID) })
}

func (s *Server) handleAdminSales(w http.ResponseWriter, r *http.Request, _ domain.User) {
	s.adminCollection(w, r, "/api/admin/sales",
		func() (any, error) { return s.app.AllSales() },
		func(userID int) (any, error) { return s.app.SalesForOwner(userID) })
}

func (s *Server) adminCollection(w http.ResponseWriter, r *http.Request, base string, listAll func() (any, error), listByUser func(int) (any, error)) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	suffix := strings.Trim(strings.TrimPrefix(r.URL.Path, base), "/")
	if suffix == "" {
		records, err := listAll()
		if err != nil {
			storeFailure(w, "admin list "+base, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}
	userID, err := strconv.Atoi(suffix)
	if err != nil || userID <= 0 {
		http.NotFound(w, r)
		return
	}
	records, err := listByUser(userID)
	if err != nil {
		storeFailure(w, "admin list "+base, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Live listings proxy.

const listingsFetchError = "Failed to fetch properties data"

func (s *Server) handleListingsFeed(w http.ResponseWriter, r *http.Request, _ domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	body, err := s.sheets.Fetch(r.Context())
	if err != nil {
		slog.Error("listings feed fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   listingsFetchError,
			"details": err.Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleListingUpdate(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req listingUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Referencia) == "" {
		writeError(w, http.StatusBadRequest, "referencia is required")
		return
	}
	column := req.Column
	if column == "" {
		column = "ESTATUS"
	}
	if column == "ESTATUS" {
		status, err := listing.ParseStatus(req.NewValue)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid status value")
			return
		}
		req.NewValue = string(status)
	}
	if err := s.sheets.Update(r.Context(), req.Referencia, column, req.NewValue); err != nil {
		slog.Error("listing update failed", "error", err, "referencia", req.Referencia, "user_id", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to update property data",
			"details": err.Error(),
		})
		return
	}
	slog.Info("listing updated", "referencia", req.Referencia, "column", column, "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
}

func storeFailure(w http.ResponseWriter, op string, err error) {
	slog.Error("store operation failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}

type listingUpdateRequest struct {
	Referencia string `json:"referencia"`
	Column     string `json:"column"`
	NewValue   string `json:"newValue"`
}
