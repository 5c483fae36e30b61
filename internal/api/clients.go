package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/models/dtos"
	gormModels "wecelebrate/console/internal/models/gorm"
	"wecelebrate/console/internal/validation"
)

// ValidateClientHandler handles POST /api/v1/clients/validate
//
// The result is always returned with 200; Valid tells the caller whether the
// record could be saved.
func ValidateClientHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var data validation.ClientConfigData
		if err := decodeJSON(w, r, &data); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		result := svc.Validate(data)
		message := "Client configuration is valid"
		if !result.Valid {
			message = "Client configuration has validation errors"
		}
		common.RespondSuccess(w, initTime, message, result)
	}
}

// ValidateFieldHandler handles POST /api/v1/clients/validate-field
func ValidateFieldHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ValidateFieldRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Field == "" {
			common.RespondError(w, initTime, errors.New("field is required"), "", http.StatusBadRequest)
			return
		}

		msg, invalid := svc.ValidateField(req.Field, req.Value)
		resp := dtos.ValidateFieldResponse{Field: req.Field, Valid: !invalid}
		if invalid {
			resp.Error = &msg
		}
		common.RespondSuccess(w, initTime, "Field validated", resp)
	}
}

// ValidationRulesHandler handles GET /api/v1/clients/validation-rules
func ValidationRulesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		data := map[string]any{"fields": validation.Rules()}
		for name, values := range validation.AllowLists() {
			data[name] = values
		}
		common.RespondSuccess(w, initTime, "Validation rules", data)
	}
}

// ListClientsHandler handles GET /api/v1/clients?active=true
func ListClientsHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		activeOnly := false
		if v := r.URL.Query().Get("active"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				common.RespondError(w, initTime, errors.New("active must be true or false"), "", http.StatusBadRequest)
				return
			}
			activeOnly = parsed
		}

		clients, err := svc.List(r.Context(), activeOnly)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		out := make([]dtos.ClientResponse, 0, len(clients))
		for i := range clients {
			out = append(out, toClientResponse(&clients[i]))
		}
		common.RespondSuccess(w, initTime, "Clients fetched", out)
	}
}

// CreateClientHandler handles POST /api/v1/clients
func CreateClientHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var data validation.ClientConfigData
		if err := decodeJSON(w, r, &data); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		client, err := svc.Create(r.Context(), data)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Client created", toClientResponse(client), http.StatusCreated)
	}
}

// GetClientHandler handles GET /api/v1/clients/{clientID}
func GetClientHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		client, err := svc.Get(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Client fetched", toClientResponse(client))
	}
}

// UpdateClientHandler handles PUT /api/v1/clients/{clientID}
func UpdateClientHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var data validation.ClientConfigData
		if err := decodeJSON(w, r, &data); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		client, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), data)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Client updated", toClientResponse(client))
	}
}

// DeleteClientHandler handles DELETE /api/v1/clients/{clientID}
func DeleteClientHandler(svc ClientConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := svc.Delete(r.Context(), chi.URLParam(r, "clientID")); err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Client deleted", nil)
	}
}

func toClientResponse(c *gormModels.Client) dtos.ClientResponse {
	warnings := c.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return dtos.ClientResponse{
		ID:        c.ID,
		Config:    c.Config,
		Warnings:  warnings,
		CreatedAt: common.FormatTimestamp(c.CreatedAt),
		UpdatedAt: common.FormatTimestamp(c.UpdatedAt),
	}
}
