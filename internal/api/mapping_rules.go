package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/models/dtos"
	"wecelebrate/console/internal/services"
)

// ListMappingRulesHandler handles GET /api/v1/clients/{clientID}/mapping-rules
func ListMappingRulesHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		rows, err := svc.List(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		out := make([]dtos.MappingRuleResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, services.ToMappingRuleResponse(row))
		}
		common.RespondSuccess(w, initTime, "Mapping rules fetched", out)
	}
}

// CreateMappingRuleHandler handles POST /api/v1/clients/{clientID}/mapping-rules
func CreateMappingRuleHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MappingRuleRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		row, err := svc.Create(r.Context(), chi.URLParam(r, "clientID"), req)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mapping rule created", services.ToMappingRuleResponse(*row), http.StatusCreated)
	}
}

// UpdateMappingRuleHandler handles PUT /api/v1/clients/{clientID}/mapping-rules/{ruleID}
func UpdateMappingRuleHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MappingRuleRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		row, err := svc.Update(r.Context(), chi.URLParam(r, "clientID"), chi.URLParam(r, "ruleID"), req)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mapping rule updated", services.ToMappingRuleResponse(*row))
	}
}

// DeleteMappingRuleHandler handles DELETE /api/v1/clients/{clientID}/mapping-rules/{ruleID}
func DeleteMappingRuleHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := svc.Delete(r.Context(), chi.URLParam(r, "clientID"), chi.URLParam(r, "ruleID")); err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Mapping rule deleted", nil)
	}
}

// SelectSiteHandler handles POST /api/v1/clients/{clientID}/mapping-rules/select-site
func SelectSiteHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.EmployeeAttributesRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		sel, err := svc.SelectSite(r.Context(), chi.URLParam(r, "clientID"), req.Attributes)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		message := "No mapping rule matched"
		if sel.Matched {
			message = "Site selected"
		}
		common.RespondSuccess(w, initTime, message, sel)
	}
}

// TestMappingRulesHandler handles POST /api/v1/clients/{clientID}/mapping-rules/test
func TestMappingRulesHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.EmployeeAttributesRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		res, err := svc.TestRule(r.Context(), chi.URLParam(r, "clientID"), req.Attributes)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Rules evaluated", res)
	}
}

// AssignEmployeesHandler handles POST /api/v1/clients/{clientID}/assignments
func AssignEmployeesHandler(svc MappingRuleManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignEmployeesRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		res, err := svc.AssignEmployees(r.Context(), chi.URLParam(r, "clientID"), req.Employees)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Employees assigned", res)
	}
}
