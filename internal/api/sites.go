package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/models/dtos"
	"wecelebrate/console/internal/services"
)

// ListSitesHandler handles GET /api/v1/clients/{clientID}/sites
func ListSitesHandler(svc SiteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		sites, err := svc.List(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Sites fetched", sites)
	}
}

// CreateSiteHandler handles POST /api/v1/clients/{clientID}/sites
func CreateSiteHandler(svc SiteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SiteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		site, err := svc.Create(r.Context(), chi.URLParam(r, "clientID"), req)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Site created", services.ToSiteResponse(*site, 0), http.StatusCreated)
	}
}

// DeleteSiteHandler handles DELETE /api/v1/clients/{clientID}/sites/{siteID}
func DeleteSiteHandler(svc SiteManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := svc.Delete(r.Context(), chi.URLParam(r, "clientID"), chi.URLParam(r, "siteID")); err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Site deleted", nil)
	}
}
