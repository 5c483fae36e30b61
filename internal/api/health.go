package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"wecelebrate/console/internal/common"
	"wecelebrate/console/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(checks map[string]Pinger, upSince time.Time) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		svcs := make(map[string]entities.ServiceStatus, len(checks))
		overallStatus := "ok"
		for _, name := range names {
			status := entities.ServiceStatus{Status: "ok", Details: "Connected"}
			if err := checks[name].Ping(ctx); err != nil {
				status = entities.ServiceStatus{Status: "down", Details: err.Error()}
				overallStatus = "down"
			}
			svcs[name] = status
		}

		resp := entities.HealthCheckResponse{
			Services: svcs,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondSuccess(w, initTime, overallStatus, resp, code)
	}
}
