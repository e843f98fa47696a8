package app

import (
	"net/http"

	"github.com/fleetwage/fleetwage/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Wage calculations
	r.HandleFunc("/api/wage/calculation", deps.WageHandler.Calculate).Methods("POST")
	r.HandleFunc("/api/wage/calculation/{shiftId}", deps.WageHandler.GetCalculation).Methods("GET")

	// Health
	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods("GET")
}
