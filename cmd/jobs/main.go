// backend-go/cmd/jobs/main.go
//
// Lightweight trigger server for batch jobs. Schedulers hit these endpoints
// instead of the public API.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ardiwinata/posbranch/backend-go/internal/cache"
	"github.com/ardiwinata/posbranch/backend-go/internal/config"
	"github.com/ardiwinata/posbranch/backend-go/internal/domain"
	"github.com/ardiwinata/posbranch/backend-go/internal/replenish"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository/postgres"
	"github.com/ardiwinata/posbranch/backend-go/internal/service"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	reportCache, err := cache.NewReplenishCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("report cache unavailable, running without it")
		reportCache = cache.NewNoopReplenishCache()
	}

	replenishService := service.NewReplenishService(
		postgres.NewSalesRepository(db),
		postgres.NewProductRepository(db),
		postgres.NewPolicyRepository(db),
		reportCache,
		replenish.CostConfig{
			OrderingCost:    cfg.Replenish.OrderingCost,
			HoldingRate:     cfg.Replenish.HoldingRate,
			DefaultItemCost: cfg.Replenish.DefaultItemCost,
		},
		cfg.Replenish.Workers,
	)

	// Create router
	r := mux.NewRouter()

	r.HandleFunc("/jobs/recalculate", func(w http.ResponseWriter, req *http.Request) {
		var filter domain.SalesFilter
		if req.Body != nil && req.ContentLength > 0 {
			var body struct {
				SupplierID *int64 `json:"supplier_id"`
				ProductID  *int64 `json:"product_id"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			filter.SupplierID = body.SupplierID
			filter.ProductID = body.ProductID
		}

		result, err := replenishService.Recalculate(req.Context(), filter)
		if err != nil {
			log.Error().Err(err).Msg("recalculation job failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "recalculation failed"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"products_updated": result.ProductsUpdated,
			"skipped":          len(result.Skipped),
			"low_stock":        result.Report.LowStockCount,
		})
	}).Methods("POST")

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("Jobs server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("Jobs server stopped")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
