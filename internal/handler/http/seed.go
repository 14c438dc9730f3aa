package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chronopay/payroll-backend-go/internal/handler/http/response"
	"github.com/chronopay/payroll-backend-go/internal/service/seed"
)

type SeedHandler interface {
	SeedDemoData(w http.ResponseWriter, r *http.Request)
}

type seedHandlerImpl struct {
	seedService seed.Service
}

func NewSeedHandler(seedService seed.Service) SeedHandler {
	return &seedHandlerImpl{
		seedService: seedService,
	}
}

// SeedDemoData implements SeedHandler.
func (h *seedHandlerImpl) SeedDemoData(w http.ResponseWriter, r *http.Request) {
	var req seed.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode seed request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.seedService.SeedDemoData(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Demo data seeded", result)
}
