package health

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/payportal/internal/dto"
	"github.com/GlebRadaev/payportal/internal/service/healthservice"
	"github.com/GlebRadaev/payportal/pkg/utils"
)

type Service interface {
	Check(ctx context.Context) healthservice.Report
}

type HealthHandler struct {
	healthService Service
}

func New(healthService Service) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Health godoc
//
//	@Summary	Service health
//	@Tags		Health
//	@Produce	json
//	@Success	200	{object}	dto.HealthResponseDTO
//	@Failure	500	{object}	dto.HealthResponseDTO
//	@Router		/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.healthService.Check(r.Context())
	code := http.StatusOK
	if !report.Healthy() {
		code = http.StatusInternalServerError
	}
	utils.RespondWithJSON(w, code, dto.HealthResponseDTO{
		Status:      report.Status,
		StoreStatus: report.StoreStatus,
	})
}
