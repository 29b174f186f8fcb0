package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/payportal/internal/dto"
	"github.com/GlebRadaev/payportal/internal/settlement"
	"github.com/GlebRadaev/payportal/pkg/utils"
)

const (
	SignatureHeader = "Stripe-Signature"
	maxBodyBytes    = 64 << 10
)

type Service interface {
	Dispatch(ctx context.Context, payload []byte, signature string) error
}

type WebhookHandler struct {
	settlementService Service
}

func New(settlementService Service) *WebhookHandler {
	return &WebhookHandler{settlementService: settlementService}
}

// Receive godoc
//
//	@Summary		Payment network webhook
//	@Description	Signed payment status callbacks. Unknown event types are acknowledged and ignored.
//	@Tags			Webhook
//	@Accept			json
//	@Produce		json
//	@Param			Stripe-Signature	header	string	true	"Payload signature"
//	@Success		200	{object}	dto.WebhookResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid signature or body"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/webhook [post]
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.settlementService.Dispatch(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		if errors.Is(err, settlement.ErrInvalidSignature) {
			zap.L().Warn("webhook signature verification failed", zap.Error(err))
			utils.RespondWithError(w, http.StatusBadRequest, "Webhook Error: invalid signature")
			return
		}
		zap.L().Error("can't queue webhook event", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WebhookResponseDTO{Received: true})
}
