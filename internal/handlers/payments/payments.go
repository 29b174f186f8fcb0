package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/dto"
	"github.com/GlebRadaev/payportal/pkg/auth"
	"github.com/GlebRadaev/payportal/pkg/cardvault"
	"github.com/GlebRadaev/payportal/pkg/utils"
)

type Service interface {
	Submit(ctx context.Context, actor string, in domain.PaymentSubmission, sourceAddress string) (*domain.Payment, error)
	ListForUser(ctx context.Context, actor, username string) ([]domain.Payment, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrForbidden):
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Submit godoc
//
//	@Summary		Submit a payment
//	@Description	Validate and record a card payment for the authenticated account.
//	@Description	Returns 200 when the payment settled immediately and 201 when it awaits settlement.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.PaymentRequestDTO	true	"Payment request body"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PaymentResponseDTO	"Payment was successful"
//	@Success		201	{object}	dto.PaymentResponseDTO	"Payment initiated"
//	@Failure		400	{object}	utils.Response	"Invalid payment fields"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Payment for another account"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/payment [post]
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, err := h.paymentService.Submit(r.Context(), actor, domain.PaymentSubmission{
		Username:         req.Username,
		FullName:         req.FullName,
		InstrumentNumber: req.CardNumber,
		Expiry:           req.Expiry,
		Code:             req.CVV,
		Amount:           req.Amount,
	}, utils.ClientIP(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := dto.PaymentResponseDTO{
		Success:   true,
		Reference: payment.Reference,
		Status:    string(payment.Status),
	}
	if payment.Status == domain.PaymentSuccess {
		resp.Message = "Payment was successful!"
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}
	resp.Message = "Payment initiated successfully"
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// List godoc
//
//	@Summary		List transactions
//	@Description	Payments of the authenticated account, newest first.
//	@Tags			Payments
//	@Produce		json
//	@Param			username	path	string	true	"Account username"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.TransactionsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Another account's transactions"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions/{username} [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	payments, err := h.paymentService.ListForUser(r.Context(), actor, chi.URLParam(r, "username"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := dto.TransactionsResponseDTO{Transactions: make([]dto.TransactionDTO, 0, len(payments))}
	for _, p := range payments {
		resp.Transactions = append(resp.Transactions, dto.TransactionDTO{
			Reference:   p.Reference,
			FullName:    p.FullName,
			Card:        cardvault.Mask(p.InstrumentLast4),
			Expiry:      p.Expiry,
			Amount:      p.Amount.StringFixed(2),
			Status:      string(p.Status),
			SubmittedAt: p.SubmittedAt.Format(time.RFC3339),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
