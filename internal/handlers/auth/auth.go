package auth

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/payportal/internal/domain"
	"github.com/GlebRadaev/payportal/internal/dto"
	"github.com/GlebRadaev/payportal/pkg/utils"
)

const (
	msgRateLimited = "Too many login attempts, please try again after 15 minutes"
	msgLocked      = "Account is temporarily locked. Please try again later."
)

type Service interface {
	Register(ctx context.Context, in domain.Registration, sourceAddress string) (string, error)
	Login(ctx context.Context, in domain.Credentials, sourceAddress string) (string, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new account
//	@Description	Create an account and receive a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		201		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid input or username already taken"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, err := h.authService.Register(r.Context(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}, utils.ClientIP(r))
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			utils.RespondWithError(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrConflict):
			utils.RespondWithError(w, http.StatusBadRequest, "Username already taken")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusCreated, dto.TokenResponseDTO{
		Message: "User registered successfully",
		Token:   token,
	})
}

// Login godoc
//
//	@Summary		Authenticate an account
//	@Description	Log in and receive a session token. Five failures lock the account for 15 minutes.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account is temporarily locked"
//	@Failure		429		{object}	utils.Response	"Too many login attempts"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	token, err := h.authService.Login(r.Context(), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	}, utils.ClientIP(r))
	if err != nil {
		var (
			ve      *domain.ValidationError
			limited *domain.RateLimitedError
		)
		switch {
		case errors.As(err, &limited):
			if limited.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
			}
			utils.RespondWithError(w, http.StatusTooManyRequests, msgRateLimited)
		case errors.As(err, &ve):
			utils.RespondWithError(w, http.StatusBadRequest, ve.Error())
		case errors.Is(err, domain.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
		case errors.Is(err, domain.ErrAccountLocked):
			utils.RespondWithError(w, http.StatusForbidden, msgLocked)
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{
		Message: "Login successful",
		Token:   token,
	})
}
