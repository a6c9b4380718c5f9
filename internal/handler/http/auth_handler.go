package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/handler/http/dto"
	"github.com/dcastillo/user-service/internal/infrastructure/metrics"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

type AuthHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

func NewAuthHandler(userUsecase usecasecontract.IUserUseCase) *AuthHandler {
	return &AuthHandler{userUsecase: userUsecase}
}

// Authenticate verifies credentials and returns a bearer token. Lookup
// failures map to 401 rather than 404 so account existence is not leaked.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthRequest
	if err := BindAndValidate(c, &req); err != nil {
		metrics.AuthenticationsTotal.WithLabelValues("validation_error").Inc()
		return
	}

	_, token, err := h.userUsecase.Authenticate(c.Request.Context(), req.Identification, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound):
			metrics.AuthenticationsTotal.WithLabelValues("not_found").Inc()
			JSONError(c, http.StatusUnauthorized, gin.H{}, "User not found")
		case errors.Is(err, entity.ErrUserNotActivated):
			metrics.AuthenticationsTotal.WithLabelValues("not_activated").Inc()
			JSONError(c, http.StatusUnauthorized, gin.H{}, "The user has not confirmed the registration")
		case errors.Is(err, entity.ErrInvalidCredentials):
			metrics.AuthenticationsTotal.WithLabelValues("bad_credentials").Inc()
			JSONError(c, http.StatusUnauthorized, gin.H{}, "Identification or password incorrect")
		default:
			metrics.AuthenticationsTotal.WithLabelValues("error").Inc()
			JSONError(c, http.StatusInternalServerError, gin.H{}, "Error at authenticate")
		}
		return
	}

	metrics.AuthenticationsTotal.WithLabelValues("ok").Inc()
	JSONSuccess(c, http.StatusOK, dto.AuthResponse{Token: token}, "Authenticated successfully")
}
