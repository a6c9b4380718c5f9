package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo/user-service/internal/domain/entity"
	"github.com/dcastillo/user-service/internal/handler/http/dto"
	"github.com/dcastillo/user-service/internal/handler/http/middleware"
	"github.com/dcastillo/user-service/internal/infrastructure/metrics"
	usecasecontract "github.com/dcastillo/user-service/internal/usecase/contract"
)

// Redirect targets for the activation flow.
const (
	activationSuccessPage = "/public/activate.html"
	activationErrorPage   = "/public/error.html"
)

// UserHandlerInterface defines the methods for the user handler to allow
// interface-based dependency injection (for testing/mocking).
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	GetAllUsers(*gin.Context)
	GetUserByID(*gin.Context)
	Activate(*gin.Context)
	ChangePassword(*gin.Context)
	UpdateUser(*gin.Context)
	DeleteUserByID(*gin.Context)
	GetUsersByName(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// CreateUser handles user registration.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
		return
	}

	input := usecasecontract.RegisterInput{
		Name:           req.Name,
		Password:       req.Password,
		Address:        req.Address,
		Birthdate:      req.Birthdate,
		Identification: req.Identification,
		Phone:          req.Phone,
		Email:          req.Email,
		Role:           req.Role,
	}

	user, err := h.userUsecase.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
			JSONError(c, http.StatusBadRequest, gin.H{"detail": err.Error()}, "Error in data input")
		case errors.Is(err, entity.ErrUserAlreadyExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			JSONError(c, http.StatusConflict, gin.H{}, "User already exists")
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			JSONError(c, http.StatusInternalServerError, gin.H{}, "Error creating user")
		}
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	JSONSuccess(c, http.StatusOK, dto.ToUserResponse(*user), "User created successfully")
}

// GetAllUsers returns every stored user.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userUsecase.GetAllUsers(c.Request.Context())
	if err != nil {
		JSONError(c, http.StatusInternalServerError, []dto.UserResponse{}, "Error internal server")
		return
	}
	JSONSuccess(c, http.StatusOK, dto.ToUserResponses(users), "Users found")
}

// GetUserByID retrieves a user by its numeric id.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		JSONError(c, http.StatusBadRequest, gin.H{}, "Error, incorrect parameters")
		return
	}

	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			JSONError(c, http.StatusNotFound, gin.H{}, "User not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, gin.H{}, "Error internal server")
		return
	}
	JSONSuccess(c, http.StatusOK, dto.ToUserResponse(*user), "User found")
}

// Activate confirms a registration from a token-bearing activation link.
// Code mismatches redirect to the static error page; a verification failure
// is reported in the JSON envelope.
func (h *UserHandler) Activate(c *gin.Context) {
	token := c.Param("token")

	_, err := h.userUsecase.Activate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrActivationCodeMismatch):
			c.Redirect(http.StatusFound, activationErrorPage)
		case errors.Is(err, entity.ErrInvalidToken):
			JSONError(c, http.StatusUnauthorized, gin.H{}, "Err of data user")
		case errors.Is(err, entity.ErrUserNotFound):
			JSONError(c, http.StatusNotFound, gin.H{}, "Err user not found")
		default:
			JSONError(c, http.StatusInternalServerError, gin.H{}, "Error confirming user")
		}
		return
	}

	c.Redirect(http.StatusFound, activationSuccessPage)
}

// ChangePassword verifies the caller's current password and stores the new one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		JSONError(c, http.StatusUnauthorized, gin.H{}, "User not authenticated")
		return
	}

	var req dto.ChangePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.ChangePassword(c.Request.Context(), claims.UserID, req.Password, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound):
			JSONError(c, http.StatusNotFound, gin.H{}, "User not found")
		case errors.Is(err, entity.ErrInvalidCredentials):
			JSONError(c, http.StatusUnauthorized, gin.H{}, "The password sent is wrong")
		case errors.Is(err, entity.ErrValidation):
			JSONError(c, http.StatusBadRequest, gin.H{"detail": err.Error()}, "Error in data input")
		default:
			JSONError(c, http.StatusInternalServerError, gin.H{}, "Error internal server")
		}
		return
	}

	JSONSuccess(c, http.StatusOK, dto.ToUserResponse(*user), "User updated successfully")
}

// UpdateUser applies an administrator's partial patch to a user record.
// Role gating happens in middleware before this handler runs.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		JSONError(c, http.StatusBadRequest, gin.H{}, "Error, parameter id incorrect")
		return
	}

	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updated, err := h.userUsecase.UpdateUser(c.Request.Context(), userID, updateUserRequestToMap(req))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound):
			JSONError(c, http.StatusNotFound, gin.H{}, "User not found")
		case errors.Is(err, entity.ErrValidation):
			JSONError(c, http.StatusBadRequest, gin.H{"detail": err.Error()}, "Error in data input")
		case errors.Is(err, entity.ErrUserAlreadyExists):
			JSONError(c, http.StatusConflict, gin.H{}, "User already exists")
		default:
			JSONError(c, http.StatusInternalServerError, gin.H{}, "Error, user not updated")
		}
		return
	}

	JSONSuccess(c, http.StatusOK, dto.ToUserResponse(*updated), "User updated successfully")
}

// DeleteUserByID removes a user record. Deletion is physical.
func (h *UserHandler) DeleteUserByID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		JSONError(c, http.StatusBadRequest, gin.H{}, "Error, incorrect parameters")
		return
	}

	deleted, err := h.userUsecase.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			JSONError(c, http.StatusBadRequest, gin.H{}, "Could not delete user, not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, gin.H{}, "Could not delete user")
		return
	}

	JSONSuccess(c, http.StatusOK, dto.ToUserResponse(*deleted), "User deleted successfully")
}

// GetUsersByName retrieves users whose name contains the given substring.
func (h *UserHandler) GetUsersByName(c *gin.Context) {
	userName := c.Param("userName")
	if userName == "" || isNumeric(userName) {
		JSONError(c, http.StatusBadRequest, gin.H{}, "Error, incorrect parameters")
		return
	}

	users, err := h.userUsecase.SearchUsersByName(c.Request.Context(), userName)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, []dto.UserResponse{}, "Error internal server")
		return
	}
	JSONSuccess(c, http.StatusOK, dto.ToUserResponses(users), "Users found")
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func updateUserRequestToMap(req dto.UpdateUserRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Birthdate != nil {
		updates["birthdate"] = *req.Birthdate
	}
	if req.Identification != nil {
		updates["identification"] = *req.Identification
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["rol"] = *req.Role
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	return updates
}
