package handler

import (
	"errors"
	"log"

	"medhasmind/internal/delivery/http/dto"
	"medhasmind/internal/delivery/http/middleware"
	"medhasmind/internal/domain/profile"
	"medhasmind/internal/pkg/response"
	"medhasmind/internal/usecase"
	ucauth "medhasmind/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *log.Logger
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	UserType string `json:"user_type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func NewAuthHandler(uc usecase.AuthUsecase, logger *log.Logger) *AuthHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &AuthHandler{uc: uc, logger: logger}
}

// RegisterRoutes wires the public auth endpoints; protected registers the
// ones that need a validated token.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, protected fiber.Router) {
	if r == nil || protected == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/confirm-reset-password", h.ConfirmResetPassword)

	protected.Post("/logout", h.Logout)
	protected.Post("/refresh-token", h.Refresh)
	protected.Get("/me", h.Me)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Signup(c.Context(), ucauth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		UserType: profile.UserType(req.UserType),
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK,
		dto.NewAuthResponse(res.Token, res.ExpiresIn, dto.NewProfileResponse(res.Profile)))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewAuthResponse(res.Token, res.ExpiresIn, dto.NewProfileResponse(res.Profile)))
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	// Revocation is best-effort: a failed mark is logged and the logout
	// still reports success.
	if err := h.uc.Logout(c.Context(), claims); err != nil {
		h.logger.Printf("[Auth] logout revocation failed for %s: %v", claims.UserID, err)
	}

	return response.Success(c, fiber.StatusOK, "Successfully logged out", nil)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	res, err := h.uc.Refresh(c.Context(), claims)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewAuthResponse(res.Token, res.ExpiresIn, dto.NewProfileResponse(res.Profile)))
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, err := h.uc.CurrentUser(c.Context(), claims)
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req passwordResetRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Password reset email sent", nil)
}

func (h *AuthHandler) ConfirmResetPassword(c fiber.Ctx) error {
	var req passwordResetConfirm
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Password updated successfully", nil)
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrAccountInactive):
		return middleware.NewAppError(fiber.StatusForbidden, "Account deactivated", nil, err)
	case errors.Is(err, ucauth.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User profile not found", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrResetUnsupported):
		return middleware.NewAppError(fiber.StatusBadRequest, "Password reset not available", nil, err)
	case errors.Is(err, profile.ErrCreateFailed):
		return middleware.NewAppError(fiber.StatusBadRequest, "Failed to create user account", nil, err)
	case errors.Is(err, ucauth.ErrUpstreamUnavailable):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
