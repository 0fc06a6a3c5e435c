package handler

import (
	"errors"
	"log"

	"medhasmind/internal/delivery/http/dto"
	"medhasmind/internal/delivery/http/middleware"
	"medhasmind/internal/domain/profile"
	"medhasmind/internal/pkg/response"
	"medhasmind/internal/usecase"
	ucprofiles "medhasmind/internal/usecase/profiles"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc     usecase.ProfileUsecase
	logger *log.Logger
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	AvatarURL    *string `json:"avatar_url"`
	Bio          *string `json:"bio"`
	Institution  *string `json:"institution"`
	Location     *string `json:"location"`
	LinkedInURL  *string `json:"linkedin_url"`
	GitHubURL    *string `json:"github_url"`
	PortfolioURL *string `json:"portfolio_url"`
}

func NewUserHandler(uc usecase.ProfileUsecase, logger *log.Logger) *UserHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &UserHandler{uc: uc, logger: logger}
}

// RegisterRoutes expects an authenticated router group; the admin-only
// endpoints add their own role gate.
func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.GetMyProfile)
	r.Put("/profile", h.UpdateMyProfile)

	// The gate must run before the terminal handler; handlers execute in
	// the order they are registered.
	admin := middleware.RequireRole(profile.RoleAdmin)
	r.Get("/", admin, h.AdminSearch)
	r.Patch("/:id/activate", admin, h.Activate)
	r.Patch("/:id/deactivate", admin, h.Deactivate)

	r.Get("/:id", h.GetByID)
}

func (h *UserHandler) GetMyProfile(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	prof, stats, err := h.uc.GetWithStats(c.Context(), claims.UserID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileStatsResponse(prof, stats))
}

func (h *UserHandler) UpdateMyProfile(c fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	prof, err := h.uc.UpdateOwn(c.Context(), claims.UserID, profile.UpdateInput{
		Name:         req.Name,
		AvatarURL:    req.AvatarURL,
		Bio:          req.Bio,
		Institution:  req.Institution,
		Location:     req.Location,
		LinkedInURL:  req.LinkedInURL,
		GitHubURL:    req.GitHubURL,
		PortfolioURL: req.PortfolioURL,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *UserHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	prof, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(prof))
}

func (h *UserHandler) AdminSearch(c fiber.Ctx) error {
	list, err := h.uc.AdminSearch(c.Context(), c.Query("query"), c.Query("role"))
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileListResponse(list))
}

func (h *UserHandler) Activate(c fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *UserHandler) Deactivate(c fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *UserHandler) setActive(c fiber.Ctx, active bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	// Best-effort acknowledgment; the failure signal is logged here and
	// surfaced to the admin as a 5xx.
	if err := h.uc.SetActive(c.Context(), id, active); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucprofiles.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucprofiles.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
