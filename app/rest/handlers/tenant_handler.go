package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"session-service/app/metrics"
	"session-service/app/port"
)

// TenantHandler handles tenant authorization HTTP requests
type TenantHandler struct {
	tenantUsecase port.TenantUsecase
	logger        *slog.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantUsecase port.TenantUsecase, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{
		tenantUsecase: tenantUsecase,
		logger:        logger,
	}
}

// ListMemberships returns the caller's memberships and tenants
// @Summary List memberships
// @Description List the authenticated identity's memberships and the tenants they grant
// @Tags tenants
// @Produce json
// @Success 200 {object} domain.MembershipsResponse
// @Failure 401 {object} ErrorResponse
// @Router /v1/tenants/memberships [get]
func (h *TenantHandler) ListMemberships(c echo.Context) error {
	ctx := c.Request().Context()

	identityID, err := identityIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	response, err := h.tenantUsecase.ListMemberships(ctx, identityID)
	if err != nil {
		h.logger.Error("failed to list memberships", "identity_id", identityID, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response)
}

// SwitchTenant changes the session's active tenant
// @Summary Switch tenant
// @Description Switch the session's active tenant to one inside the membership set
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} domain.SwitchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /v1/tenants/{id}/switch [post]
func (h *TenantHandler) SwitchTenant(c echo.Context) error {
	ctx := c.Request().Context()

	identityID, err := identityIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tenant id"})
	}

	token := extractBearerToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "credential required"})
	}

	response, err := h.tenantUsecase.SwitchTenant(ctx, identityID, token, tenantID)
	if err != nil {
		metrics.RecordTenantSwitch(false)
		h.logger.Warn("tenant switch refused",
			"identity_id", identityID,
			"tenant_id", tenantID,
			"error", err)
		return respondError(c, err)
	}

	metrics.RecordTenantSwitch(true)
	return c.JSON(http.StatusOK, response)
}

// CreateTenant provisions a new tenant owned by the caller
// @Summary Create tenant
// @Description Create a tenant; the caller becomes its owner
// @Tags tenants
// @Accept json
// @Produce json
// @Param body body CreateTenantRequest true "Tenant creation request"
// @Success 201 {object} domain.Tenant
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /v1/tenants [post]
func (h *TenantHandler) CreateTenant(c echo.Context) error {
	ctx := c.Request().Context()

	identityID, err := identityIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	}

	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Slug == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "slug and name are required"})
	}

	tenant, err := h.tenantUsecase.CreateTenant(ctx, req.Slug, req.Name, identityID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant resolves a tenant by id
// @Summary Get tenant
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} domain.Tenant
// @Failure 404 {object} ErrorResponse
// @Router /v1/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tenant id"})
	}

	tenant, err := h.tenantUsecase.GetTenantByID(ctx, tenantID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}

// identityIDFromContext reads the identity id set by the auth middleware.
func identityIDFromContext(c echo.Context) (uuid.UUID, error) {
	raw, ok := c.Get("identity_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, echo.ErrUnauthorized
	}
	return uuid.Parse(raw)
}

// CreateTenantRequest is the tenant creation payload.
type CreateTenantRequest struct {
	Slug string `json:"slug" validate:"required,max=100"`
	Name string `json:"name" validate:"required"`
}
