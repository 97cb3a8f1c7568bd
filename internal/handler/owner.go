package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

// OwnerHandler serves the admin-only owner registry.  Owner records are
// created here first, then linked to properties through the property
// assign endpoint; an owner linked to a login profile sees that
// portfolio when they sign in.
type OwnerHandler struct {
	Owners *repository.OwnerRepo
	Audit  *repository.AuditRepo
}

func NewOwnerHandler(o *repository.OwnerRepo, a *repository.AuditRepo) *OwnerHandler {
	return &OwnerHandler{Owners: o, Audit: a}
}

type ownerReq struct {
	UserID      *uint64 `json:"user_id"`
	CompanyName *string `json:"company_name"`
	GSTIN       *string `json:"gstin"`
	Phone       *string `json:"phone" validate:"omitempty,inphone"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// Create handles POST /v1/owners.
func (h *OwnerHandler) Create(c echo.Context) error {
	var req ownerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone or email"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	o := &model.Owner{
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		GSTIN:       req.GSTIN,
		Phone:       req.Phone,
		Email:       req.Email,
	}
	if err := h.Owners.Create(ctx, o); err != nil {
		if strings.Contains(err.Error(), "1452") {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id does not reference a profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create owner"})
	}
	h.audit(c, "owner.create", o.ID, o)
	return c.JSON(http.StatusCreated, o)
}

// Get handles GET /v1/owners/:id.
func (h *OwnerHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Owners.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "owner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, o)
}

// List handles GET /v1/owners.
func (h *OwnerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Owners.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *OwnerHandler) audit(c echo.Context, action string, entityID uint64, diff any) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	var actor uint64
	if p := actorPtr(c); p != nil {
		actor = *p
	}
	_, _ = h.Audit.Record(ctx, actor, action, "owner", entityID, diff)
}
