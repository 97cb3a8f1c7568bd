package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/codes"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

// PropertyHandler serves the property CRUD and assignment endpoints.
// Mutations are admin-only (enforced by route middleware); reads are
// filtered by the caller's scope.
type PropertyHandler struct {
	Props *repository.PropertyRepo
	Audit *repository.AuditRepo
}

func NewPropertyHandler(p *repository.PropertyRepo, a *repository.AuditRepo) *PropertyHandler {
	return &PropertyHandler{Props: p, Audit: a}
}

type propertyReq struct {
	Name      string   `json:"name" validate:"required"`
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	State     *string  `json:"state"`
	Pincode   *string  `json:"pincode" validate:"omitempty,pincode"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Timezone  *string  `json:"timezone"`
	Bedrooms  *int     `json:"bedrooms"`
	Bathrooms *int     `json:"bathrooms"`
	MaxGuests int      `json:"max_guests" validate:"required,min=1"`
	HasPool   bool     `json:"has_pool"`
	HasLawn   bool     `json:"has_lawn"`
}

// Create handles POST /v1/properties.  The property code is generated
// server-side from the city and name.
func (h *PropertyHandler) Create(c echo.Context) error {
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and max_guests required"})
	}

	city := ""
	if req.City != nil {
		city = *req.City
	}
	uid := actorPtr(c)
	p := &model.Property{
		Code:      codes.Property(city, req.Name),
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Timezone:  req.Timezone,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		MaxGuests: req.MaxGuests,
		HasPool:   req.HasPool,
		HasLawn:   req.HasLawn,
		Active:    true,
		CreatedBy: uid,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Props.Create(ctx, p); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "property code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create property"})
	}
	h.audit(c, "property.create", p.ID, p)
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /v1/properties/:id.
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and max_guests required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Props.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	p.Name = req.Name
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.Pincode = req.Pincode
	p.Lat = req.Lat
	p.Lng = req.Lng
	p.Timezone = req.Timezone
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.MaxGuests = req.MaxGuests
	p.HasPool = req.HasPool
	p.HasLawn = req.HasLawn

	if err := h.Props.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.audit(c, "property.update", p.ID, p)
	return c.JSON(http.StatusOK, p)
}

// Deactivate handles DELETE /v1/properties/:id.  Properties with future
// non-cancelled reservations cannot be deactivated.
func (h *PropertyHandler) Deactivate(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Props.Deactivate(ctx, id); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "property has upcoming reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
	}
	h.audit(c, "property.deactivate", id, nil)
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/properties/:id.  Out-of-scope properties read as
// not found rather than forbidden so IDs are not guessable.
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.Allows(id) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}

	p, err := h.Props.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// List handles GET /v1/properties and returns the active properties
// visible to the caller.
func (h *PropertyHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	items, err := h.Props.ListScoped(ctx, scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type assignReq struct {
	OwnerID   uint64 `json:"owner_id"`
	ManagerID uint64 `json:"manager_id"`
}

// Assign handles POST /v1/properties/:id/assign and links an owner or a
// manager to the property.
func (h *PropertyHandler) Assign(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if (req.OwnerID == 0) == (req.ManagerID == 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "exactly one of owner_id or manager_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.OwnerID != 0 {
		err = h.Props.AssignOwner(ctx, id, req.OwnerID)
	} else {
		err = h.Props.AssignManager(ctx, id, req.ManagerID)
	}
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already assigned"})
		}
		if strings.Contains(err.Error(), "1452") {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "owner or manager not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign failed"})
	}
	h.audit(c, "property.assign", id, req)
	return c.NoContent(http.StatusNoContent)
}

func (h *PropertyHandler) audit(c echo.Context, action string, entityID uint64, diff any) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	uid := actorPtr(c)
	var actor uint64
	if uid != nil {
		actor = *uid
	}
	_, _ = h.Audit.Record(ctx, actor, action, "property", entityID, diff)
}
