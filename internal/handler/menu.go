package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

// MenuHandler serves per-property food menu CRUD.
type MenuHandler struct {
	Props *repository.PropertyRepo
	Menus *repository.MenuRepo
}

func NewMenuHandler(p *repository.PropertyRepo, m *repository.MenuRepo) *MenuHandler {
	return &MenuHandler{Props: p, Menus: m}
}

type menuReq struct {
	Category       string  `json:"category" validate:"required,oneof=breakfast lunch dinner bbq alacarte"`
	ItemName       string  `json:"item_name" validate:"required"`
	Description    *string `json:"description"`
	IsVeg          bool    `json:"is_veg"`
	PricePerPerson string  `json:"price_per_person"`
	MinOrderQty    int     `json:"min_order_qty" validate:"min=0"`
	AvailableDays  string  `json:"available_days"`
	IsFixedMenu    bool    `json:"is_fixed_menu"`
	IsOptional     bool    `json:"is_optional"`
	Active         *bool   `json:"active"`
}

func (req *menuReq) apply(m *model.Menu) error {
	price := decimal.Zero
	if s := strings.TrimSpace(req.PricePerPerson); s != "" {
		var err error
		price, err = decimal.NewFromString(s)
		if err != nil || price.IsNegative() {
			return errBadPrice
		}
	}
	m.Category = req.Category
	m.ItemName = strings.TrimSpace(req.ItemName)
	m.Description = req.Description
	m.IsVeg = req.IsVeg
	m.PricePerPerson = price
	m.MinOrderQty = req.MinOrderQty
	m.AvailableDays = strings.TrimSpace(req.AvailableDays)
	m.IsFixedMenu = req.IsFixedMenu
	m.IsOptional = req.IsOptional
	m.Active = true
	if req.Active != nil {
		m.Active = *req.Active
	}
	return nil
}

var errBadPrice = echo.NewHTTPError(http.StatusBadRequest, "price_per_person must be a non-negative decimal")

// Create handles POST /v1/properties/:id/menus.
func (h *MenuHandler) Create(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req menuReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category and item_name required"})
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
	if _, err := h.Props.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	m := &model.Menu{PropertyID: id}
	if err := req.apply(m); err != nil {
		return err
	}
	if err := h.Menus.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create menu item"})
	}
	return c.JSON(http.StatusCreated, menuView(m))
}

// List handles GET /v1/properties/:id/menus?active=true.
func (h *MenuHandler) List(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	activeOnly := c.QueryParam("active") == "true"

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.Allows(id) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
	}
	items, err := h.Menus.ListForProperty(ctx, id, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for i := range items {
		out = append(out, menuView(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Update handles PUT /v1/menus/:id.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req menuReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category and item_name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Menus.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.Allows(m.PropertyID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	}
	if err := req.apply(m); err != nil {
		return err
	}
	if err := h.Menus.Update(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, menuView(m))
}

// Delete handles DELETE /v1/menus/:id.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Menus.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.Allows(m.PropertyID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	}
	if err := h.Menus.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// menuView decorates a menu row with its display labels.
func menuView(m *model.Menu) echo.Map {
	return echo.Map{
		"id":                  m.ID,
		"property_id":         m.PropertyID,
		"category":            m.Category,
		"category_label":      model.MealTypeLabel(m.Category),
		"item_name":           m.ItemName,
		"description":         m.Description,
		"is_veg":              m.IsVeg,
		"price_per_person":    m.PricePerPerson,
		"min_order_qty":       m.MinOrderQty,
		"available_days":      m.AvailableDays,
		"available_days_label": model.AvailableDaysLabel(m.AvailableDays),
		"is_fixed_menu":       m.IsFixedMenu,
		"is_optional":         m.IsOptional,
		"active":              m.Active,
	}
}
