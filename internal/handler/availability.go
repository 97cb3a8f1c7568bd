package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/availability"
	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

// AvailabilityHandler serves the availability check endpoint and the
// administrative block CRUD.
type AvailabilityHandler struct {
	Props        *repository.PropertyRepo
	Reservations *repository.ReservationRepo
	Blocks       *repository.BlockRepo
	Audit        *repository.AuditRepo
}

func NewAvailabilityHandler(p *repository.PropertyRepo, r *repository.ReservationRepo, b *repository.BlockRepo, a *repository.AuditRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Props: p, Reservations: r, Blocks: b, Audit: a}
}

type availabilityResp struct {
	Bookable bool   `json:"bookable"`
	Nights   int    `json:"nights"`
	Kind     string `json:"conflict_kind,omitempty"`
	ID       uint64 `json:"conflict_id,omitempty"`
	Code     string `json:"conflict_code,omitempty"`
}

// Check handles GET /v1/properties/:id/availability?check_in=&check_out=.
// It reports whether the half-open interval is free and, when it is not,
// names the first conflicting reservation or block.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	checkIn, err := queryDate(c, "check_in")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := queryDate(c, "check_out")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
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

	existing, err := h.Reservations.ConflictCandidates(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	blocks, err := h.Blocks.ListForProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	decision, err := availability.Check(checkIn, checkOut, existing, blocks)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	nights, _ := dates.RoomNights(checkIn, checkOut)
	resp := availabilityResp{Bookable: decision.Bookable, Nights: nights}
	if !decision.Bookable {
		resp.Kind = string(decision.Conflict.Kind)
		resp.ID = decision.Conflict.ID
		resp.Code = decision.Conflict.Code
	}
	return c.JSON(http.StatusOK, resp)
}

type blockReq struct {
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Reason    *string `json:"reason"`
}

// CreateBlock handles POST /v1/properties/:id/blocks.
func (h *AvailabilityHandler) CreateBlock(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req blockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date and end_date required"})
	}
	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be after start_date"})
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

	b := &model.AvailabilityBlock{
		PropertyID: id,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		CreatedBy:  actorPtr(c),
	}
	if err := h.Blocks.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create block"})
	}
	h.auditBlock(c, "block.create", b.ID, b)
	return c.JSON(http.StatusCreated, b)
}

// ListBlocks handles GET /v1/properties/:id/blocks.
func (h *AvailabilityHandler) ListBlocks(c echo.Context) error {
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
	items, err := h.Blocks.ListForProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteBlock handles DELETE /v1/blocks/:id.
func (h *AvailabilityHandler) DeleteBlock(c echo.Context) error {
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
	if err := h.Blocks.Delete(ctx, id, scope); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "block not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "block not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.auditBlock(c, "block.delete", id, nil)
	return c.NoContent(http.StatusNoContent)
}

func (h *AvailabilityHandler) auditBlock(c echo.Context, action string, entityID uint64, diff any) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	var actor uint64
	if p := actorPtr(c); p != nil {
		actor = *p
	}
	_, _ = h.Audit.Record(ctx, actor, action, "availability_block", entityID, diff)
}

// queryDate parses a required YYYY-MM-DD query parameter.  A missing
// parameter fails the same way a malformed one does.
func queryDate(c echo.Context, name string) (time.Time, error) {
	return dates.Parse(c.QueryParam(name))
}
