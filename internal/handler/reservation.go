package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Hostizzy/hostizzy-pms/internal/codes"
	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/queue"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
	"github.com/Hostizzy/hostizzy-pms/internal/service"
)

// ReservationHandler serves reservation creation, listing and status
// transitions.
type ReservationHandler struct {
	Props        *repository.PropertyRepo
	Reservations *repository.ReservationRepo
	Audit        *repository.AuditRepo
	Logger       *slog.Logger
}

func NewReservationHandler(p *repository.PropertyRepo, r *repository.ReservationRepo, a *repository.AuditRepo, lg *slog.Logger) *ReservationHandler {
	return &ReservationHandler{Props: p, Reservations: r, Audit: a, Logger: lg}
}

type reservationReq struct {
	PropertyID     uint64  `json:"property_id" validate:"required"`
	PrimaryGuestID *uint64 `json:"primary_guest_id"`
	Channel        string  `json:"channel" validate:"required,oneof=direct airbnb mmt booking other"`
	CheckIn        string  `json:"check_in" validate:"required"`
	CheckOut       string  `json:"check_out" validate:"required"`
	Adults         int     `json:"adults" validate:"required,min=1"`
	Children       int     `json:"children" validate:"min=0"`
	Status         string  `json:"status" validate:"omitempty,oneof=tentative confirmed"`

	BaseRatePerNight   string  `json:"base_rate_per_night"`
	ExtraGuestFeeTotal string  `json:"extra_guest_fee_total"`
	CleaningFeeTotal   string  `json:"cleaning_fee_total"`
	TaxesTotal         string  `json:"taxes_total"`
	DiscountTotal      string  `json:"discount_total"`
	Currency           string  `json:"currency"`
	Notes              *string `json:"notes"`
}

type conflictResp struct {
	Error    string `json:"error"`
	Kind     string `json:"kind"`
	ID       uint64 `json:"id"`
	Code     string `json:"code,omitempty"`
}

// Create handles POST /v1/reservations.  The stay interval is half-open:
// a new stay may start on another's checkout day.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id, channel, check_in, check_out and adults required"})
	}

	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	nights, err := dates.RoomNights(checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.Allows(req.PropertyID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "property not in scope"})
	}

	prop, err := h.Props.GetByID(ctx, req.PropertyID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !prop.Active {
		return c.JSON(http.StatusConflict, echo.Map{"error": "property is inactive"})
	}
	totalGuests := req.Adults + req.Children
	if totalGuests > prop.MaxGuests {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest count exceeds property capacity"})
	}

	base := parseMoney(req.BaseRatePerNight)
	extra := parseMoney(req.ExtraGuestFeeTotal)
	cleaning := parseMoney(req.CleaningFeeTotal)
	taxes := parseMoney(req.TaxesTotal)
	discount := parseMoney(req.DiscountTotal)
	total := base.Mul(decimal.NewFromInt(int64(nights))).
		Add(extra).Add(cleaning).Add(taxes).Sub(discount)

	status := req.Status
	if status == "" {
		status = model.StatusTentative
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	res := &model.Reservation{
		Code:               codes.Reservation(),
		PropertyID:         req.PropertyID,
		PrimaryGuestID:     req.PrimaryGuestID,
		Channel:            req.Channel,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Adults:             req.Adults,
		Children:           req.Children,
		TotalGuests:        totalGuests,
		Status:             status,
		BaseRatePerNight:   base,
		ExtraGuestFeeTotal: extra,
		CleaningFeeTotal:   cleaning,
		TaxesTotal:         taxes,
		DiscountTotal:      discount,
		TotalAmount:        total,
		Currency:           currency,
		Notes:              req.Notes,
		CreatedBy:          actorPtr(c),
	}
	// Availability is checked inside the insert transaction under a
	// property row lock; concurrent creates for the same dates serialize.
	decision, err := h.Reservations.Create(ctx, res)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation code collision, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	if !decision.Bookable {
		cf := decision.Conflict
		return c.JSON(http.StatusConflict, conflictResp{
			Error: "dates are not available",
			Kind:  string(cf.Kind),
			ID:    cf.ID,
			Code:  cf.Code,
		})
	}
	h.audit(c, "reservation.create", res.ID, res)

	if res.Status == model.StatusConfirmed {
		h.publishConfirmed(res)
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/reservations with optional property_id, status,
// from, to and limit query filters.
func (h *ReservationHandler) List(c echo.Context) error {
	var f repository.ListFilter
	if v := c.QueryParam("property_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_id"})
		}
		f.PropertyID = id
	}
	f.Status = c.QueryParam("status")
	if v := c.QueryParam("from"); v != "" {
		t, err := dates.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
		f.From = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := dates.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
		}
		f.To = t
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		f.Limit = n
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	items, err := h.Reservations.ListScoped(ctx, scope, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
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
	res, err := h.Reservations.GetScoped(ctx, id, scope)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, res)
}

type statusReq struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

// UpdateStatus handles PATCH /v1/reservations/:id/status.  Tentative may
// confirm or cancel, confirmed may complete or cancel; cancelled and
// completed are terminal.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be confirmed, cancelled or completed"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	res, err := h.Reservations.UpdateStatus(ctx, id, req.Status, scope)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation not in scope"})
		case repository.ErrInvalidTransition:
			return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation changed concurrently, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.audit(c, "reservation.status", res.ID, echo.Map{"status": res.Status})

	if res.Status == model.StatusConfirmed {
		h.publishConfirmed(res)
	}
	return c.JSON(http.StatusOK, res)
}

// publishConfirmed fires the confirmation event in the background; a
// broker outage never fails the request.
func (h *ReservationHandler) publishConfirmed(res *model.Reservation) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		Code:          res.Code,
		PropertyID:    res.PropertyID,
		CheckIn:       res.CheckIn.Format(dates.Layout),
		CheckOut:      res.CheckOut.Format(dates.Layout),
		TotalGuests:   res.TotalGuests,
		TotalAmount:   res.TotalAmount.String(),
		Currency:      res.Currency,
		ConfirmedAt:   time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := service.PublishReservationConfirmed(ctx, ev); err != nil {
			h.Logger.Warn("publish reservation.confirmed failed", "code", ev.Code, "err", err)
		}
	}()
}

func (h *ReservationHandler) audit(c echo.Context, action string, entityID uint64, diff any) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	var actor uint64
	if p := actorPtr(c); p != nil {
		actor = *p
	}
	_, _ = h.Audit.Record(ctx, actor, action, "reservation", entityID, diff)
}

// parseMoney parses a decimal string, treating empty or malformed input
// as zero.
func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
