package handler

import (
	"database/sql"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/config"
	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/model"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
	"github.com/Hostizzy/hostizzy-pms/internal/storage"
)

// GuestHandler serves guest CRUD, reservation guest links, and the
// public KYC flow reached by reservation code.
type GuestHandler struct {
	Cfg          config.Config
	Guests       *repository.GuestRepo
	Reservations *repository.ReservationRepo
	Props        *repository.PropertyRepo
	Store        *storage.Store
}

func NewGuestHandler(cfg config.Config, g *repository.GuestRepo, r *repository.ReservationRepo, p *repository.PropertyRepo, st *storage.Store) *GuestHandler {
	return &GuestHandler{Cfg: cfg, Guests: g, Reservations: r, Props: p, Store: st}
}

type guestReq struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,inphone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode" validate:"omitempty,pincode"`
	DOB     *string `json:"dob"`
}

// Create handles POST /v1/guests.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid name and email required"})
	}
	if req.DOB != nil {
		if _, err := dates.Parse(*req.DOB); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "dob must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := &model.Guest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		DOB:     req.DOB,
	}
	if err := h.Guests.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create guest"})
	}
	return c.JSON(http.StatusCreated, g)
}

// Get handles GET /v1/guests/:id.  A guest tied to reservations is only
// visible to callers whose scope covers at least one of those
// properties; unlinked guests are visible to any staff caller.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if !scope.All {
		ids, err := h.Guests.PropertyIDsForGuest(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if len(ids) > 0 && !scope.AllowsAny(ids) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
	}
	return c.JSON(http.StatusOK, g)
}

type linkReq struct {
	GuestID uint64 `json:"guest_id" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=primary secondary"`
}

// Link handles POST /v1/reservations/:id/guests.
func (h *GuestHandler) Link(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req linkReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id required"})
	}
	if req.Role == "" {
		req.Role = "secondary"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if _, err := h.Reservations.GetScoped(ctx, id, scope); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if _, err := h.Guests.GetByID(ctx, req.GuestID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Guests.LinkToReservation(ctx, id, req.GuestID, req.Role); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest already linked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "link failed"})
	}
	if req.Role == "primary" {
		if err := h.Reservations.SetPrimaryGuest(ctx, id, req.GuestID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "link failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ListForReservation handles GET /v1/reservations/:id/guests.
func (h *GuestHandler) ListForReservation(c echo.Context) error {
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
	if _, err := h.Reservations.GetScoped(ctx, id, scope); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "reservation not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Guests.ListForReservation(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// KYCLookup handles the public GET /guest/kyc/:code.  It exposes only
// what the KYC form needs; nothing about money or other guests leaks.
func (h *GuestHandler) KYCLookup(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Reservations.GetByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if res.Status == model.StatusCancelled {
		return c.JSON(http.StatusGone, echo.Map{"error": "reservation cancelled"})
	}
	prop, err := h.Props.GetByID(ctx, res.PropertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":          res.Code,
		"property_name": prop.Name,
		"check_in":      res.CheckIn.Format(dates.Layout),
		"check_out":     res.CheckOut.Format(dates.Layout),
		"total_guests":  res.TotalGuests,
	})
}

var extByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// KYCUpload handles the public POST /guest/kyc/:code.  The multipart
// form carries the guest's details, an ID type/number and the document
// itself; the document lands in the private bucket and is scheduled for
// deletion after the retention window.
func (h *GuestHandler) KYCUpload(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	idType := c.FormValue("id_type")
	idNumber := strings.TrimSpace(c.FormValue("id_number"))
	if name == "" || email == "" || idNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and id_number required"})
	}
	switch idType {
	case model.IDTypeAadhaar, model.IDTypePassport, model.IDTypeDL, model.IDTypeOther:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_type must be aadhaar, passport, dl or other"})
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document file required"})
	}
	if fh.Size > storage.MaxDocumentBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "document exceeds 5 MB"})
	}
	contentType := fh.Header.Get("Content-Type")

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Reservations.GetByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if res.Status == model.StatusCancelled {
		return c.JSON(http.StatusGone, echo.Map{"error": "reservation cancelled"})
	}

	g := &model.Guest{Name: name, Email: email}
	if phone := strings.TrimSpace(c.FormValue("phone")); phone != "" {
		g.Phone = &phone
	}
	if err := h.Guests.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save guest"})
	}

	role := "secondary"
	if res.PrimaryGuestID == nil {
		role = "primary"
	}
	if err := h.Guests.LinkToReservation(ctx, res.ID, g.ID, role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not link guest"})
	}
	if role == "primary" {
		if err := h.Reservations.SetPrimaryGuest(ctx, res.ID, g.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not link guest"})
		}
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read document"})
	}
	defer src.Close()

	key := path.Join(res.Code, uuid.NewString()+extByType[contentType])
	storedKey, err := h.Store.Put(ctx, key, src, fh.Size, contentType)
	if err != nil {
		switch err {
		case storage.ErrUnavailable:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "document storage not configured"})
		case storage.ErrContentType:
			return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"error": "document must be JPEG, PNG or PDF"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	now := time.Now().UTC()
	gid := &model.GuestID{
		GuestID:       g.ID,
		ReservationID: res.ID,
		IDType:        idType,
		IDNumber:      idNumber,
		FileURL:       &storedKey,
		CollectedAt:   &now,
		DeleteAfter:   now.AddDate(0, 0, h.Cfg.KYCRetainDays),
	}
	if err := h.Guests.InsertGuestID(ctx, gid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record document"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"guest_id":     g.ID,
		"role":         role,
		"delete_after": gid.DeleteAfter.Format(dates.Layout),
	})
}

// DocumentURL handles GET /v1/guest-ids/:id/url: a short-lived presigned
// link for staff to view a stored document.  The caller's scope must
// cover the property of the reservation the document was collected for.
func (h *GuestHandler) DocumentURL(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	gid, err := h.Guests.GetGuestID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	if _, err := h.Reservations.GetScoped(ctx, gid.ReservationID, scope); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "document not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	if gid.FileURL == nil {
		return c.JSON(http.StatusGone, echo.Map{"error": "document purged"})
	}
	u, err := h.Store.PresignGet(ctx, *gid.FileURL, 15*time.Minute)
	if err != nil {
		if err == storage.ErrUnavailable {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "document storage not configured"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "presign failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": u, "expires_in_seconds": 900})
}
