package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hostizzy/hostizzy-pms/internal/analytics"
	"github.com/Hostizzy/hostizzy-pms/internal/dates"
	"github.com/Hostizzy/hostizzy-pms/internal/repository"
)

// DashboardHandler serves the landing dashboard and the analytics
// summary endpoint.
type DashboardHandler struct {
	Props        *repository.PropertyRepo
	Reservations *repository.ReservationRepo
	Analytics    *repository.AnalyticsRepo
}

func NewDashboardHandler(p *repository.PropertyRepo, r *repository.ReservationRepo, a *repository.AnalyticsRepo) *DashboardHandler {
	return &DashboardHandler{Props: p, Reservations: r, Analytics: a}
}

// Dashboard handles GET /v1/dashboard: a 30-day performance summary,
// the five most recent reservations, and confirmed check-ins over the
// next seven days.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	window := analytics.LastDays(today, 30)

	records, err := h.Analytics.Window(ctx, window, scope, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	summary := analytics.Summarize(records, window)

	recent, err := h.Reservations.Recent(ctx, scope, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	upcoming, err := h.Reservations.UpcomingCheckIns(ctx, scope, today, today.AddDate(0, 0, 7), 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"summary":            summary,
		"recent":             recent,
		"upcoming_check_ins": upcoming,
	})
}

// Summary handles GET /v1/analytics/summary?from=&to=&property_id=.
// The window is inclusive on both ends; responses are cached by the
// redis middleware when enabled.
func (h *DashboardHandler) Summary(c echo.Context) error {
	from, err := dates.Parse(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	to, err := dates.Parse(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}
	window := analytics.Window{From: from, To: to}
	if window.Days() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not precede from"})
	}

	var propertyID uint64
	if v := c.QueryParam("property_id"); v != "" {
		propertyID, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property_id"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	scope, err := resolveScope(ctx, c, h.Props)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "scope resolution failed"})
	}
	records, err := h.Analytics.Window(ctx, window, scope, propertyID)
	if err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "property not in scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"window": echo.Map{
			"from": from.Format(dates.Layout),
			"to":   to.Format(dates.Layout),
			"days": window.Days(),
		},
		"summary": analytics.Summarize(records, window),
	})
}
