package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Menu categories / meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealBBQ       = "bbq"
	MealALaCarte  = "alacarte"
)

// Menu is a food item offered at a property, from the `menus` table.
// AvailableDays is a comma-separated list of short day names
// ("Mon,Tue,...") or empty for every day.
type Menu struct {
	ID             uint64          // menus.id
	PropertyID     uint64          // menus.property_id
	Category       string          // menus.menu_category
	ItemName       string          // menus.item_name
	Description    *string         // menus.description (nullable)
	IsVeg          bool            // menus.is_veg
	PricePerPerson decimal.Decimal // menus.price_per_person
	MinOrderQty    int             // menus.min_order_qty
	AvailableDays  string          // menus.available_days
	IsFixedMenu    bool            // menus.is_fixed_menu
	IsOptional     bool            // menus.is_optional
	Active         bool            // menus.active
	CreatedAt      time.Time       // menus.created_at
	UpdatedAt      time.Time       // menus.updated_at
}

var mealLabels = map[string]string{
	MealBreakfast: "Breakfast",
	MealLunch:     "Lunch",
	MealDinner:    "Dinner",
	MealBBQ:       "BBQ",
	MealALaCarte:  "À la Carte",
}

// MealTypeLabel returns the display label for a meal type, falling back
// to the raw value for unknown types.
func MealTypeLabel(mealType string) string {
	if l, ok := mealLabels[mealType]; ok {
		return l
	}
	return mealType
}

var dayNames = map[string]string{
	"Mon": "Monday", "Tue": "Tuesday", "Wed": "Wednesday", "Thu": "Thursday",
	"Fri": "Friday", "Sat": "Saturday", "Sun": "Sunday",
}

// AvailableDaysLabel renders a comma-separated short-day list as a
// friendly label: all seven days collapse to "All Days", Mon-Fri to
// "Weekdays" and Sat+Sun to "Weekends".
func AvailableDaysLabel(days string) string {
	var full []string
	hasSat, hasSun := false, false
	for _, d := range strings.Split(days, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, ok := dayNames[d]
		if !ok {
			name = d
		}
		full = append(full, name)
		if name == "Saturday" {
			hasSat = true
		}
		if name == "Sunday" {
			hasSun = true
		}
	}
	switch {
	case len(full) == 7:
		return "All Days"
	case len(full) == 5 && !hasSat && !hasSun:
		return "Weekdays"
	case len(full) == 2 && hasSat && hasSun:
		return "Weekends"
	}
	return strings.Join(full, ", ")
}
