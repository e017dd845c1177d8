//go:generate go run github.com/a-h/templ/cmd/templ@v0.2.793 generate -path ..

package components

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/a-h/templ"

	"lankarail-console/internal/models"
)

// Notification kinds
const (
	NotifyError   = "danger"
	NotifySuccess = "success"
	NotifyInfo    = "info"
)

// PanelID is the DOM id of a panel body
func PanelID(name string) string {
	return "panel-" + name
}

// ReloadEvent is the HX-Trigger event that makes a panel fetch itself again
func ReloadEvent(name string) string {
	return "reload-" + name
}

func reloadTrigger(name string) string {
	return "load, " + ReloadEvent(name) + " from:body"
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("LKR %.2f", *v)
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optionalKm(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " km"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// datetimeLocal trims a backend timestamp to what <input type="datetime-local"> accepts
func datetimeLocal(raw string) string {
	if len(raw) >= 16 {
		return raw[:16]
	}
	return raw
}

func badgeClass(status string) string {
	switch status {
	case "CONFIRMED", "APPROVED":
		return "bg-success"
	case "PAID":
		return "bg-info"
	case "PENDING":
		return "bg-warning text-dark"
	case "CANCELED", "CANCELLED", "REJECTED":
		return "bg-danger"
	}
	return "bg-secondary"
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "Disable"
	}
	return "Enable"
}

// toggleVals sends the flag as it is now; the handler flips it
func toggleVals(enabled bool) string {
	return fmt.Sprintf(`{"enabled": "%t"}`, enabled)
}

type hiddenField struct {
	name  string
	value string
}

// repostFields lists a submitted form in key order, minus the token and the
// confirmation flag, which the dialog writes itself
func repostFields(form url.Values) []hiddenField {
	keys := make([]string, 0, len(form))
	for k := range form {
		if k == "csrf_token" || k == "confirmed" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fields []hiddenField
	for _, k := range keys {
		for _, v := range form[k] {
			fields = append(fields, hiddenField{name: k, value: v})
		}
	}
	return fields
}

type statCard struct {
	label string
	value int64
}

func statCards(stats *models.DashboardStats) []statCard {
	return []statCard{
		{"Trains", stats.TotalTrains},
		{"Schedules", stats.TotalSchedules},
		{"Pending bookings", stats.PendingBookings},
		{"Users", stats.TotalUsers},
	}
}

type field struct {
	name     string
	label    string
	kind     string
	value    string
	required bool
	attrs    templ.Attributes
}

func formAction(base string, id int64) string {
	if id == 0 {
		return base
	}
	return base + "/" + idString(id)
}

func submitLabel(id int64) string {
	if id == 0 {
		return "Create"
	}
	return "Save"
}

// valueOr is the zero record for a nil pointer, which is how forms tell
// create from edit
func valueOr[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatValue(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}
