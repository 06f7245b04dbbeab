package admin

import (
	"time"

	"zozikafe/internal/admin"
	"zozikafe/internal/domain/machines"
)

// MachineRequest is the JSON body of POST and PUT /api/admin/machines.
// Type and features accept either {"bg","en"} objects or "bg|en" strings.
type MachineRequest struct {
	Name        string               `json:"name"`
	Type        machines.Bilingual   `json:"type"`
	Description string               `json:"description"`
	Features    []machines.Bilingual `json:"features"`
	Status      string               `json:"status"`
	Image       string               `json:"image"`
}

func (r MachineRequest) toForm() admin.Form {
	f := admin.Form{
		Name:        r.Name,
		TypeBG:      r.Type.BG,
		TypeEN:      r.Type.EN,
		Description: r.Description,
		Status:      r.Status,
		Image:       r.Image,
		Features:    make([]admin.FeatureInput, 0, len(r.Features)),
	}
	for _, feat := range r.Features {
		f.Features = append(f.Features, admin.FeatureInput{BG: feat.BG, EN: feat.EN})
	}
	return f
}

type MachinesResponse struct {
	Machines []machines.Machine `json:"machines"`
	Summary  admin.Summary      `json:"summary"`
}

type MutationResponse struct {
	Machine      *machines.Machine  `json:"machine,omitempty"`
	Notification admin.Notification `json:"notification"`
	Summary      admin.Summary      `json:"summary"`
}

type ErrorResponse struct {
	Error        string             `json:"error"`
	Notification admin.Notification `json:"notification"`
}

// machineRow is one inventory entry on the admin page.
type machineRow struct {
	ID          int64
	Name        string
	Type        string
	Description string
	Features    []string
	Status      machines.Status
	StatusLabel string
	ToggleLabel string
	DateAdded   time.Time
	Editing     bool
}

type noticeView struct {
	Kind    admin.NotificationKind
	Message string
}

type languageOption struct {
	Code   string
	Label  string
	Active bool
}

type pageView struct {
	Lang        string
	Text        map[string]string
	Languages   []languageOption
	Summary     admin.Summary
	Machines    []machineRow
	Form        admin.Form
	FeatureRows []admin.FeatureInput
	Editing     bool
	Tab         string
	Notice      *noticeView
}
