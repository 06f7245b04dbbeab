package public

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
)

const (
	InquiryHome       = "home"
	InquiryCommercial = "commercial"
)

// Card is one machine as shown on the public grid, in one language.
type Card struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Description     string          `json:"description,omitempty"`
	DescriptionHTML template.HTML   `json:"-"`
	Features        []string        `json:"features"`
	Status          machines.Status `json:"status"`
	StatusLabel     string          `json:"status_label"`
	ActionLabel     string          `json:"action_label"`
	ActionDisabled  bool            `json:"action_disabled"`
	Image           string          `json:"image,omitempty"`
	Placeholder     bool            `json:"placeholder"`
	InquiryType     string          `json:"inquiry_type,omitempty"`
	InquiryMessage  string          `json:"inquiry_message,omitempty"`
}

type labelKey struct {
	status machines.Status
	code   lang.Code
}

var statusLabels = map[labelKey]string{
	{machines.StatusAvailable, lang.Primary}:   "Наличен",
	{machines.StatusAvailable, lang.Secondary}: "Available",
	{machines.StatusSold, lang.Primary}:        "Наскоро продаден",
	{machines.StatusSold, lang.Secondary}:      "Recently Sold",
}

var actionLabels = map[labelKey]string{
	{machines.StatusAvailable, lang.Primary}:   "Научете повече",
	{machines.StatusAvailable, lang.Secondary}: "Learn More",
	{machines.StatusSold, lang.Primary}:        "Продаден",
	{machines.StatusSold, lang.Secondary}:      "Sold",
}

// StatusLabel and ActionLabel fall back to the sold wording for unknown statuses.
func StatusLabel(s machines.Status, code lang.Code) string {
	if v, ok := statusLabels[labelKey{s, code}]; ok {
		return v
	}
	return statusLabels[labelKey{machines.StatusSold, code}]
}

func ActionLabel(s machines.Status, code lang.Code) string {
	if v, ok := actionLabels[labelKey{s, code}]; ok {
		return v
	}
	return actionLabels[labelKey{machines.StatusSold, code}]
}

var (
	markdown = goldmark.New()
	ugc      = bluemonday.UGCPolicy()
)

// descriptionHTML renders the free-text description as sanitized Markdown.
func descriptionHTML(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(ugc.SanitizeBytes(buf.Bytes()))
}

// Project renders m in code. It tolerates machines without features.
func Project(m machines.Machine, code lang.Code) Card {
	features := make([]string, 0, len(m.Features))
	for _, f := range m.Features {
		features = append(features, f.Pick(code))
	}
	c := Card{
		ID:              m.ID,
		Name:            m.Name,
		Type:            m.Type.Pick(code),
		Description:     m.Description,
		DescriptionHTML: descriptionHTML(m.Description),
		Features:        features,
		Status:          m.Status,
		StatusLabel:     StatusLabel(m.Status, code),
		ActionLabel:     ActionLabel(m.Status, code),
		ActionDisabled:  m.Status != machines.StatusAvailable,
		Image:           strings.TrimSpace(m.Image),
	}
	c.Placeholder = c.Image == ""
	if !c.ActionDisabled {
		c.InquiryType = inquiryType(m)
		c.InquiryMessage = inquiryMessage(m.Name, code)
	}
	return c
}

func inquiryType(m machines.Machine) string {
	haystack := strings.ToLower(m.Name + " " + m.Type.BG + " " + m.Type.EN)
	if strings.Contains(haystack, "commercial") || strings.Contains(haystack, "търговска") {
		return InquiryCommercial
	}
	return InquiryHome
}

func inquiryMessage(name string, code lang.Code) string {
	if code == lang.Secondary {
		return fmt.Sprintf("Hi! I'm interested in the %s. Could you please provide more details?", name)
	}
	return fmt.Sprintf("Здравейте! Интересувам се от %s. Можете ли да предоставите повече подробности?", name)
}
