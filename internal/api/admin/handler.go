package admin

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zozikafe/internal/admin"
	"zozikafe/internal/app/http/middleware"
	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
)

const (
	tabForm      = "add-machine"
	tabInventory = "inventory"
)

// Preferences stores the site-wide default language.
type Preferences interface {
	LanguagePreference(ctx context.Context) (lang.Code, bool)
	SetLanguagePreference(ctx context.Context, code lang.Code) error
}

type Handler struct {
	ctrl  *admin.Controller
	prefs Preferences
}

func NewHandler(ctrl *admin.Controller, prefs Preferences) *Handler {
	return &Handler{ctrl: ctrl, prefs: prefs}
}

// GET /admin
func (h *Handler) Dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, tabInventory, nil)
}

// POST /admin/machines
func (h *Handler) Save(c *gin.Context) {
	form := formFromRequest(c)
	res, err := h.ctrl.CreateOrUpdate(c.Request.Context(), form)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("admin: save failed: %v", err)
		}
		// keep the rejected input on screen
		h.renderForm(c, status, form, &res.Notification)
		return
	}
	h.render(c, http.StatusOK, tabInventory, &res.Notification)
}

// POST /admin/machines/rows adds or removes a feature row and shows the
// form again with everything typed so far.
func (h *Handler) Rows(c *gin.Context) {
	form := formFromRequest(c)
	if c.PostForm("row") == "remove" {
		form = form.RemoveFeatureRow()
	} else {
		form = form.AddFeatureRow()
	}
	h.renderForm(c, http.StatusOK, form, nil)
}

// POST /admin/machines/:id/edit
func (h *Handler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	_, note, err := h.ctrl.BeginEdit(id)
	if err != nil {
		h.render(c, http.StatusNotFound, tabInventory, &note)
		return
	}
	h.render(c, http.StatusOK, tabForm, &note)
}

// POST /admin/machines/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.ctrl.CancelEdit()
	c.Redirect(http.StatusSeeOther, "/admin#"+tabForm)
}

// GET /admin/machines/:id/delete
func (h *Handler) ConfirmDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := h.ctrl.Get(id)
	if err != nil {
		note := admin.NotificationFor(err)
		h.render(c, http.StatusNotFound, tabInventory, &note)
		return
	}
	code := middleware.LangFrom(c)
	sel := admin.NewPageSelector(code)
	c.HTML(http.StatusOK, "confirm_delete.html", gin.H{
		"Lang":   code.String(),
		"Text":   sel.Texts(),
		"Prompt": admin.DeletePrompt().Pick(code),
		"Machine": gin.H{
			"ID":   m.ID,
			"Name": m.Name,
			"Type": m.Type.Pick(code),
		},
	})
}

// POST /admin/machines/:id/delete
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	confirmed := c.PostForm("confirm") == "yes"
	note, err := h.ctrl.Delete(c.Request.Context(), id, admin.ConfirmFunc(func(machines.Bilingual) bool {
		return confirmed
	}))
	status := http.StatusOK
	if err != nil && !errors.Is(err, admin.ErrCancelled) {
		status = statusFor(err)
	}
	h.render(c, status, tabInventory, &note)
}

// POST /admin/machines/:id/toggle
func (h *Handler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	_, note, err := h.ctrl.ToggleStatus(c.Request.Context(), id)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
	}
	h.render(c, status, tabInventory, &note)
}

// POST /admin/language sets the site default language.
func (h *Handler) SetSiteLanguage(c *gin.Context) {
	code, ok := lang.Parse(c.PostForm("lang"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
		return
	}
	if err := h.prefs.SetLanguagePreference(c.Request.Context(), code); err != nil {
		log.Printf("admin: store language: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store language"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *Handler) render(c *gin.Context, status int, tab string, note *admin.Notification) {
	view := h.page(c, h.ctrl.Form(), note)
	if _, editing := h.ctrl.Editing(); editing {
		tab = tabForm
	}
	view.Tab = tab
	c.HTML(status, "admin.html", view)
}

func (h *Handler) renderForm(c *gin.Context, status int, form admin.Form, note *admin.Notification) {
	view := h.page(c, form, note)
	view.Tab = tabForm
	c.HTML(status, "admin.html", view)
}

func (h *Handler) page(c *gin.Context, form admin.Form, note *admin.Notification) pageView {
	code := middleware.LangFrom(c)
	sel := admin.NewPageSelector(code)
	editID, editing := h.ctrl.Editing()

	site := lang.Primary
	if stored, ok := h.prefs.LanguagePreference(c.Request.Context()); ok {
		site = stored
	}

	view := pageView{
		Lang:        code.String(),
		Text:        sel.Texts(),
		Summary:     h.ctrl.Summary(),
		Form:        form,
		FeatureRows: form.Features,
		Editing:     editing,
	}
	if len(view.FeatureRows) == 0 {
		view.FeatureRows = []admin.FeatureInput{{}}
	}
	for _, l := range lang.Supported() {
		view.Languages = append(view.Languages, languageOption{Code: l.String(), Label: l.Label(), Active: l == site})
	}
	for _, m := range h.ctrl.Machines() {
		view.Machines = append(view.Machines, toRow(m, code, sel, editing && m.ID == editID))
	}
	if note != nil && note.Kind != "" {
		view.Notice = &noticeView{Kind: note.Kind, Message: note.Message.Pick(code)}
	}
	return view
}

func toRow(m machines.Machine, code lang.Code, sel *lang.Selector, editing bool) machineRow {
	row := machineRow{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type.Pick(code),
		Description: m.Description,
		Features:    make([]string, 0, len(m.Features)),
		Status:      m.Status,
		DateAdded:   m.DateAdded,
		Editing:     editing,
	}
	for _, f := range m.Features {
		row.Features = append(row.Features, f.Pick(code))
	}
	if m.Status == machines.StatusAvailable {
		row.StatusLabel = sel.Text("status.available")
		row.ToggleLabel = sel.Text("action.mark_sold")
	} else {
		row.StatusLabel = sel.Text("status.sold")
		row.ToggleLabel = sel.Text("action.mark_available")
	}
	return row
}

// formFromRequest reads the entry form. Feature inputs arrive as parallel
// feature_bg/feature_en lists.
func formFromRequest(c *gin.Context) admin.Form {
	f := admin.Form{
		Name:        c.PostForm("machine-name"),
		TypeBG:      c.PostForm("machine-type"),
		TypeEN:      c.PostForm("machine-type-en"),
		Description: c.PostForm("machine-description"),
		Status:      c.PostForm("machine-status"),
		Image:       c.PostForm("machine-image"),
	}
	bg := c.PostFormArray("feature_bg")
	en := c.PostFormArray("feature_en")
	for i, v := range bg {
		row := admin.FeatureInput{BG: v}
		if i < len(en) {
			row.EN = en[i]
		}
		f.Features = append(f.Features, row)
	}
	return f
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid machine id"})
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case admin.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, admin.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, admin.ErrCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
