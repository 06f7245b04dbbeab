package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zozikafe/internal/admin"
	"zozikafe/internal/domain/machines"
)

// GET /api/admin/machines
func (h *Handler) ListMachines(c *gin.Context) {
	c.JSON(http.StatusOK, MachinesResponse{
		Machines: h.ctrl.Machines(),
		Summary:  h.ctrl.Summary(),
	})
}

// GET /api/admin/summary
func (h *Handler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.ctrl.Summary())
}

// POST /api/admin/machines
func (h *Handler) CreateMachine(c *gin.Context) {
	var req MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.ctrl.Create(c.Request.Context(), req.toForm())
	if err != nil {
		h.fail(c, err, res.Notification)
		return
	}
	c.JSON(http.StatusCreated, MutationResponse{
		Machine:      &res.Machine,
		Notification: res.Notification,
		Summary:      h.ctrl.Summary(),
	})
}

// PUT /api/admin/machines/:id
func (h *Handler) UpdateMachine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.ctrl.Update(c.Request.Context(), id, req.toForm())
	if err != nil {
		h.fail(c, err, res.Notification)
		return
	}
	c.JSON(http.StatusOK, MutationResponse{
		Machine:      &res.Machine,
		Notification: res.Notification,
		Summary:      h.ctrl.Summary(),
	})
}

// DELETE /api/admin/machines/:id?confirm=true
func (h *Handler) DeleteMachine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	confirmed := c.Query("confirm") == "true"
	note, err := h.ctrl.Delete(c.Request.Context(), id, admin.ConfirmFunc(func(machines.Bilingual) bool {
		return confirmed
	}))
	if err != nil {
		h.fail(c, err, note)
		return
	}
	c.JSON(http.StatusOK, MutationResponse{Notification: note, Summary: h.ctrl.Summary()})
}

// POST /api/admin/machines/:id/toggle
func (h *Handler) ToggleMachine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, note, err := h.ctrl.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, note)
		return
	}
	c.JSON(http.StatusOK, MutationResponse{Machine: &m, Notification: note, Summary: h.ctrl.Summary()})
}

func (h *Handler) fail(c *gin.Context, err error, note admin.Notification) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Failed to save machines"
	}
	c.JSON(status, ErrorResponse{Error: msg, Notification: note})
}
