package siteapi

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"zozikafe/internal/app/http/middleware"
	"zozikafe/internal/domain/lang"
	"zozikafe/internal/public"
)

type Handler struct {
	renderer *public.Renderer
}

func NewHandler(r *public.Renderer) *Handler {
	return &Handler{renderer: r}
}

// GET /
func (h *Handler) Home(c *gin.Context) {
	code := middleware.LangFrom(c)
	page, err := h.renderer.SetLanguage(c.Request.Context(), public.NewPageSelector(code), code)
	if err != nil {
		log.Printf("site: render: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}

	inquiry := c.Query("inquiry")
	if inquiry != public.InquiryHome && inquiry != public.InquiryCommercial && inquiry != "service" {
		inquiry = ""
	}
	c.HTML(http.StatusOK, "public.html", PageView{
		Page:    page,
		Inquiry: inquiry,
		Message: c.Query("message"),
	})
}

// GET /api/machines?lang=
func (h *Handler) ListMachines(c *gin.Context) {
	code := middleware.LangFrom(c)
	cards, err := h.renderer.Render(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load machines"})
		return
	}
	c.JSON(http.StatusOK, MachinesResponse{Lang: code.String(), Machines: cards})
}

// POST /lang stores the visitor's choice and sends them back.
func (h *Handler) SetLanguage(c *gin.Context) {
	code, ok := lang.Parse(c.PostForm("lang"))
	if !ok {
		code, ok = lang.Parse(c.Query("lang"))
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
		return
	}
	middleware.SetLanguageCookie(c, code)
	c.Redirect(http.StatusSeeOther, backTo(c.Request.Referer()))
}

// backTo keeps only the path and query of the referer, so the redirect
// never leaves the site. Paths a browser would read as another host fall
// back to the home page.
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || !strings.HasPrefix(u.Path, "/") || u.Path == "/lang" {
		return "/"
	}
	if strings.HasPrefix(u.Path, "//") || strings.HasPrefix(u.Path, "/\\") {
		return "/"
	}
	q := u.Query()
	q.Del("lang")
	if enc := q.Encode(); enc != "" {
		return u.Path + "?" + enc
	}
	return u.Path
}
