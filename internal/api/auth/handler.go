package auth

import (
	"crypto/rand"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"zozikafe/config"
	"zozikafe/internal/admin"
	"zozikafe/internal/app/http/middleware"
)

// Handler runs the admin gate: one shared password, exchanged for a signed
// token kept in a cookie (pages) or returned as JSON (API clients).
type Handler struct {
	hash    []byte
	secret  []byte
	ttl     time.Duration
	limiter *loginLimiter
	now     func() time.Time
}

// NewHandler hashes ADMIN_PASSWORD unless a bcrypt hash is configured. An
// empty GATE_SECRET gets a random one, so tokens die with the process.
func NewHandler(cfg *config.Config) (*Handler, error) {
	if err := cfg.ValidateGate(); err != nil {
		return nil, err
	}
	h := &Handler{
		ttl: cfg.GateTTL,
		// five attempts per client, then one every two seconds
		limiter: newLoginLimiter(rate.Every(2*time.Second), 5),
		now:     time.Now,
	}
	if h.ttl <= 0 {
		h.ttl = 12 * time.Hour
	}

	if cfg.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return nil, errors.New("auth: ADMIN_PASSWORD_HASH is not a bcrypt hash")
		}
		h.hash = []byte(cfg.AdminPasswordHash)
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h.hash = hashed
	}

	if cfg.GateSecret != "" {
		h.secret = []byte(cfg.GateSecret)
	} else {
		log.Println("auth: GATE_SECRET not set, using a per-process secret")
		h.secret = make([]byte, 32)
		if _, err := rand.Read(h.secret); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Secret is the token signing key for middleware.AuthMiddleware.
func (h *Handler) Secret() []byte { return h.secret }

// IssueToken signs an admin token valid for the configured TTL.
func (h *Handler) IssueToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": middleware.RoleAdmin,
		"iat":  h.now().Unix(),
		"exp":  h.now().Add(h.ttl).Unix(),
	})
	return token.SignedString(h.secret)
}

// GET /admin/login
func (h *Handler) LoginPage(c *gin.Context) {
	h.renderLogin(c, http.StatusOK, "")
}

// POST /admin/login
func (h *Handler) Login(c *gin.Context) {
	wantsJSON := c.ContentType() == gin.MIMEJSON

	var input struct {
		Password string `json:"password" form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		if wantsJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.renderLogin(c, http.StatusBadRequest, "login.failed")
		return
	}

	if !h.limiter.Allow(c.ClientIP(), h.now()) {
		if wantsJSON {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts"})
			return
		}
		h.renderLogin(c, http.StatusTooManyRequests, "login.throttled")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.hash, []byte(input.Password)); err != nil {
		log.Printf("auth: rejected login from %s", c.ClientIP())
		if wantsJSON {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.renderLogin(c, http.StatusUnauthorized, "login.failed")
		return
	}

	tokenString, err := h.IssueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookie, tokenString, int(h.ttl.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin")
}

// POST /admin/logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

func (h *Handler) renderLogin(c *gin.Context, status int, errKey string) {
	sel := admin.NewPageSelector(middleware.LangFrom(c))
	data := gin.H{
		"Lang": sel.Current(),
		"Text": sel.Texts(),
	}
	if errKey != "" {
		data["Error"] = sel.Text(errKey)
	}
	c.HTML(status, "login.html", data)
}
