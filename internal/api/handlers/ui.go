package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/catalog-browser/internal/pager"
	"github.com/donaldgifford/catalog-browser/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Headers describing the aggregate state after a /ui/next call.
const (
	HeaderHasMore = "X-Has-More"
	HeaderStatus  = "X-Status"
	HeaderLoaded  = "X-Loaded"
	HeaderTotal   = "X-Total"
)

const (
	msgCatalogUnavailable = "the catalog is unavailable right now"
	msgSessionExpired     = "your session expired, reload the page"
)

// UIOptions configures the product grid page.
type UIOptions struct {
	Title                 string
	IntersectionThreshold float64
	CookieName            string
}

// UIHandler renders the infinite-scroll product grid. Each browser is bound
// to a session through a cookie; the grid page initializes it and the
// fragment endpoint appends one page per sentinel intersection.
type UIHandler struct {
	store *session.Store
	opts  UIOptions
	tmpl  *template.Template
	log   *slog.Logger
}

type pageData struct {
	Title     string
	Threshold float64
	Snapshot  pager.Snapshot
	Error     string
}

// NewUIHandler parses the embedded templates and creates a UIHandler.
func NewUIHandler(store *session.Store, opts UIOptions, log *slog.Logger) (*UIHandler, error) {
	tmpl, err := template.New("ui").
		Funcs(template.FuncMap{"price": formatPrice}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing ui templates: %w", err)
	}

	return &UIHandler{store: store, opts: opts, tmpl: tmpl, log: log}, nil
}

// Page handles GET /. It resumes the visitor's session or starts a new one,
// loads the first page when nothing is held yet, and renders every product
// loaded so far.
func (h *UIHandler) Page(c echo.Context) error {
	sess := h.session(c)

	data := pageData{
		Title:     h.opts.Title,
		Threshold: h.opts.IntersectionThreshold,
	}
	status := http.StatusOK

	if err := sess.Controller.Initialize(c.Request().Context()); err != nil {
		h.log.Warn("initial page load failed", "session", sess.ID, "err", err)
		data.Error = msgCatalogUnavailable
		status = http.StatusBadGateway
	}
	data.Snapshot = sess.Controller.Snapshot()

	return h.render(c, status, "page.html", data)
}

// Next handles POST /ui/next. The form value "shown" is the number of
// product cards already on the page; the response is the cards after them.
func (h *UIHandler) Next(c echo.Context) error {
	sess, ok := h.lookup(c)
	if !ok {
		c.Response().Header().Set(HeaderHasMore, "false")
		return h.render(c, http.StatusNotFound, "load-error", msgSessionExpired)
	}

	shown := 0
	if v := c.FormValue("shown"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid shown"})
		}
		shown = n
	}

	loadErr := sess.Controller.LoadNext(c.Request().Context())
	snap := sess.Controller.Snapshot()

	hdr := c.Response().Header()
	hdr.Set(HeaderHasMore, strconv.FormatBool(snap.HasMore))
	hdr.Set(HeaderStatus, snap.Status)
	hdr.Set(HeaderLoaded, strconv.Itoa(snap.Loaded))
	hdr.Set(HeaderTotal, strconv.Itoa(snap.Total))

	if loadErr != nil {
		h.log.Warn("next page load failed", "session", sess.ID, "err", loadErr)
		return h.render(c, http.StatusBadGateway, "load-error", msgCatalogUnavailable)
	}

	return h.render(c, http.StatusOK, "products", snap.Since(shown))
}

// session returns the cookie's session, creating one (and setting the
// cookie) when the cookie is missing or its session has expired.
func (h *UIHandler) session(c echo.Context) *session.Session {
	id := ""
	if cookie, err := c.Cookie(h.opts.CookieName); err == nil {
		id = cookie.Value
	}

	sess, created := h.store.GetOrCreate(id)
	if created {
		c.SetCookie(&http.Cookie{
			Name:     h.opts.CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.log.Debug("session created", "session", sess.ID)
	}
	return sess
}

func (h *UIHandler) lookup(c echo.Context) (*session.Session, bool) {
	cookie, err := c.Cookie(h.opts.CookieName)
	if err != nil {
		return nil, false
	}
	return h.store.Get(cookie.Value)
}

func (h *UIHandler) render(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return c.HTMLBlob(status, buf.Bytes())
}

// RegisterUIRoutes registers the grid page and its fragment endpoint.
func RegisterUIRoutes(e *echo.Echo, h *UIHandler) {
	e.GET("/", h.Page)
	e.POST("/ui/next", h.Next)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
