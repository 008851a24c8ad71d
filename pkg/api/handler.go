// Package api exposes the webhook endpoints and the admin status pages.
package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mihaimyh/storebark/pkg/storebark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the webhook and admin HTTP surface.
type Handler struct {
	config Config
	tmpl   *template.Template
}

// Routes mounts every endpoint on a fresh chi router:
//
//	GET  /       app index (or the default app's page in single-tenant mode)
//	POST /       default app webhook (single-tenant mode only)
//	GET  /{app}  per-app admin page
//	POST /{app}  per-app webhook
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/", h.webhookRoot)
	r.Get("/{app}", h.appPage)
	r.Post("/{app}", h.webhook)
	return r
}

func (h *Handler) webhookRoot(w http.ResponseWriter, r *http.Request) {
	if !h.config.Apps.SingleTenant() {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	app, _ := h.config.Apps.Get("")
	h.serveWebhook(w, r, app)
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "app")
	app, ok := h.config.Apps.Get(name)
	if !ok || h.config.Apps.SingleTenant() {
		writeJSON(w, http.StatusNotFound, storebark.Result{
			Status:  storebark.StatusError,
			Message: "App not found: " + name,
		})
		return
	}
	h.serveWebhook(w, r, app)
}

// serveWebhook feeds one delivery through the pipeline. The response is
// always HTTP 200 with the JSON result in the body: a non-200 answer would
// make the platform re-deliver, and re-delivery is its decision, not ours.
func (h *Handler) serveWebhook(w http.ResponseWriter, r *http.Request, app storebark.AppConfig) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.config.Logger.Error().Err(err).Str("app", app.Name).Msg("failed to read webhook body")
		writeJSON(w, http.StatusOK, storebark.Result{
			Status:  storebark.StatusError,
			Message: "failed to read request body",
		})
		return
	}

	result := h.config.Pipeline.Handle(r.Context(), app, body)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if h.config.Apps.SingleTenant() {
		app, _ := h.config.Apps.Get("")
		h.renderAppPage(w, r, app)
		return
	}

	data := indexData{}
	for _, name := range h.config.Apps.Names() {
		app, _ := h.config.Apps.Get(name)
		data.Apps = append(data.Apps, indexApp{
			Name:        name,
			ProductName: app.ProductName,
			WebhookURL:  requestBaseURL(r) + "/" + name,
		})
	}
	h.render(w, "index.html", data)
}

func (h *Handler) appPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "app")
	app, ok := h.config.Apps.Get(name)
	if !ok || h.config.Apps.SingleTenant() {
		writeJSON(w, http.StatusNotFound, storebark.Result{
			Status:  storebark.StatusError,
			Message: "App not found: " + name,
		})
		return
	}
	h.renderAppPage(w, r, app)
}

func (h *Handler) renderAppPage(w http.ResponseWriter, r *http.Request, app storebark.AppConfig) {
	data := appPageData{
		ProductName:      app.ProductName,
		WebhookURL:       requestBaseURL(r) + "/" + app.Name,
		KeyConfigured:    app.BarkKey != "",
		MaskedKey:        MaskKey(app.BarkKey),
		IconURL:          app.BarkIcon,
		SandboxEnabled:   app.EnableSandbox,
		MaskedForwardURL: MaskURL(app.ForwardURL),
	}
	if app.Name == "" {
		data.WebhookURL = requestBaseURL(r) + "/"
	}
	for _, cat := range storebark.Categories {
		cfg := app.Categories[cat]
		data.Categories = append(data.Categories, categoryRow{
			Name:    string(cat),
			Enabled: cfg.Enabled,
			Sound:   cfg.Sound,
			Group:   cfg.Group,
		})
	}
	h.render(w, "app.html", data)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.config.Logger.Error().Err(err).Str("template", name).Msg("template render failed")
	}
}

type indexData struct {
	Apps []indexApp
}

type indexApp struct {
	Name        string
	ProductName string
	WebhookURL  string
}

type appPageData struct {
	ProductName      string
	WebhookURL       string
	KeyConfigured    bool
	MaskedKey        string
	IconURL          string
	SandboxEnabled   bool
	MaskedForwardURL string
	Categories       []categoryRow
}

type categoryRow struct {
	Name    string
	Enabled bool
	Sound   string
	Group   string
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response already sent; nothing sensible to do.
		_ = err
	}
}
