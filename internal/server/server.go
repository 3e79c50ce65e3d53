package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"fundpath/internal/funnel"
	"fundpath/internal/leads"
	"fundpath/internal/metrics"
	"fundpath/internal/schema"
	"fundpath/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	leads     *leads.Client
	validator *schema.Validator
	sessions  *funnel.Sessions
	templates *template.Template

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	leadsClient *leads.Client,
	sessions *funnel.Sessions,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if len(hashKey) == 0 {
		logger.Warn("COOKIE_HASH_KEY not set, form sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(config.SessionMaxAgeSec)

	s := &Service{
		logger:    logger,
		config:    config,
		leads:     leadsClient,
		validator: schema.New(types.LocaleEnglish),
		sessions:  sessions,
		cookie:    cookie,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	// ahead of the router so unmatched paths are redirected too
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.NotFound = http.HandlerFunc(s.handleNotFound)

	r.Use(s.LoggingMiddleware)
	r.Use(metrics.Middleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/credit-repair", s.handleCreditRepair, http.MethodGet)
	r.HandleFunc("/funding", s.handleFunding, http.MethodGet)
	r.HandleFunc("/pricing", s.handlePricing, http.MethodGet)
	r.HandleFunc("/about", s.handleAbout, http.MethodGet)

	r.HandleFunc("/apply", s.handleGetApply, http.MethodGet)
	r.HandleFunc("/apply", s.handlePostApply, http.MethodPost)
	r.HandleFunc("/apply/:flow", s.handleGetApply, http.MethodGet)
	r.HandleFunc("/apply/:flow", s.handlePostApply, http.MethodPost)
	r.HandleFunc("/apply/:flow/thank-you", s.handleThankYou, http.MethodGet)

	r.HandleFunc("/es/aplicar", s.handleGetApply, http.MethodGet)
	r.HandleFunc("/es/aplicar", s.handlePostApply, http.MethodPost)

	r.HandleFunc("/api/leads", s.handleCreateLead, http.MethodPost)
	r.HandleFunc("/api/leads/:id", s.handlePatchLead, http.MethodPatch)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", metrics.Handler(), http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"checked": func(selected map[string]bool, value string) bool {
			return selected[value]
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	return s.renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

func (s *Service) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(navbarFor(r.URL.Path))
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
