// Package web provides the HTTP server and handlers for the listing site.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/satish051/RealEstateApp/internal/agent"
	"github.com/satish051/RealEstateApp/internal/auth"
	"github.com/satish051/RealEstateApp/internal/email"
	"github.com/satish051/RealEstateApp/internal/images"
	"github.com/satish051/RealEstateApp/internal/inquiry"
	"github.com/satish051/RealEstateApp/internal/logging"
	"github.com/satish051/RealEstateApp/internal/property"
	"github.com/satish051/RealEstateApp/internal/saved"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the listing site's HTTP server.
type Server struct {
	propRepo    *property.Repository
	agentRepo   *agent.Repository
	inquiryRepo *inquiry.Repository
	savedRepo   *saved.Repository
	users       *auth.UserStore
	sessions    *auth.SessionStore
	apiKeys     *auth.APIKeyStore
	imageStore  *images.Store
	smtp        email.SMTPConfig
	baseURL     string
	templates   *template.Template
	mux         *http.ServeMux
	handler     http.Handler
}

// NewServer creates a web server over the given database and image directory.
func NewServer(db *sql.DB, cfg auth.Config, imageDir string) (*Server, error) {
	funcMap := template.FuncMap{
		"formatPrice":  tmplFormatPrice,
		"listingLabel": tmplListingLabel,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	imageStore, err := images.NewStore(imageDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		propRepo:    property.NewRepository(db),
		agentRepo:   agent.NewRepository(db),
		inquiryRepo: inquiry.NewRepository(db),
		savedRepo:   saved.NewRepository(db),
		users:       auth.NewUserStore(db),
		sessions:    auth.NewSessionStore(db),
		apiKeys:     auth.NewAPIKeyStore(db),
		imageStore:  imageStore,
		smtp: email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		},
		baseURL:   cfg.BaseURL,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	if err := s.users.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(imageStore.Dir()))))

	s.mux.HandleFunc("/", s.handleList)
	s.mux.HandleFunc("/property/", s.handlePropertyRoute)
	s.mux.HandleFunc("/agents", s.handleAgents)
	s.mux.HandleFunc("/saved", s.handleSaved)
	s.mux.HandleFunc("/inquiries", s.handleMyInquiries)
	s.mux.HandleFunc("/inquiries/", s.handleMyInquiryRoute)

	s.mux.HandleFunc("/login", s.handleLoginPage)
	s.mux.HandleFunc("/register", s.handleRegisterPage)
	s.mux.HandleFunc("/auth/login", s.handleLogin)
	s.mux.HandleFunc("/auth/register", s.handleRegister)
	s.mux.HandleFunc("/auth/logout", s.handleLogout)

	s.mux.HandleFunc("/admin/properties", s.handleAdminPropertyCreate)
	s.mux.HandleFunc("/admin/properties/new", s.handleAdminPropertyForm)
	s.mux.HandleFunc("/admin/properties/", s.handleAdminPropertyRoute)
	s.mux.HandleFunc("/admin/images/", s.handleAdminImageRoute)
	s.mux.HandleFunc("/admin/agents", s.handleAdminAgentCreate)
	s.mux.HandleFunc("/admin/agents/new", s.handleAdminAgentForm)
	s.mux.HandleFunc("/admin/agents/", s.handleAdminAgentRoute)
	s.mux.HandleFunc("/admin/inquiries", s.handleAdminInquiries)
	s.mux.HandleFunc("/admin/inquiries/export", s.handleAdminInquiriesExport)
	s.mux.HandleFunc("/admin/inquiries/", s.handleAdminInquiryRoute)

	s.mux.HandleFunc("/api/properties", s.handleAPIProperties)
	s.mux.HandleFunc("/api/properties/", s.handleAPIPropertyRoute)
	s.mux.HandleFunc("/api/keys", s.handleAPIKeys)
	s.mux.HandleFunc("/api/keys/", s.handleAPIKeyDelete)

	s.handler = logging.RequestLogger(
		auth.RequireAuth(s.sessions,
			auth.RequireAPIKey(s.apiKeys, s.sessions, s.mux)))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting listing site on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s)
}

// handlePropertyRoute routes /property/{id}/* requests.
func (s *Server) handlePropertyRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/property/")

	if strings.HasSuffix(path, "/inquiry") {
		s.handleInquiryPost(w, r)
		return
	}
	if strings.HasSuffix(path, "/save") {
		s.handleSaveToggle(w, r)
		return
	}

	s.handleDetail(w, r)
}

// currentUser resolves the session, if any. A nil user means anonymous.
func (s *Server) currentUser(r *http.Request) *auth.User {
	email, err := s.sessions.Validate(r)
	if err != nil {
		return nil
	}
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return nil
	}
	return u
}

// requireAdmin resolves the session and checks the admin flag.
// Writes the response itself when the check fails.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	u := s.currentUser(r)
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	if !u.IsAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, false
	}
	return u, true
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// Template helper functions

func tmplFormatPrice(cents int64) string {
	dollars := cents / 100
	str := fmt.Sprintf("%d", dollars)
	if len(str) > 3 {
		var parts []string
		for len(str) > 3 {
			parts = append([]string{str[len(str)-3:]}, parts...)
			str = str[:len(str)-3]
		}
		parts = append([]string{str}, parts...)
		str = strings.Join(parts, ",")
	}
	if cents%100 != 0 {
		return fmt.Sprintf("$%s.%02d", str, cents%100)
	}
	return "$" + str
}

func tmplListingLabel(t property.ListingType) string {
	switch t {
	case property.ForSale:
		return "For Sale"
	case property.ForRent:
		return "For Rent"
	}
	return string(t)
}
