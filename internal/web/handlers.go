package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/satish051/RealEstateApp/internal/auth"
	"github.com/satish051/RealEstateApp/internal/catalog"
	"github.com/satish051/RealEstateApp/internal/email"
	"github.com/satish051/RealEstateApp/internal/property"
)

// listPageData is the payload for the listing index page.
type listPageData struct {
	Properties []*property.Property
	Query      searchForm
	User       *auth.User
	Total      int
}

// searchForm echoes the submitted filter values back into the form.
type searchForm struct {
	Search      string
	MinPrice    string
	MaxPrice    string
	ListingType string
}

// handleList shows the catalog, filtered by the query string.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	all, err := s.propRepo.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading properties: %v", err), http.StatusInternalServerError)
		return
	}

	form := searchForm{
		Search:      r.URL.Query().Get("search"),
		MinPrice:    r.URL.Query().Get("min_price"),
		MaxPrice:    r.URL.Query().Get("max_price"),
		ListingType: r.URL.Query().Get("type"),
	}

	q, err := queryFromForm(form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.render(w, "list.html", listPageData{
		Properties: catalog.Filter(all, q),
		Query:      form,
		User:       s.currentUser(r),
		Total:      len(all),
	})
}

// queryFromForm converts submitted form values into a catalog query.
// Prices arrive in whole dollars and are stored as cents.
func queryFromForm(form searchForm) (catalog.Query, error) {
	q := catalog.Query{SearchText: form.Search}

	if form.MinPrice != "" {
		v, err := strconv.ParseInt(form.MinPrice, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid min price %q", form.MinPrice)
		}
		cents := v * 100
		q.MinPrice = &cents
	}
	if form.MaxPrice != "" {
		v, err := strconv.ParseInt(form.MaxPrice, 10, 64)
		if err != nil {
			return q, fmt.Errorf("invalid max price %q", form.MaxPrice)
		}
		cents := v * 100
		q.MaxPrice = &cents
	}
	if form.ListingType != "" {
		if !property.ValidListingType(form.ListingType) {
			return q, fmt.Errorf("invalid listing type %q", form.ListingType)
		}
		q.ListingType = property.ListingType(form.ListingType)
	}

	return q, nil
}

// detailPageData is the payload for the property detail page.
type detailPageData struct {
	Property *property.Property
	Similar  []*property.Property
	User     *auth.User
	IsSaved  bool
	Sent     bool
}

// handleDetail shows a single property with similar listings.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := propertyIDFromPath(r.URL.Path, "")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	prop, err := s.propRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	all, err := s.propRepo.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading properties: %v", err), http.StatusInternalServerError)
		return
	}

	similar, err := catalog.Recommend(all, id, catalog.RecommendOptions{
		Policy: catalog.ShuffleSelection(time.Now().UnixNano()),
	})
	if err != nil {
		similar = nil
	}

	data := detailPageData{
		Property: prop,
		Similar:  similar,
		User:     s.currentUser(r),
		Sent:     r.URL.Query().Get("sent") == "1",
	}
	if data.User != nil {
		data.IsSaved, _ = s.savedRepo.IsSaved(data.User.Email, id)
	}

	s.render(w, "detail.html", data)
}

// handleInquiryPost records an inquiry and notifies the listing's agent.
func (s *Server) handleInquiryPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := propertyIDFromPath(r.URL.Path, "/inquiry")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	prop, err := s.propRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	userEmail := r.FormValue("email")
	if u := s.currentUser(r); u != nil {
		userEmail = u.Email
	}

	q, err := s.inquiryRepo.Create(id, userEmail, r.FormValue("message"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.smtp.IsConfigured() {
		body := email.FormatInquiry(q, prop, s.baseURL)
		subject := "New inquiry: " + prop.Title
		if err := email.Send(s.smtp, []string{prop.AgentEmail}, subject, body); err != nil {
			slog.Error("failed to send inquiry notification", "property_id", id, "error", err)
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/property/%d?sent=1", id), http.StatusSeeOther)
}

// handleSaveToggle adds or removes a property from the user's saved list.
func (s *Server) handleSaveToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	u := s.currentUser(r)
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := propertyIDFromPath(r.URL.Path, "/save")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := s.propRepo.GetByID(id); err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := s.savedRepo.Toggle(u.Email, id); err != nil {
		http.Error(w, fmt.Sprintf("Error saving property: %v", err), http.StatusInternalServerError)
		return
	}

	redirect := r.FormValue("redirect")
	if redirect == "" {
		redirect = fmt.Sprintf("/property/%d", id)
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// handleAgents shows the agent roster.
func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.agentRepo.List()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading agents: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "agents.html", struct {
		Agents interface{}
		User   *auth.User
	}{agents, s.currentUser(r)})
}

// handleSaved shows the signed-in user's saved properties.
func (s *Server) handleSaved(w http.ResponseWriter, r *http.Request) {
	u := s.currentUser(r)
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	savedList, err := s.savedRepo.ListByUser(u.Email)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading saved properties: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "saved.html", struct {
		Saved interface{}
		User  *auth.User
	}{savedList, u})
}

// handleMyInquiries shows the signed-in user's own inquiries.
func (s *Server) handleMyInquiries(w http.ResponseWriter, r *http.Request) {
	u := s.currentUser(r)
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	inquiries, err := s.inquiryRepo.ListByUser(u.Email)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading inquiries: %v", err), http.StatusInternalServerError)
		return
	}

	s.render(w, "inquiries.html", struct {
		Inquiries interface{}
		User      *auth.User
	}{inquiries, u})
}

// handleMyInquiryRoute handles POST /inquiries/{id}/delete.
func (s *Server) handleMyInquiryRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/delete") {
		http.NotFound(w, r)
		return
	}

	u := s.currentUser(r)
	if u == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/inquiries/"), "/delete")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	q, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	// users may only remove their own inquiries
	if q.UserEmail != u.Email {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := s.inquiryRepo.Delete(id); err != nil {
		http.Error(w, fmt.Sprintf("Error deleting inquiry: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/inquiries", http.StatusSeeOther)
}

// propertyIDFromPath extracts the property id from /property/{id}{suffix}.
func propertyIDFromPath(path, suffix string) (int64, error) {
	idStr := strings.TrimSuffix(strings.TrimPrefix(path, "/property/"), suffix)
	idStr = strings.TrimSuffix(idStr, "/")
	return strconv.ParseInt(idStr, 10, 64)
}
