package web

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/satish051/RealEstateApp/internal/agent"
	"github.com/satish051/RealEstateApp/internal/auth"
	"github.com/satish051/RealEstateApp/internal/inquiry"
	"github.com/satish051/RealEstateApp/internal/property"
)

// maxUploadSize bounds multipart uploads at 10 MB.
const maxUploadSize = 10 << 20

// propertyFormData is the payload for the property create/edit form.
type propertyFormData struct {
	Property *property.Property
	User     *auth.User
	Error    string
}

// handleAdminPropertyForm shows the new-property form.
func (s *Server) handleAdminPropertyForm(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.render(w, "property_form.html", propertyFormData{User: u})
}

// handleAdminPropertyCreate handles POST /admin/properties.
func (s *Server) handleAdminPropertyCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prop, err := s.propertyFromRequest(r, &property.Property{})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "property_form.html", propertyFormData{Property: prop, User: u, Error: err.Error()})
		return
	}

	created, err := s.propRepo.Insert(prop)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "property_form.html", propertyFormData{Property: prop, User: u, Error: err.Error()})
		return
	}

	if err := s.saveUploadedImages(r, created.ID); err != nil {
		http.Error(w, fmt.Sprintf("Property created but image upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/property/%d", created.ID), http.StatusSeeOther)
}

// handleAdminPropertyRoute routes /admin/properties/{id}/* requests.
func (s *Server) handleAdminPropertyRoute(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/properties/")

	switch {
	case strings.HasSuffix(path, "/edit"):
		s.adminPropertyEdit(w, r, u, strings.TrimSuffix(path, "/edit"))
	case strings.HasSuffix(path, "/delete"):
		s.adminPropertyDelete(w, r, strings.TrimSuffix(path, "/delete"))
	default:
		s.adminPropertyUpdate(w, r, u, path)
	}
}

func (s *Server) adminPropertyEdit(w http.ResponseWriter, r *http.Request, u *auth.User, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	prop, err := s.propRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "property_form.html", propertyFormData{Property: prop, User: u})
}

func (s *Server) adminPropertyUpdate(w http.ResponseWriter, r *http.Request, u *auth.User, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	prop, err := s.propRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	updated, err := s.propertyFromRequest(r, prop)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "property_form.html", propertyFormData{Property: prop, User: u, Error: err.Error()})
		return
	}

	if err := s.propRepo.Update(updated); err != nil {
		http.Error(w, fmt.Sprintf("Error updating property: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.saveUploadedImages(r, id); err != nil {
		http.Error(w, fmt.Sprintf("Property updated but image upload failed: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/property/%d", id), http.StatusSeeOther)
}

func (s *Server) adminPropertyDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// remove gallery files before the cascade wipes the rows
	gallery, err := s.propRepo.ListImages(id)
	if err == nil {
		for _, img := range gallery {
			_ = s.imageStore.Remove(img.Filename)
		}
	}

	if err := s.propRepo.Delete(id); err != nil {
		http.Error(w, fmt.Sprintf("Error deleting property: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// propertyFromRequest fills a property from the submitted form.
// The price field is in whole dollars.
func (s *Server) propertyFromRequest(r *http.Request, prop *property.Property) (*property.Property, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return prop, fmt.Errorf("parsing form: %w", err)
	}

	prop.Title = r.FormValue("title")
	prop.Description = r.FormValue("description")
	prop.Address = r.FormValue("address")
	prop.AgentName = r.FormValue("agent_name")
	prop.AgentEmail = r.FormValue("agent_email")
	prop.AgentPhone = r.FormValue("agent_phone")

	if prop.Title == "" || prop.Address == "" {
		return prop, fmt.Errorf("title and address are required")
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		return prop, fmt.Errorf("invalid price %q", r.FormValue("price"))
	}
	prop.Price = int64(math.Round(price * 100))

	if v := r.FormValue("bedrooms"); v != "" {
		prop.Bedrooms, err = strconv.Atoi(v)
		if err != nil {
			return prop, fmt.Errorf("invalid bedrooms %q", v)
		}
	}
	if v := r.FormValue("bathrooms"); v != "" {
		prop.Bathrooms, err = strconv.Atoi(v)
		if err != nil {
			return prop, fmt.Errorf("invalid bathrooms %q", v)
		}
	}

	listingType := r.FormValue("listing_type")
	if !property.ValidListingType(listingType) {
		return prop, fmt.Errorf("invalid listing type %q", listingType)
	}
	prop.ListingType = property.ListingType(listingType)

	return prop, nil
}

// saveUploadedImages stores every file uploaded under the "images"
// field and attaches them to the property.
func (s *Server) saveUploadedImages(r *http.Request, propertyID int64) error {
	if r.MultipartForm == nil {
		return nil
	}

	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			return fmt.Errorf("opening upload %s: %w", header.Filename, err)
		}

		filename, err := s.imageStore.Save(f, header.Filename)
		f.Close()
		if err != nil {
			return fmt.Errorf("saving upload %s: %w", header.Filename, err)
		}

		if _, err := s.propRepo.AddImage(propertyID, filename); err != nil {
			_ = s.imageStore.Remove(filename)
			return err
		}
	}

	return nil
}

// handleAdminImageRoute handles POST /admin/images/{id}/delete.
func (s *Server) handleAdminImageRoute(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/delete") {
		http.NotFound(w, r)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/images/"), "/delete")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	img, err := s.propRepo.GetImage(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.propRepo.DeleteImage(id); err != nil {
		http.Error(w, fmt.Sprintf("Error deleting image: %v", err), http.StatusInternalServerError)
		return
	}
	_ = s.imageStore.Remove(img.Filename)

	http.Redirect(w, r, fmt.Sprintf("/admin/properties/%d/edit", img.PropertyID), http.StatusSeeOther)
}

// agentFormData is the payload for the agent create/edit form.
type agentFormData struct {
	Agent *agent.Agent
	User  *auth.User
	Error string
}

// handleAdminAgentForm shows the new-agent form.
func (s *Server) handleAdminAgentForm(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	s.render(w, "agent_form.html", agentFormData{User: u})
}

// handleAdminAgentCreate handles POST /admin/agents.
func (s *Server) handleAdminAgentCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a, err := s.agentFromRequest(r, &agent.Agent{})
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "agent_form.html", agentFormData{Agent: a, User: u, Error: err.Error()})
		return
	}

	if _, err := s.agentRepo.Insert(a); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "agent_form.html", agentFormData{Agent: a, User: u, Error: err.Error()})
		return
	}

	http.Redirect(w, r, "/agents", http.StatusSeeOther)
}

// handleAdminAgentRoute routes /admin/agents/{id}/* requests.
func (s *Server) handleAdminAgentRoute(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/admin/agents/")

	switch {
	case strings.HasSuffix(path, "/edit"):
		s.adminAgentEdit(w, r, u, strings.TrimSuffix(path, "/edit"))
	case strings.HasSuffix(path, "/delete"):
		s.adminAgentDelete(w, r, strings.TrimSuffix(path, "/delete"))
	default:
		s.adminAgentUpdate(w, r, u, path)
	}
}

func (s *Server) adminAgentEdit(w http.ResponseWriter, r *http.Request, u *auth.User, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := s.agentRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "agent_form.html", agentFormData{Agent: a, User: u})
}

func (s *Server) adminAgentUpdate(w http.ResponseWriter, r *http.Request, u *auth.User, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := s.agentRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	oldAvatar := a.Avatar

	updated, err := s.agentFromRequest(r, a)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "agent_form.html", agentFormData{Agent: a, User: u, Error: err.Error()})
		return
	}

	if err := s.agentRepo.Update(updated); err != nil {
		http.Error(w, fmt.Sprintf("Error updating agent: %v", err), http.StatusInternalServerError)
		return
	}

	if updated.Avatar != oldAvatar {
		_ = s.imageStore.Remove(oldAvatar)
	}

	http.Redirect(w, r, "/agents", http.StatusSeeOther)
}

func (s *Server) adminAgentDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, err := s.agentRepo.GetByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.agentRepo.Delete(id); err != nil {
		http.Error(w, fmt.Sprintf("Error deleting agent: %v", err), http.StatusInternalServerError)
		return
	}
	_ = s.imageStore.Remove(a.Avatar)

	http.Redirect(w, r, "/agents", http.StatusSeeOther)
}

// agentFromRequest fills an agent from the submitted form, storing a
// new avatar upload if one is present.
func (s *Server) agentFromRequest(r *http.Request, a *agent.Agent) (*agent.Agent, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return a, fmt.Errorf("parsing form: %w", err)
	}

	a.FullName = r.FormValue("full_name")
	a.Email = r.FormValue("email")
	a.Phone = r.FormValue("phone")
	a.Bio = r.FormValue("bio")

	if a.FullName == "" || a.Email == "" {
		return a, fmt.Errorf("name and email are required")
	}

	f, header, err := r.FormFile("avatar")
	if err == nil {
		defer f.Close()
		filename, err := s.imageStore.Save(f, header.Filename)
		if err != nil {
			return a, fmt.Errorf("saving avatar: %w", err)
		}
		a.Avatar = filename
	}

	return a, nil
}

// adminInquiriesData is the payload for the admin dashboard.
type adminInquiriesData struct {
	Inquiries       []*inquiry.Inquiry
	User            *auth.User
	PropertyCount   int
	AgentCount      int
	ActiveInquiries int
	TotalValue      string
}

// handleAdminInquiries shows the inquiry dashboard with site stats.
func (s *Server) handleAdminInquiries(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}

	inquiries, err := s.inquiryRepo.ListActive()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading inquiries: %v", err), http.StatusInternalServerError)
		return
	}

	data := adminInquiriesData{Inquiries: inquiries, User: u}
	data.PropertyCount, _ = s.propRepo.Count()
	data.AgentCount, _ = s.agentRepo.Count()
	data.ActiveInquiries, _ = s.inquiryRepo.CountActive()
	if total, err := s.propRepo.TotalValue(); err == nil {
		data.TotalValue = tmplFormatPrice(total)
	}

	s.render(w, "admin_inquiries.html", data)
}

// handleAdminInquiriesExport streams the active inquiries as CSV.
func (s *Server) handleAdminInquiriesExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}

	inquiries, err := s.inquiryRepo.ListActive()
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading inquiries: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inquiries-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := inquiry.WriteCSV(w, inquiries); err != nil {
		http.Error(w, fmt.Sprintf("Error writing CSV: %v", err), http.StatusInternalServerError)
	}
}

// handleAdminInquiryRoute handles POST /admin/inquiries/{id}/archive.
func (s *Server) handleAdminInquiryRoute(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/archive") {
		http.NotFound(w, r)
		return
	}

	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/inquiries/"), "/archive")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.inquiryRepo.Archive(id); err != nil {
		http.Error(w, fmt.Sprintf("Error archiving inquiry: %v", err), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/inquiries", http.StatusSeeOther)
}
