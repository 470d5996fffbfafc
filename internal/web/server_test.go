package web

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/satish051/RealEstateApp/internal/auth"
	"github.com/satish051/RealEstateApp/internal/db"
	"github.com/satish051/RealEstateApp/internal/property"
)

func testServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	cfg := auth.Config{
		AdminEmail:    "admin@realestate.com",
		AdminPassword: "admin-secret",
		BaseURL:       "http://localhost:8080",
	}

	srv, err := NewServer(conn, cfg, t.TempDir())
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	return srv, conn
}

func insertProperty(t *testing.T, conn *sql.DB, p *property.Property) *property.Property {
	t.Helper()
	created, err := property.NewRepository(conn).Insert(p)
	if err != nil {
		t.Fatalf("insert property: %v", err)
	}
	return created
}

func sampleProperty(title string, price int64, lt property.ListingType) *property.Property {
	return &property.Property{
		Title:       title,
		Address:     "12 Oak St",
		Price:       price,
		Bedrooms:    3,
		Bathrooms:   2,
		ListingType: lt,
		AgentName:   "Maya Shrestha",
		AgentEmail:  "maya@realestate.com",
	}
}

// login posts credentials and returns the session cookies.
func login(t *testing.T, srv *Server, email, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {password}}
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("login: status = %d, want 303", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login: no session cookie")
	}
	return cookies
}

func registerUser(t *testing.T, srv *Server, email, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "name": {"Test User"}, "password": {password}}
	r := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("register: status = %d, want 303, body %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func get(srv *Server, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func postForm(srv *Server, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func TestListPage(t *testing.T) {
	srv, conn := testServer(t)
	insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))
	insertProperty(t, conn, sampleProperty("Downtown Loft", 31900000, property.ForSale))

	w := get(srv, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Sunny Bungalow") || !strings.Contains(body, "Downtown Loft") {
		t.Error("expected both listings on the index page")
	}
}

func TestListPageFiltered(t *testing.T) {
	srv, conn := testServer(t)
	insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))
	insertProperty(t, conn, sampleProperty("Downtown Loft", 31900000, property.ForRent))

	w := get(srv, "/?search=bungalow", nil)
	body := w.Body.String()
	if !strings.Contains(body, "Sunny Bungalow") {
		t.Error("expected matching listing")
	}
	if strings.Contains(body, "Downtown Loft") {
		t.Error("non-matching listing should be filtered out")
	}

	w = get(srv, "/?type=for_rent", nil)
	body = w.Body.String()
	if strings.Contains(body, "Sunny Bungalow") || !strings.Contains(body, "Downtown Loft") {
		t.Error("type filter not applied")
	}

	w = get(srv, "/?min_price=300000", nil)
	body = w.Body.String()
	if strings.Contains(body, "Sunny Bungalow") || !strings.Contains(body, "Downtown Loft") {
		t.Error("price filter not applied")
	}
}

func TestListPageRejectsBadPrice(t *testing.T) {
	srv, _ := testServer(t)

	w := get(srv, "/?min_price=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDetailPage(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))
	insertProperty(t, conn, sampleProperty("Similar Home", 25000000, property.ForSale))
	insertProperty(t, conn, sampleProperty("Too Expensive", 99000000, property.ForSale))

	w := get(srv, "/property/"+itoa(ref.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Sunny Bungalow") {
		t.Error("expected property title")
	}
	if !strings.Contains(body, "Similar Home") {
		t.Error("expected similar listing in the price band")
	}
	if strings.Contains(body, "Too Expensive") {
		t.Error("out-of-band listing should not appear as similar")
	}
}

func TestDetailPageNotFound(t *testing.T) {
	srv, _ := testServer(t)

	w := get(srv, "/property/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestInquiryPost(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))

	form := url.Values{"email": {"buyer@example.com"}, "message": {"Still available?"}}
	w := postForm(srv, "/property/"+itoa(ref.ID)+"/inquiry", form, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	inquiries, err := srv.inquiryRepo.ListActive()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(inquiries) != 1 || inquiries[0].UserEmail != "buyer@example.com" {
		t.Errorf("unexpected inquiries: %+v", inquiries)
	}
}

func TestInquiryPostRequiresMessage(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))

	form := url.Values{"email": {"buyer@example.com"}, "message": {"  "}}
	w := postForm(srv, "/property/"+itoa(ref.ID)+"/inquiry", form, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSaveToggleRequiresLogin(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))

	w := postForm(srv, "/property/"+itoa(ref.ID)+"/save", url.Values{}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect to %q, want /login", loc)
	}
}

func TestSaveAndSavedPage(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))
	cookies := registerUser(t, srv, "user@example.com", "correct-horse")

	w := postForm(srv, "/property/"+itoa(ref.ID)+"/save", url.Values{}, cookies)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("save: status = %d, want 303", w.Code)
	}

	w = get(srv, "/saved", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("saved page: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Sunny Bungalow") {
		t.Error("expected saved listing on the page")
	}

	// second toggle removes it
	postForm(srv, "/property/"+itoa(ref.ID)+"/save", url.Values{}, cookies)
	w = get(srv, "/saved", cookies)
	if strings.Contains(w.Body.String(), "Sunny Bungalow") {
		t.Error("expected listing to be unsaved")
	}
}

func TestMyInquiriesOwnership(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))

	mine := registerUser(t, srv, "mine@example.com", "correct-horse")
	theirs := registerUser(t, srv, "theirs@example.com", "correct-horse")

	postForm(srv, "/property/"+itoa(ref.ID)+"/inquiry", url.Values{"message": {"Mine"}}, mine)

	w := get(srv, "/inquiries", mine)
	if !strings.Contains(w.Body.String(), "Mine") {
		t.Error("expected own inquiry")
	}

	q, err := srv.inquiryRepo.ListByUser("mine@example.com")
	if err != nil || len(q) != 1 {
		t.Fatalf("list by user: %v (%d)", err, len(q))
	}

	// another user cannot delete it
	w = postForm(srv, "/inquiries/"+itoa(q[0].ID)+"/delete", url.Values{}, theirs)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete: status = %d, want 403", w.Code)
	}

	w = postForm(srv, "/inquiries/"+itoa(q[0].ID)+"/delete", url.Values{}, mine)
	if w.Code != http.StatusSeeOther {
		t.Errorf("own delete: status = %d, want 303", w.Code)
	}
}

func TestAdminGate(t *testing.T) {
	srv, _ := testServer(t)

	// anonymous requests are redirected by the middleware
	w := get(srv, "/admin/properties/new", nil)
	if w.Code != http.StatusSeeOther {
		t.Errorf("anonymous: status = %d, want 303", w.Code)
	}

	// regular accounts are forbidden
	user := registerUser(t, srv, "user@example.com", "correct-horse")
	w = get(srv, "/admin/properties/new", user)
	if w.Code != http.StatusForbidden {
		t.Errorf("regular user: status = %d, want 403", w.Code)
	}

	// the seeded admin gets through
	admin := login(t, srv, "admin@realestate.com", "admin-secret")
	w = get(srv, "/admin/properties/new", admin)
	if w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestAdminCreateProperty(t *testing.T) {
	srv, _ := testServer(t)
	admin := login(t, srv, "admin@realestate.com", "admin-secret")

	body, contentType := multipartForm(t, map[string]string{
		"title":        "New Villa",
		"address":      "9 Hill Rd",
		"price":        "650000",
		"bedrooms":     "4",
		"bathrooms":    "3",
		"listing_type": "for_sale",
		"agent_name":   "Maya Shrestha",
		"agent_email":  "maya@realestate.com",
	})

	r := httptest.NewRequest(http.MethodPost, "/admin/properties", body)
	r.Header.Set("Content-Type", contentType)
	for _, c := range admin {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303, body %s", w.Code, w.Body.String())
	}

	props, err := srv.propRepo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
	if props[0].Title != "New Villa" {
		t.Errorf("title = %q", props[0].Title)
	}
	// dollars in the form, cents in storage
	if props[0].Price != 65000000 {
		t.Errorf("price = %d, want 65000000", props[0].Price)
	}
}

func TestAdminCreatePropertyValidation(t *testing.T) {
	srv, _ := testServer(t)
	admin := login(t, srv, "admin@realestate.com", "admin-secret")

	body, contentType := multipartForm(t, map[string]string{
		"title":        "Broken",
		"address":      "9 Hill Rd",
		"price":        "not-a-number",
		"listing_type": "for_sale",
	})

	r := httptest.NewRequest(http.MethodPost, "/admin/properties", body)
	r.Header.Set("Content-Type", contentType)
	for _, c := range admin {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAdminInquiriesDashboardAndExport(t *testing.T) {
	srv, conn := testServer(t)
	ref := insertProperty(t, conn, sampleProperty("Sunny Bungalow", 24500000, property.ForSale))
	if _, err := srv.inquiryRepo.Create(ref.ID, "buyer@example.com", "Hello"); err != nil {
		t.Fatalf("create inquiry: %v", err)
	}

	admin := login(t, srv, "admin@realestate.com", "admin-secret")

	w := get(srv, "/admin/inquiries", admin)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "buyer@example.com") {
		t.Error("expected inquiry on the dashboard")
	}

	w = get(srv, "/admin/inquiries/export", admin)
	if w.Code != http.StatusOK {
		t.Fatalf("export: status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}
	if !strings.Contains(w.Body.String(), "Sunny Bungalow") {
		t.Error("expected inquiry row in the CSV")
	}
}

func TestLogout(t *testing.T) {
	srv, _ := testServer(t)
	cookies := registerUser(t, srv, "user@example.com", "correct-horse")

	w := postForm(srv, "/auth/logout", url.Values{}, cookies)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("logout: status = %d, want 303", w.Code)
	}

	w = get(srv, "/saved", cookies)
	if w.Code != http.StatusSeeOther {
		t.Errorf("after logout: status = %d, want redirect to login", w.Code)
	}
}

func TestStaticAssets(t *testing.T) {
	srv, _ := testServer(t)

	w := get(srv, "/static/style.css", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
