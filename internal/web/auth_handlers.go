package web

import (
	"net/http"
)

// authPageData is the payload for the login and register pages.
type authPageData struct {
	Error string
	Email string
	Next  string
}

// handleLoginPage shows the login form.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if u := s.currentUser(r); u != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", authPageData{Next: r.URL.Query().Get("next")})
}

// handleRegisterPage shows the registration form.
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if u := s.currentUser(r); u != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "register.html", authPageData{})
}

// handleLogin authenticates a password login and creates a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	u, err := s.users.Authenticate(email, password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, "login.html", authPageData{
			Error: "Invalid email or password",
			Email: email,
			Next:  r.FormValue("next"),
		})
		return
	}

	if err := s.sessions.Create(w, u.Email); err != nil {
		http.Error(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	next := r.FormValue("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// handleRegister creates a new account and signs it in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("email")
	name := r.FormValue("name")
	password := r.FormValue("password")

	u, err := s.users.Register(email, name, password, false)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "register.html", authPageData{Error: err.Error(), Email: email})
		return
	}

	if err := s.sessions.Create(w, u.Email); err != nil {
		http.Error(w, "Error creating session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout destroys the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_ = s.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
