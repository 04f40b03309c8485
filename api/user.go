package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/auth"
)

type UserHandler struct {
	auth *auth.Manager
}

func NewUserHandler(m *auth.Manager) *UserHandler {
	return &UserHandler{auth: m}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(w, r, "register", &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, s, err := h.auth.Register(r.Context(), auth.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.auth.SetCookie(w, s)
	writeOK(w, http.StatusOK, "User Registered!", "user", u)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, "login", &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, s, err := h.auth.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.auth.SetCookie(w, s)
	writeOK(w, http.StatusOK, "User Logged In!", "user", u)
}

// Logout clears the cookie. The token itself stays valid until it expires.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.ClearCookie(w)
	writeOK(w, http.StatusOK, "Logged Out Successfully.", "", nil)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u := userFromContext(r.Context())
	if u == nil {
		writeError(w, r, apperr.ErrUnauthenticated)
		return
	}

	writeOK(w, http.StatusOK, "", "user", u)
}
