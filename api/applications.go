package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/applications"
	"github.com/gorilla/mux"
)

type ApplicationHandler struct {
	svc *applications.Service
}

func NewApplicationHandler(svc *applications.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type applicationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CoverLetter string `json:"coverLetter"`
	JobID       string `json:"jobId"`
}

func (h *ApplicationHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := decodeBody(w, r, "application", &req); err != nil {
		writeError(w, r, err)
		return
	}

	a, err := h.svc.Submit(r.Context(), identityFromContext(r.Context()), applications.NewApplication{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		CoverLetter: req.CoverLetter,
		JobID:       req.JobID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, "Application Submitted!", "application", a)
}

func (h *ApplicationHandler) JobSeekerGetAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListForJobSeeker(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "", "applications", apps)
}

func (h *ApplicationHandler) EmployerGetAll(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListForEmployer(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "", "applications", apps)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), identityFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "Application Deleted!", "", nil)
}
