package api

import (
	"net/http"

	"github.com/garnizeh/jobboard/internal/catalog"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/gorilla/mux"
)

type JobHandler struct {
	svc *catalog.Service
}

func NewJobHandler(svc *catalog.Service) *JobHandler {
	return &JobHandler{svc: svc}
}

// jobRequest is the body of both post and update. Pointer fields stay nil when
// absent so an update only touches what the client sent.
type jobRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Location    *string `json:"location"`
	FixedSalary salary  `json:"fixedSalary"`
	SalaryFrom  salary  `json:"salaryFrom"`
	SalaryTo    salary  `json:"salaryTo"`
	Expired     *bool   `json:"expired"`
}

func (req jobRequest) newJob() catalog.NewJob {
	return catalog.NewJob{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Category:    deref(req.Category),
		Country:     deref(req.Country),
		City:        deref(req.City),
		Location:    deref(req.Location),
		FixedSalary: req.FixedSalary.value,
		SalaryFrom:  req.SalaryFrom.value,
		SalaryTo:    req.SalaryTo.value,
	}
}

func (req jobRequest) patch() models.JobPatch {
	p := models.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		FixedSalary: models.Optional[int64]{Set: req.FixedSalary.set, Value: req.FixedSalary.value},
		SalaryFrom:  models.Optional[int64]{Set: req.SalaryFrom.set, Value: req.SalaryFrom.value},
		SalaryTo:    models.Optional[int64]{Set: req.SalaryTo.set, Value: req.SalaryTo.value},
		Expired:     req.Expired,
	}
	if req.Category != nil {
		c := models.Category(*req.Category)
		p.Category = &c
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *JobHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, "job", &req); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.svc.Create(r.Context(), identityFromContext(r.Context()), req.newJob())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusCreated, "Job Posted Successfully!", "job", j)
}

func (h *JobHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.List(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "", "jobs", jobs)
}

func (h *JobHandler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListByOwner(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "", "myJobs", jobs)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Get(r.Context(), identityFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "", "job", j)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, "job", &req); err != nil {
		writeError(w, r, err)
		return
	}

	j, err := h.svc.Update(r.Context(), identityFromContext(r.Context()), mux.Vars(r)["id"], req.patch())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "Job Updated!", "job", j)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), identityFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}

	writeOK(w, http.StatusOK, "Job Deleted!", "", nil)
}
