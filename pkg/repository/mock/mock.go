package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/pkg/repository"
)

// Store is an in-memory repository.Store for tests. Err, when set, is
// returned by every method so callers can exercise storage failures.
type Store struct {
	mu           sync.Mutex
	Users        map[string]models.User
	Jobs         map[string]models.Job
	Applications map[string]models.Application
	Err          error
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Users:        map[string]models.User{},
		Jobs:         map[string]models.Job{},
		Applications: map[string]models.Application{},
	}
}

func (s *Store) Ping(ctx context.Context) error { return s.Err }

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.Users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.Users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateJob(ctx context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Jobs[j.ID] = *j
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if j, ok := s.Jobs[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]models.Job, error) {
	return s.listJobs(func(models.Job) bool { return true })
}

func (s *Store) ListJobsByOwner(ctx context.Context, employerID string) ([]models.Job, error) {
	return s.listJobs(func(j models.Job) bool { return j.PostedBy == employerID })
}

func (s *Store) listJobs(keep func(models.Job) bool) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Job{}
	for _, j := range s.Jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateJob(ctx context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Jobs[j.ID]; !ok {
		return repository.ErrNotFound
	}
	s.Jobs[j.ID] = *j
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Jobs, id)
	return nil
}

func (s *Store) CreateApplication(ctx context.Context, a *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	j, ok := s.Jobs[a.JobID]
	if !ok {
		return repository.ErrNotFound
	}
	a.EmployerID = j.PostedBy
	s.Applications[a.ID] = *a
	return nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if a, ok := s.Applications[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *Store) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	return s.listApplications(func(a models.Application) bool { return a.ApplicantID == applicantID })
}

func (s *Store) ListByEmployer(ctx context.Context, employerID string) ([]models.Application, error) {
	return s.listApplications(func(a models.Application) bool { return a.EmployerID == employerID })
}

func (s *Store) listApplications(keep func(models.Application) bool) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Application{}
	for _, a := range s.Applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(x, y int) bool { return out[x].CreatedAt.After(out[y].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteApplication(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Applications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Applications, id)
	return nil
}
