// Package policy decides whether an identity may perform an action on a job
// or application. Decisions depend only on role and ownership.
package policy

import (
	"fmt"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/models"
)

// Identity is the caller as resolved from the session. The zero value is an
// unauthenticated caller.
type Identity struct {
	UserID string
	Role   models.Role
}

func (i Identity) Authenticated() bool {
	return i.UserID != "" && i.Role.Valid()
}

type Action int

const (
	ReadJobs Action = iota
	CreateJob
	ListOwnJobs
	UpdateJob
	DeleteJob
	SubmitApplication
	ListSeekerApplications
	ListEmployerApplications
	DeleteApplication
)

var actionNames = map[Action]string{
	ReadJobs:                 "read jobs",
	CreateJob:                "create job",
	ListOwnJobs:              "list own jobs",
	UpdateJob:                "update job",
	DeleteJob:                "delete job",
	SubmitApplication:        "submit application",
	ListSeekerApplications:   "list job seeker applications",
	ListEmployerApplications: "list employer applications",
	DeleteApplication:        "delete application",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Resource describes the target of an action. OwnerID is the job's PostedBy or
// the application's ApplicantID; it is empty for collection-level actions.
type Resource struct {
	OwnerID string
}

type rule struct {
	role  models.Role // empty means any authenticated role
	owner bool
}

var rules = map[Action]rule{
	ReadJobs:                 {},
	CreateJob:                {role: models.RoleEmployer},
	ListOwnJobs:              {role: models.RoleEmployer},
	UpdateJob:                {role: models.RoleEmployer, owner: true},
	DeleteJob:                {role: models.RoleEmployer, owner: true},
	SubmitApplication:        {role: models.RoleJobSeeker, owner: true},
	ListSeekerApplications:   {role: models.RoleJobSeeker},
	ListEmployerApplications: {role: models.RoleEmployer},
	DeleteApplication:        {role: models.RoleJobSeeker, owner: true},
}

// Decision is the outcome of Authorize. Reason is nil when Allowed and
// otherwise wraps apperr.ErrUnauthenticated or apperr.ErrForbidden.
type Decision struct {
	Allowed bool
	Reason  error
}

// Err returns nil for an allowed decision and the deny reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(err error) Decision { return Decision{Reason: err} }

// Authorize applies the role and ownership rules for a.
func Authorize(id Identity, a Action, res Resource) Decision {
	if !id.Authenticated() {
		return deny(apperr.Unauthenticated("user not authorized"))
	}

	r, ok := rules[a]
	if !ok {
		return deny(apperr.Forbidden("unknown action %s", a))
	}

	if r.role != "" && id.Role != r.role {
		return deny(apperr.Forbidden("%s is not allowed to %s", id.Role, a))
	}
	if r.owner && res.OwnerID != id.UserID {
		return deny(apperr.Forbidden("only the owner may %s", a))
	}

	return allow()
}
