package policy_test

import (
	"errors"
	"testing"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/internal/policy"
)

func TestAuthorize(t *testing.T) {
	seeker := policy.Identity{UserID: "alice", Role: models.RoleJobSeeker}
	employer := policy.Identity{UserID: "bob", Role: models.RoleEmployer}
	otherEmployer := policy.Identity{UserID: "carol", Role: models.RoleEmployer}
	anon := policy.Identity{}
	bogus := policy.Identity{UserID: "mallory", Role: models.Role("Admin")}

	bobs := policy.Resource{OwnerID: "bob"}
	alices := policy.Resource{OwnerID: "alice"}
	none := policy.Resource{}

	tests := []struct {
		name   string
		id     policy.Identity
		action policy.Action
		res    policy.Resource
		want   error
	}{
		{"seeker reads jobs", seeker, policy.ReadJobs, none, nil},
		{"employer reads jobs", employer, policy.ReadJobs, none, nil},
		{"anonymous reads jobs", anon, policy.ReadJobs, none, apperr.ErrUnauthenticated},
		{"unknown role reads jobs", bogus, policy.ReadJobs, none, apperr.ErrUnauthenticated},

		{"employer creates job", employer, policy.CreateJob, none, nil},
		{"seeker creates job", seeker, policy.CreateJob, none, apperr.ErrForbidden},
		{"employer lists own jobs", employer, policy.ListOwnJobs, none, nil},
		{"seeker lists own jobs", seeker, policy.ListOwnJobs, none, apperr.ErrForbidden},

		{"owner updates job", employer, policy.UpdateJob, bobs, nil},
		{"other employer updates job", otherEmployer, policy.UpdateJob, bobs, apperr.ErrForbidden},
		{"seeker updates job", seeker, policy.UpdateJob, bobs, apperr.ErrForbidden},
		{"owner deletes job", employer, policy.DeleteJob, bobs, nil},
		{"other employer deletes job", otherEmployer, policy.DeleteJob, bobs, apperr.ErrForbidden},
		{"anonymous deletes job", anon, policy.DeleteJob, bobs, apperr.ErrUnauthenticated},

		{"seeker applies for self", seeker, policy.SubmitApplication, alices, nil},
		{"seeker applies for someone else", seeker, policy.SubmitApplication, bobs, apperr.ErrForbidden},
		{"employer applies", employer, policy.SubmitApplication, bobs, apperr.ErrForbidden},

		{"seeker lists own applications", seeker, policy.ListSeekerApplications, none, nil},
		{"employer lists seeker applications", employer, policy.ListSeekerApplications, none, apperr.ErrForbidden},
		{"employer lists received applications", employer, policy.ListEmployerApplications, none, nil},
		{"seeker lists received applications", seeker, policy.ListEmployerApplications, none, apperr.ErrForbidden},

		{"applicant deletes application", seeker, policy.DeleteApplication, alices, nil},
		{"employer deletes application", employer, policy.DeleteApplication, alices, apperr.ErrForbidden},
		{"other seeker deletes application", policy.Identity{UserID: "dave", Role: models.RoleJobSeeker}, policy.DeleteApplication, alices, apperr.ErrForbidden},

		{"unknown action", employer, policy.Action(99), none, apperr.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := policy.Authorize(tt.id, tt.action, tt.res)
			if tt.want == nil {
				if !d.Allowed || d.Err() != nil {
					t.Fatalf("expected allow, got deny: %v", d.Reason)
				}
				return
			}
			if d.Allowed {
				t.Fatalf("expected deny (%v), got allow", tt.want)
			}
			if !errors.Is(d.Err(), tt.want) {
				t.Fatalf("expected reason %v, got %v", tt.want, d.Reason)
			}
			if apperr.Message(d.Err()) == "" {
				t.Fatalf("deny reason must carry a message")
			}
		})
	}
}

func TestActionString(t *testing.T) {
	if got := policy.UpdateJob.String(); got != "update job" {
		t.Fatalf("UpdateJob.String() = %q", got)
	}
	if got := policy.Action(42).String(); got != "action(42)" {
		t.Fatalf("unknown action String() = %q", got)
	}
}
