package presenter

import (
	"context"

	"github.com/openvta/van-terminal-api/internal/models"
	"github.com/openvta/van-terminal-api/internal/service"
	appErrors "github.com/openvta/van-terminal-api/pkg/errors"
)

type assignmentMutator interface {
	List(ctx context.Context) ([]models.Assignment, error)
	Create(ctx context.Context, req service.CreateAssignmentRequest) (*models.Assignment, error)
	Update(ctx context.Context, req service.UpdateAssignmentRequest) error
	Delete(ctx context.Context, id int64) error
}

// Draft is the in-memory, not-yet-persisted assignment being created or
// edited. A nil ID means the draft would create a new assignment.
type Draft struct {
	ID         *int64
	VanID      int64
	OperatorID int64
}

// Session drives the assignment form: one draft, an editing flag, the cached
// assignment list and the current page. It moves Idle -> Editing on BeginEdit
// and back to Idle on submit success, delete success or cancel.
type Session struct {
	service     assignmentMutator
	draft       Draft
	editing     bool
	submitting  bool
	assignments []models.Assignment
	page        int
}

// NewSession builds a session over the assignment service.
func NewSession(svc assignmentMutator) *Session {
	return &Session{service: svc, page: 1}
}

// Refresh reloads the assignment list from the service and clamps the page.
func (s *Session) Refresh(ctx context.Context) error {
	assignments, err := s.service.List(ctx)
	if err != nil {
		return err
	}
	s.assignments = assignments
	s.page = ClampPage(s.page, len(s.assignments))
	return nil
}

// Assignments returns the cached list.
func (s *Session) Assignments() []models.Assignment {
	return s.assignments
}

// VisibleAssignments returns the current page window.
func (s *Session) VisibleAssignments() []models.Assignment {
	return Window(s.assignments, s.page)
}

// Page returns the 1-based current page index.
func (s *Session) Page() int { return s.page }

// NextPage advances one page; a request past the last page is a no-op.
func (s *Session) NextPage() {
	if s.page < TotalPages(len(s.assignments)) {
		s.page++
	}
}

// PrevPage goes back one page; a request before page 1 is a no-op.
func (s *Session) PrevPage() {
	if s.page > 1 {
		s.page--
	}
}

// Editing reports whether an existing assignment is being edited.
func (s *Session) Editing() bool { return s.editing }

// Draft returns the current draft.
func (s *Session) Draft() Draft { return s.draft }

// SetDraft updates the draft's selection without changing the edit state.
func (s *Session) SetDraft(vanID, operatorID int64) {
	s.draft.VanID = vanID
	s.draft.OperatorID = operatorID
}

// EditingID returns the id of the assignment under edit, or nil.
func (s *Session) EditingID() *int64 {
	if !s.editing {
		return nil
	}
	return s.draft.ID
}

// BeginEdit loads an existing assignment into the draft.
func (s *Session) BeginEdit(a models.Assignment) {
	id := a.ID
	s.draft = Draft{ID: &id, VanID: a.VanID, OperatorID: a.OperatorID}
	s.editing = true
}

// Cancel discards the draft and returns to the idle state.
func (s *Session) Cancel() {
	s.draft = Draft{}
	s.editing = false
}

// Submit persists the draft, creating or updating depending on the edit
// state, then reloads the list from the service. A submit while one is
// already in flight is rejected rather than silently doubled.
func (s *Session) Submit(ctx context.Context) error {
	if s.submitting {
		return appErrors.Clone(appErrors.ErrConflict, "submit already in progress")
	}
	s.submitting = true
	defer func() { s.submitting = false }()

	if s.editing && s.draft.ID != nil {
		err := s.service.Update(ctx, service.UpdateAssignmentRequest{
			ID:         *s.draft.ID,
			VanID:      s.draft.VanID,
			OperatorID: s.draft.OperatorID,
		})
		if err != nil {
			return err
		}
	} else {
		if _, err := s.service.Create(ctx, service.CreateAssignmentRequest{
			VanID:      s.draft.VanID,
			OperatorID: s.draft.OperatorID,
		}); err != nil {
			return err
		}
	}

	s.Cancel()
	return s.Refresh(ctx)
}

// Remove deletes an assignment and reloads. Refresh clamps the page, so
// deleting the sole row of the last page steps the index back by one.
func (s *Session) Remove(ctx context.Context, id int64) error {
	if err := s.service.Delete(ctx, id); err != nil {
		return err
	}
	if s.editing && s.draft.ID != nil && *s.draft.ID == id {
		s.Cancel()
	}
	return s.Refresh(ctx)
}
