package service

import (
	"context"
	"errors"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

func (s *Service) ListAssignments(ctx context.Context) ([]model.AssignmentDetail, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, internal("list assignments", err)
	}
	if assignments == nil {
		assignments = []model.AssignmentDetail{}
	}
	return assignments, nil
}

// ListTaskAssignments returns the assignments of one active task.
func (s *Service) ListTaskAssignments(ctx context.Context, taskID int64) ([]model.AssignmentDetail, error) {
	if err := s.requireActiveTask(ctx, taskID); err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, internal("list assignments", err)
	}
	if assignments == nil {
		assignments = []model.AssignmentDetail{}
	}
	return assignments, nil
}

func (s *Service) requireActiveTask(ctx context.Context, id int64) error {
	t, err := s.tasks.GetActive(ctx, id)
	if err != nil {
		return internal("get task", err)
	}
	if t == nil {
		return notFound("task")
	}
	return nil
}

// CreateAssignment assigns a user to an active task. Assigning the same user
// twice is a conflict.
func (s *Service) CreateAssignment(ctx context.Context, taskID, userID int64) (*model.AssignmentDetail, error) {
	if err := requireID("task_id", taskID); err != nil {
		return nil, err
	}
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	if err := s.requireActiveTask(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	a, err := s.assignments.Create(ctx, taskID, userID)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return nil, conflict("user is already assigned to this task", err)
	case errors.Is(err, store.ErrReference):
		return nil, notFound("user")
	case err != nil:
		return nil, internal("create assignment", err)
	}
	return a, nil
}

func (s *Service) DeleteAssignment(ctx context.Context, id int64) error {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return internal("get assignment", err)
	}
	if a == nil {
		return notFound("assignment")
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return internal("delete assignment", err)
	}
	return nil
}

// DeleteTaskAssignment removes an assignment only if it belongs to taskID.
func (s *Service) DeleteTaskAssignment(ctx context.Context, taskID, assignmentID int64) error {
	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return internal("get assignment", err)
	}
	if a == nil || a.TaskID != taskID {
		return notFound("assignment")
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return internal("delete assignment", err)
	}
	return nil
}
