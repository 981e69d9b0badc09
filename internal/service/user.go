package service

import (
	"context"
	"errors"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/points"
	"github.com/dukerupert/choreboard/internal/store"
)

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internal("list users", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// GetUser returns a user with their assignments, completion history, point
// usages and point summary.
func (s *Service) GetUser(ctx context.Context, id int64) (*model.UserDetail, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, internal("get user", err)
	}
	if u == nil {
		return nil, notFound("user")
	}

	assignments, err := s.assignments.ListByUser(ctx, id)
	if err != nil {
		return nil, internal("list assignments", err)
	}
	logs, err := s.taskLogs.ListByUser(ctx, id)
	if err != nil {
		return nil, internal("list task logs", err)
	}
	usages, err := s.pointUsages.ListByUser(ctx, id)
	if err != nil {
		return nil, internal("list point usages", err)
	}
	taskPoints, err := s.tasks.Points(ctx)
	if err != nil {
		return nil, internal("list task points", err)
	}

	raw := make([]model.TaskLog, len(logs))
	for i, l := range logs {
		raw[i] = l.TaskLog
	}

	d := &model.UserDetail{
		User:        *u,
		Assignments: assignments,
		TaskLogs:    logs,
		PointUsages: usages,
		Points:      points.Summarize(*u, raw, usages, taskPoints),
	}
	if d.Assignments == nil {
		d.Assignments = []model.AssignmentDetail{}
	}
	if d.TaskLogs == nil {
		d.TaskLogs = []model.TaskLogDetail{}
	}
	if d.PointUsages == nil {
		d.PointUsages = []model.PointUsage{}
	}
	return d, nil
}

func (s *Service) requireUser(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return internal("get user", err)
	}
	if u == nil {
		return notFound("user")
	}
	return nil
}

func (s *Service) CreateUser(ctx context.Context, name string) (*model.User, error) {
	name, err := requireName("name", name)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, name)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, conflict("a user with this name already exists", err)
	}
	if err != nil {
		return nil, internal("create user", err)
	}
	return u, nil
}

// DeleteUser removes a user nothing refers to. Blockers are checked in order:
// assignments, task logs, point usages; the first one found is reported.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.requireUser(ctx, id); err != nil {
		return err
	}

	blockers := []struct {
		count   func(context.Context, int64) (int, error)
		message string
	}{
		{s.assignments.CountByUser, "user is assigned to tasks; remove the assignments first"},
		{s.taskLogs.CountByUser, "user has task completion history"},
		{s.pointUsages.CountByUser, "user has point usage history"},
	}
	for _, b := range blockers {
		n, err := b.count(ctx, id)
		if err != nil {
			return internal("check user references", err)
		}
		if n > 0 {
			return inUse(b.message)
		}
	}

	err := s.users.Delete(ctx, id)
	if errors.Is(err, store.ErrReference) {
		return inUse("user is still referenced")
	}
	if err != nil {
		return internal("delete user", err)
	}
	return nil
}
