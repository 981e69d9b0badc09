package service

import (
	"context"
	"errors"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

// TaskInput is the writable part of a task.
type TaskInput struct {
	PlaceID   int64
	Name      string
	Point     int
	CycleDays int
}

func (in TaskInput) validate() (TaskInput, error) {
	if err := requireID("place_id", in.PlaceID); err != nil {
		return in, err
	}
	name, err := requireName("name", in.Name)
	if err != nil {
		return in, err
	}
	in.Name = name
	if err := requirePoints("point", in.Point); err != nil {
		return in, err
	}
	if in.CycleDays < 1 {
		return in, invalid("cycle_days", "cycle_days must be at least 1")
	}
	return in, nil
}

// activeTasks returns every active task with its assignees, ordered by
// building, place and task name.
func (s *Service) activeTasks(ctx context.Context) ([]model.TaskDetail, error) {
	tasks, err := s.tasks.ListActive(ctx)
	if err != nil {
		return nil, internal("list tasks", err)
	}
	assignees, err := s.assignments.Assignees(ctx)
	if err != nil {
		return nil, internal("list assignments", err)
	}
	for i := range tasks {
		tasks[i].Assignees = assigneesOf(assignees, tasks[i].ID)
	}
	return tasks, nil
}

func assigneesOf(assignees map[int64][]model.Assignee, taskID int64) []model.Assignee {
	if a := assignees[taskID]; a != nil {
		return a
	}
	return []model.Assignee{}
}

func (s *Service) ListTasks(ctx context.Context) ([]model.TaskDetail, error) {
	tasks, err := s.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.TaskDetail{}
	}
	return tasks, nil
}

// GetTask returns an active task. Soft-deleted tasks are not found.
func (s *Service) GetTask(ctx context.Context, id int64) (*model.TaskDetail, error) {
	t, err := s.tasks.GetActive(ctx, id)
	if err != nil {
		return nil, internal("get task", err)
	}
	if t == nil {
		return nil, notFound("task")
	}

	assignments, err := s.assignments.ListByTask(ctx, id)
	if err != nil {
		return nil, internal("list assignments", err)
	}
	t.Assignees = []model.Assignee{}
	for _, a := range assignments {
		t.Assignees = append(t.Assignees, model.Assignee{AssignmentID: a.ID, UserID: a.UserID, Name: a.UserName})
	}
	return t, nil
}

func (s *Service) requirePlace(ctx context.Context, id int64) error {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return internal("get place", err)
	}
	if p == nil {
		return notFound("place")
	}
	return nil
}

func (s *Service) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}
	if err := s.requirePlace(ctx, in.PlaceID); err != nil {
		return nil, err
	}

	t, err := s.tasks.Create(ctx, in.PlaceID, in.Name, in.Point, in.CycleDays)
	if errors.Is(err, store.ErrReference) {
		return nil, notFound("place")
	}
	if err != nil {
		return nil, internal("create task", err)
	}
	return t, nil
}

// UpdateTask edits an active task. A soft-deleted task is not found.
func (s *Service) UpdateTask(ctx context.Context, id int64, in TaskInput) (*model.Task, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.tasks.GetActive(ctx, id)
	if err != nil {
		return nil, internal("get task", err)
	}
	if existing == nil {
		return nil, notFound("task")
	}
	if err := s.requirePlace(ctx, in.PlaceID); err != nil {
		return nil, err
	}

	t, err := s.tasks.Update(ctx, id, in.PlaceID, in.Name, in.Point, in.CycleDays)
	if errors.Is(err, store.ErrReference) {
		return nil, notFound("place")
	}
	if err != nil {
		return nil, internal("update task", err)
	}
	if t == nil {
		return nil, notFound("task")
	}
	return t, nil
}

// DeleteTask soft-deletes a task. Its completion logs are kept and keep
// counting toward points; its assignments are removed. Clients see only the
// task deletion; no assignment deleted message is broadcast for those rows.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	ok, err := s.tasks.SoftDelete(ctx, id)
	if err != nil {
		return internal("delete task", err)
	}
	if !ok {
		return notFound("task")
	}
	return nil
}
