package service

import (
	"context"
	"errors"
	"time"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

// ListTaskLogs returns every completion, newest first. Completions of
// soft-deleted tasks are included.
func (s *Service) ListTaskLogs(ctx context.Context) ([]model.TaskLogDetail, error) {
	logs, err := s.taskLogs.List(ctx)
	if err != nil {
		return nil, internal("list task logs", err)
	}
	if logs == nil {
		logs = []model.TaskLogDetail{}
	}
	return logs, nil
}

// CreateTaskLog records that userID completed taskID. A nil dateDone means now.
func (s *Service) CreateTaskLog(ctx context.Context, taskID, userID int64, dateDone *time.Time) (*model.TaskLogDetail, error) {
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

	done := s.Now()
	if dateDone != nil {
		done = *dateDone
	}

	l, err := s.taskLogs.Create(ctx, taskID, userID, done)
	if errors.Is(err, store.ErrReference) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, internal("create task log", err)
	}
	return l, nil
}
