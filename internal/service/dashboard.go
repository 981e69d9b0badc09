package service

import (
	"context"
	"time"

	"github.com/dukerupert/choreboard/internal/chore"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/points"
)

const recentPointUsages = 10

// Rankings returns the point ledger of every user, highest remaining first.
func (s *Service) Rankings(ctx context.Context) ([]model.UserRanking, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, internal("list users", err)
	}
	logs, err := s.taskLogs.ListAll(ctx)
	if err != nil {
		return nil, internal("list task logs", err)
	}
	usages, err := s.pointUsages.ListAll(ctx)
	if err != nil {
		return nil, internal("list point usages", err)
	}
	taskPoints, err := s.tasks.Points(ctx)
	if err != nil {
		return nil, internal("list task points", err)
	}
	return points.Rank(users, logs, usages, taskPoints), nil
}

// DueTasks returns the active tasks due today.
func (s *Service) DueTasks(ctx context.Context) ([]model.DueTask, error) {
	return s.dueTasks(ctx, s.Now())
}

func (s *Service) dueTasks(ctx context.Context, today time.Time) ([]model.DueTask, error) {
	tasks, err := s.activeTasks(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.taskLogs.LatestByTask(ctx)
	if err != nil {
		return nil, internal("list latest completions", err)
	}

	states := make([]chore.TaskState, len(tasks))
	for i, t := range tasks {
		states[i] = chore.TaskState{Task: t}
		if done, ok := latest[t.ID]; ok {
			states[i].LastDone = &done
		}
	}
	return chore.DueTasks(states, today), nil
}

// Dashboard returns today's due tasks, this week's completions, the point
// rankings and the most recent point usages.
func (s *Service) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	today := s.Now()
	weekStart := chore.StartOfWeek(today)

	due, err := s.dueTasks(ctx, today)
	if err != nil {
		return nil, err
	}
	weekly, err := s.taskLogs.ListSince(ctx, weekStart)
	if err != nil {
		return nil, internal("list task logs", err)
	}
	rankings, err := s.Rankings(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.pointUsages.Recent(ctx, recentPointUsages)
	if err != nil {
		return nil, internal("list point usages", err)
	}

	if weekly == nil {
		weekly = []model.TaskLogDetail{}
	}
	if recent == nil {
		recent = []model.PointUsageDetail{}
	}
	return &model.Dashboard{
		Today:             today,
		WeekStart:         weekStart,
		TodayTasks:        due,
		WeeklyTaskLogs:    weekly,
		UserRankings:      rankings,
		RecentPointUsages: recent,
	}, nil
}
