package chore

import (
	"time"

	"github.com/dukerupert/choreboard/internal/model"
)

// TaskState is an active task together with its most recent completion, if any.
type TaskState struct {
	Task     model.TaskDetail
	LastDone *time.Time
}

// NextDue returns the first day on which a task completed on lastDone is due
// again: the completion day plus cycleDays calendar days, at midnight in
// lastDone's location.
func NextDue(lastDone time.Time, cycleDays int) time.Time {
	return startOfDay(lastDone).AddDate(0, 0, cycleDays)
}

// IsDue reports whether a task is due on today. A task that was never
// completed is always due; otherwise it is due once today reaches NextDue.
// Both dates are truncated to midnight in today's location.
func IsDue(lastDone *time.Time, cycleDays int, today time.Time) bool {
	if lastDone == nil {
		return true
	}
	today = startOfDay(today)
	next := NextDue(lastDone.In(today.Location()), cycleDays)
	return !today.Before(next)
}

// Evaluate returns the due status of a task on today and, for tasks that have
// been completed at least once, the day it is (or was) next due.
func Evaluate(lastDone *time.Time, cycleDays int, today time.Time) (model.DueStatus, *time.Time) {
	if lastDone == nil {
		return model.DueStatusDue, nil
	}

	today = startOfDay(today)
	next := NextDue(lastDone.In(today.Location()), cycleDays)

	switch {
	case today.Before(next):
		return model.DueStatusNotDue, &next
	case today.After(next):
		return model.DueStatusOverdue, &next
	default:
		return model.DueStatusDue, &next
	}
}

// DueTasks returns the tasks that are due on today, in input order, annotated
// with status and dates.
func DueTasks(tasks []TaskState, today time.Time) []model.DueTask {
	due := []model.DueTask{}
	for _, ts := range tasks {
		if !IsDue(ts.LastDone, ts.Task.CycleDays, today) {
			continue
		}
		status, next := Evaluate(ts.LastDone, ts.Task.CycleDays, today)
		due = append(due, model.DueTask{
			TaskDetail: ts.Task,
			Status:     status,
			LastDoneAt: ts.LastDone,
			NextDueAt:  next,
		})
	}
	return due
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
