// Package points computes the point ledger: what each user earned by
// completing tasks, what they spent, and what remains.
package points

import (
	"slices"

	"github.com/dukerupert/choreboard/internal/model"
)

// Rank computes one ledger row per user and orders the rows by remaining
// points, highest first. Users with equal remaining points keep their input
// order.
//
// Earned points use the task's current point value from taskPoints, so
// editing a task's points changes the totals of every past completion. Logs
// and usages that belong to users not in users are ignored.
func Rank(users []model.User, logs []model.TaskLog, usages []model.PointUsage, taskPoints map[int64]int) []model.UserRanking {
	index := make(map[int64]int, len(users))
	rankings := make([]model.UserRanking, len(users))
	for i, u := range users {
		index[u.ID] = i
		rankings[i] = model.UserRanking{UserID: u.ID, Name: u.Name}
	}

	for _, l := range logs {
		i, ok := index[l.UserID]
		if !ok {
			continue
		}
		rankings[i].EarnedPoints += taskPoints[l.TaskID]
		rankings[i].TaskCount++
	}

	for _, u := range usages {
		i, ok := index[u.UserID]
		if !ok {
			continue
		}
		rankings[i].UsedPoints += u.PointsUsed
	}

	for i := range rankings {
		rankings[i].RemainingPoints = rankings[i].EarnedPoints - rankings[i].UsedPoints
	}

	slices.SortStableFunc(rankings, func(a, b model.UserRanking) int {
		return b.RemainingPoints - a.RemainingPoints
	})
	return rankings
}

// Summarize returns the ledger row for a single user.
func Summarize(user model.User, logs []model.TaskLog, usages []model.PointUsage, taskPoints map[int64]int) model.UserRanking {
	return Rank([]model.User{user}, logs, usages, taskPoints)[0]
}
