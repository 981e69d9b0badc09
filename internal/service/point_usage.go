package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/store"
)

func (s *Service) ListPointUsages(ctx context.Context) ([]model.PointUsageDetail, error) {
	usages, err := s.pointUsages.List(ctx)
	if err != nil {
		return nil, internal("list point usages", err)
	}
	if usages == nil {
		usages = []model.PointUsageDetail{}
	}
	return usages, nil
}

// CreatePointUsage debits pointsUsed from a user. Spending more than the user
// has earned is allowed; remaining points go negative.
func (s *Service) CreatePointUsage(ctx context.Context, userID int64, pointsUsed int, description string) (*model.PointUsageDetail, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	if err := requirePoints("points_used", pointsUsed); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalid("description", "description is required")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	u, err := s.pointUsages.Create(ctx, userID, pointsUsed, description, s.Now())
	if errors.Is(err, store.ErrReference) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, internal("create point usage", err)
	}
	return u, nil
}
