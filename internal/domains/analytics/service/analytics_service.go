package service

import (
	"context"

	"b2bees-backend/internal/domains/analytics/model"
	"b2bees-backend/internal/domains/analytics/repository"
)

type analyticsService struct {
	repo        repository.Repository
	subscribers SubscriberCounter
}

func NewAnalyticsService(repo repository.Repository, subscribers SubscriberCounter) Service {
	return &analyticsService{repo: repo, subscribers: subscribers}
}

func (s *analyticsService) Track(ctx context.Context, req model.TrackRequest, userAgent, ip string) error {
	if err := s.repo.Insert(ctx, req.ToEntity(userAgent, ip)); err != nil {
		return model.NewTrackEventError(err)
	}
	return nil
}

func (s *analyticsService) Summary(ctx context.Context) (*model.Summary, error) {
	counts, err := s.repo.CountByTypes(ctx, model.SummaryEventTypes)
	if err != nil {
		return nil, model.NewSummaryError(err)
	}

	total, err := s.subscribers.CountActive(ctx)
	if err != nil {
		return nil, model.NewSummaryError(err)
	}

	return &model.Summary{
		PageViews:        counts[model.EventPageView],
		ButtonClicks:     counts[model.EventButtonClick],
		SocialClicks:     counts[model.EventSocialClick],
		TotalSubscribers: total,
	}, nil
}
