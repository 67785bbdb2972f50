package service

import (
	"context"

	"docintel-be/internal/dto"
	"docintel-be/internal/pkg/serverutils"
	"docintel-be/pkg/insight"
	"docintel-be/pkg/timeline"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisService interface {
	Insights(ctx context.Context, req *dto.InsightRequest) (*dto.InsightResponse, error)
	Timeline(ctx context.Context, req *dto.TimelineRequest) (*dto.TimelineResponse, error)
}

// analysisService fronts the structured-analysis processors. They are pure
// CPU paths independent of the vector store, so no locking is involved.
type analysisService struct {
	insights  *insight.Processor
	timelines *timeline.Processor
}

func NewAnalysisService(insights *insight.Processor, timelines *timeline.Processor) IAnalysisService {
	return &analysisService{
		insights:  insights,
		timelines: timelines,
	}
}

func (s *analysisService) Insights(_ context.Context, req *dto.InsightRequest) (*dto.InsightResponse, error) {
	res, err := s.insights.Process(req.ToInput())
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}
	return dto.InsightResponseFromResult(res), nil
}

func (s *analysisService) Timeline(_ context.Context, req *dto.TimelineRequest) (*dto.TimelineResponse, error) {
	res, err := s.timelines.Process(req.ToInput())
	if err != nil {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, err.Error())
	}
	return dto.TimelineResponseFromResult(res), nil
}
