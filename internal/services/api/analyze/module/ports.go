package module

import (
	"context"

	"mouthwash/internal/core/topic"
	"mouthwash/internal/services/api/analyze/domain"
	analyzesvc "mouthwash/internal/services/api/analyze/service"
	moddom "mouthwash/internal/services/moderation/domain"
)

// adaptAnalyzePort exposes service methods as module ports for cross-module usage
type adaptAnalyzePort struct{ svc analyzesvc.Service }

var _ domain.ServicePort = adaptAnalyzePort{}

func (a adaptAnalyzePort) Text(ctx context.Context, in domain.TextInput) (domain.TextResponse, error) {
	return a.svc.Text(ctx, in)
}

func (a adaptAnalyzePort) Topic(ctx context.Context, in domain.TopicInput) (topic.Report, error) {
	return a.svc.Topic(ctx, in)
}

func (a adaptAnalyzePort) Script(ctx context.Context, in domain.ScriptInput) (domain.ScriptResponse, error) {
	return a.svc.Script(ctx, in)
}

func (a adaptAnalyzePort) Moderate(ctx context.Context, in domain.ModerateInput) (moddom.ReviewOutcome, error) {
	return a.svc.Moderate(ctx, in)
}
