package domain

import (
	"context"

	"mouthwash/internal/core/topic"
	moddom "mouthwash/internal/services/moderation/domain"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Text(ctx context.Context, in TextInput) (TextResponse, error)
	Topic(ctx context.Context, in TopicInput) (topic.Report, error)
	Script(ctx context.Context, in ScriptInput) (ScriptResponse, error)
	Moderate(ctx context.Context, in ModerateInput) (moddom.ReviewOutcome, error)
}
