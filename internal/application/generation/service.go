package generation

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/logger"
	"scribe-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("generation")

// Upstream 上游流式生成接口
type Upstream interface {
	StreamChat(ctx context.Context, system, user string) (io.ReadCloser, error)
}

// Generation 一次已被上游接受的生成
// Stream 为未消费的上游响应体，由调用方转发并关闭
type Generation struct {
	Stream           io.ReadCloser
	RemainingCredits int
}

// Service 内容生成服务
type Service struct {
	profiles repository.ProfileRepository
	upstream Upstream
	composer *Composer
	registry *Registry
	reframer *Reframer
}

// NewService 创建生成服务
func NewService(profiles repository.ProfileRepository, upstream Upstream, registry *Registry) *Service {
	return &Service{
		profiles: profiles,
		upstream: upstream,
		composer: NewComposer(registry),
		registry: registry,
		reframer: NewReframer(),
	}
}

// Registry 返回内容类型注册表
func (s *Service) Registry() *Registry {
	return s.registry
}

// Start 启动一次生成
// 顺序固定：校验余额、调用上游、上游接受后才扣减积分。
// 扣减失败只记录不回滚，本次生成照常进行。
func (s *Service) Start(ctx context.Context, userID string, in Input) (*Generation, error) {
	ctx, span := tracer.Start(ctx, "generation.Start")
	span.SetAttributes(
		attribute.String("generation.content_type", in.ContentType),
		attribute.Bool("generation.sample_mode", in.SampleMode),
	)
	defer span.End()

	start := time.Now()

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		metrics.GenerationTotal.WithLabelValues(in.ContentType, "profile_error").Inc()
		return nil, errors.ErrProfileNotFound.WithError(err)
	}
	if profile == nil {
		metrics.GenerationTotal.WithLabelValues(in.ContentType, "profile_error").Inc()
		return nil, errors.ErrProfileNotFound
	}
	if !profile.HasCredits() {
		metrics.GenerationTotal.WithLabelValues(in.ContentType, "no_credits").Inc()
		return nil, errors.ErrInsufficientCredits
	}

	system, user := s.composer.Compose(in)

	stream, err := s.upstream.StreamChat(ctx, system, user)
	if err != nil {
		span.RecordError(err)
		metrics.GenerationTotal.WithLabelValues(in.ContentType, "upstream_error").Inc()
		return nil, err
	}

	// 上游已接受，此时才扣减
	remaining, err := s.profiles.DecrementCredits(ctx, userID)
	if err != nil {
		// 生成已在进行，不因记账失败中断；余额按读到的值估算
		logger.Error(ctx, "failed to deduct credit", err, "user_id", userID)
		metrics.CreditWriteFailuresTotal.Inc()
		remaining = profile.Credits - 1
		if remaining < 0 {
			remaining = 0
		}
	} else {
		metrics.CreditsSpentTotal.Inc()
	}
	metrics.GenerationTotal.WithLabelValues(in.ContentType, "started").Inc()
	metrics.GenerationDuration.WithLabelValues(in.ContentType).Observe(time.Since(start).Seconds())

	logger.Info(ctx, "generation started",
		"user_id", userID,
		"content_type", in.ContentType,
		"remaining_credits", remaining,
	)

	return &Generation{Stream: stream, RemainingCredits: remaining}, nil
}

// Relay 把一次生成的上游流改写转发到 w
func (s *Service) Relay(ctx context.Context, gen *Generation, w io.Writer) error {
	defer gen.Stream.Close()
	return s.reframer.Reframe(ctx, gen.Stream, w, gen.RemainingCredits)
}
