package generation

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe-ai-api/internal/domain/entity"
	"scribe-ai-api/internal/domain/repository"
	"scribe-ai-api/pkg/errors"
	"scribe-ai-api/pkg/metrics"
)

type fakeProfileRepo struct {
	profile      *entity.Profile
	getErr       error
	decremented  int
	decrementErr error
	remaining    int
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entity.Profile) error { return nil }

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return f.profile, f.getErr
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) DecrementCredits(ctx context.Context, id string) (int, error) {
	f.decremented++
	if f.decrementErr != nil {
		return 0, f.decrementErr
	}
	return f.remaining, nil
}

func (f *fakeProfileRepo) AddCredits(ctx context.Context, id string, amount int) (int, error) {
	return 0, nil
}

func (f *fakeProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type fakeUpstream struct {
	calls  int
	err    error
	body   string
	system string
	user   string
}

func (f *fakeUpstream) StreamChat(ctx context.Context, system, user string) (io.ReadCloser, error) {
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestStart_HappyPath(t *testing.T) {
	repo := &fakeProfileRepo{
		profile:   entity.NewProfile("u1", "a@b.c", "A", 5),
		remaining: 4,
	}
	up := &fakeUpstream{body: "data: [DONE]\n"}
	svc := NewService(repo, up, NewRegistry())

	gen, err := svc.Start(context.Background(), "u1", Input{ContentType: "blog", Prompt: "hi"})
	require.NoError(t, err)
	defer gen.Stream.Close()

	assert.Equal(t, 4, gen.RemainingCredits)
	assert.Equal(t, 1, up.calls)
	assert.Equal(t, 1, repo.decremented)
	assert.Contains(t, up.system, "blog post")
	assert.Equal(t, "hi", up.user)
}

func TestStart_ProfileMissing(t *testing.T) {
	repo := &fakeProfileRepo{profile: nil}
	up := &fakeUpstream{}
	svc := NewService(repo, up, NewRegistry())

	_, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeProfileNotFound))
	assert.Equal(t, 0, up.calls)
}

func TestStart_NoCredits(t *testing.T) {
	repo := &fakeProfileRepo{profile: entity.NewProfile("u1", "a@b.c", "A", 0)}
	up := &fakeUpstream{}
	svc := NewService(repo, up, NewRegistry())

	_, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInsufficientCredits))
	// 余额不足时不触碰上游，也不扣减
	assert.Equal(t, 0, up.calls)
	assert.Equal(t, 0, repo.decremented)
}

func TestStart_UpstreamRejectedNoDeduction(t *testing.T) {
	repo := &fakeProfileRepo{profile: entity.NewProfile("u1", "a@b.c", "A", 5)}
	up := &fakeUpstream{err: errors.ErrUpstreamRateLimited}
	svc := NewService(repo, up, NewRegistry())

	_, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUpstreamRateLimited))
	assert.Equal(t, 0, repo.decremented)
}

func TestStart_DeductionFailureDoesNotAbort(t *testing.T) {
	repo := &fakeProfileRepo{
		profile:      entity.NewProfile("u1", "a@b.c", "A", 3),
		decrementErr: repository.ErrNoCreditDeducted,
	}
	up := &fakeUpstream{body: "data: [DONE]\n"}
	svc := NewService(repo, up, NewRegistry())

	gen, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.NoError(t, err)
	defer gen.Stream.Close()

	// 扣减失败按读到的余额估算
	assert.Equal(t, 2, gen.RemainingCredits)
}

func TestStart_CreditCounters(t *testing.T) {
	t.Run("success increments spent", func(t *testing.T) {
		spentBefore := testutil.ToFloat64(metrics.CreditsSpentTotal)
		failBefore := testutil.ToFloat64(metrics.CreditWriteFailuresTotal)

		repo := &fakeProfileRepo{
			profile:   entity.NewProfile("u1", "a@b.c", "A", 5),
			remaining: 4,
		}
		up := &fakeUpstream{body: "data: [DONE]\n"}
		svc := NewService(repo, up, NewRegistry())

		gen, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
		require.NoError(t, err)
		gen.Stream.Close()

		assert.Equal(t, spentBefore+1, testutil.ToFloat64(metrics.CreditsSpentTotal))
		assert.Equal(t, failBefore, testutil.ToFloat64(metrics.CreditWriteFailuresTotal))
	})

	t.Run("write failure does not count as spent", func(t *testing.T) {
		spentBefore := testutil.ToFloat64(metrics.CreditsSpentTotal)
		failBefore := testutil.ToFloat64(metrics.CreditWriteFailuresTotal)

		repo := &fakeProfileRepo{
			profile:      entity.NewProfile("u1", "a@b.c", "A", 3),
			decrementErr: repository.ErrNoCreditDeducted,
		}
		up := &fakeUpstream{body: "data: [DONE]\n"}
		svc := NewService(repo, up, NewRegistry())

		gen, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
		require.NoError(t, err)
		gen.Stream.Close()

		assert.Equal(t, spentBefore, testutil.ToFloat64(metrics.CreditsSpentTotal))
		assert.Equal(t, failBefore+1, testutil.ToFloat64(metrics.CreditWriteFailuresTotal))
	})
}

func TestStart_LastCreditReportsZero(t *testing.T) {
	repo := &fakeProfileRepo{
		profile:   entity.NewProfile("u1", "a@b.c", "A", 1),
		remaining: 0,
	}
	up := &fakeUpstream{body: "data: [DONE]\n"}
	svc := NewService(repo, up, NewRegistry())

	gen, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.NoError(t, err)
	defer gen.Stream.Close()

	assert.Equal(t, 0, gen.RemainingCredits)
}

func TestRelay_WritesProtocol(t *testing.T) {
	repo := &fakeProfileRepo{
		profile:   entity.NewProfile("u1", "a@b.c", "A", 2),
		remaining: 1,
	}
	up := &fakeUpstream{body: strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"Hi"}}]}`,
		`data: [DONE]`,
	}, "\n") + "\n"}
	svc := NewService(repo, up, NewRegistry())

	gen, err := svc.Start(context.Background(), "u1", Input{Prompt: "hi"})
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, svc.Relay(context.Background(), gen, &sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"type":"metadata","remainingCredits":1}`, lines[0])
	assert.JSONEq(t, `{"type":"content","content":"Hi"}`, lines[1])
}
