package image

import (
	"context"
	"errors"
	"testing"
	"time"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/config"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/domain/service"
	apperrors "contentforge-ai-api/pkg/errors"
)

type fakeStrategy struct {
	data []byte
	err  error
}

func (f *fakeStrategy) Name() string  { return "openai" }
func (f *fakeStrategy) Model() string { return "dall-e-3" }
func (f *fakeStrategy) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, "image/png", nil
}

type fakeLimiter struct {
	allowed bool
	err     error
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return f.allowed, f.err
}

type fakeStore struct{}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}
func (f *fakeStore) PublicObjectURL(key string) string { return "https://cdn.example.com/" + key }

type fakeImageRepo struct {
	created *entity.GeneratedImage
}

func (f *fakeImageRepo) Create(ctx context.Context, img *entity.GeneratedImage) error {
	f.created = img
	return nil
}
func (f *fakeImageRepo) GetByID(ctx context.Context, id string) (*entity.GeneratedImage, error) {
	return nil, nil
}
func (f *fakeImageRepo) Update(ctx context.Context, img *entity.GeneratedImage) error { return nil }
func (f *fakeImageRepo) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.GeneratedImage], error) {
	return &repository.PagedResult[*entity.GeneratedImage]{}, nil
}

type fakeAccountRepo struct {
	balance int64
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.BillingAccount) error {
	return nil
}
func (f *fakeAccountRepo) GetByUserID(ctx context.Context, userID string) (*entity.BillingAccount, error) {
	return &entity.BillingAccount{UserID: userID, Balance: f.balance}, nil
}
func (f *fakeAccountRepo) Deduct(ctx context.Context, userID string, tokens int64) error { return nil }
func (f *fakeAccountRepo) TopUp(ctx context.Context, userID string, tokens int64) error  { return nil }

type fakeRecorder struct {
	recorded chan service.UsageInput
}

func (f *fakeRecorder) Record(ctx context.Context, in service.UsageInput) error {
	f.recorded <- in
	return nil
}

func newTestService(strategy Strategy, limiter RateLimiter, balance int64, recorder service.UsageRecorder, images repository.GeneratedImageRepository) *Service {
	cfg := &config.ImageConfig{
		Provider: "openai",
		Providers: map[string]config.ImageProviderConfig{
			"openai": {Model: "dall-e-3", TokenCost: 4000},
		},
		RateLimit: config.ImageRateLimitConfig{Window: time.Minute, MaxRequests: 5},
		Thumbnail: config.ThumbnailConfig{MaxWidth: 512},
	}
	return NewService(
		map[string]Strategy{"openai": strategy},
		limiter,
		billing.NewChecker(&fakeAccountRepo{balance: balance}),
		recorder,
		&fakeStore{},
		images,
		nil,
		cfg,
	)
}

func TestGenerateRecordsFixedCostOnSuccess(t *testing.T) {
	recorder := &fakeRecorder{recorded: make(chan service.UsageInput, 1)}
	repo := &fakeImageRepo{}
	svc := newTestService(&fakeStrategy{data: []byte("png-bytes")}, &fakeLimiter{allowed: true}, 1_000_000, recorder, repo)

	out, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.TokenCost != 4000 {
		t.Errorf("token cost = %d, want 4000", out.TokenCost)
	}
	if out.Provider != "openai" || out.Model != "dall-e-3" {
		t.Errorf("provider/model = %s/%s", out.Provider, out.Model)
	}
	if len(out.Images) != 1 {
		t.Fatalf("images = %d, want a single-element list", len(out.Images))
	}
	if repo.created == nil || repo.created.Provider != "openai" {
		t.Fatalf("image record = %+v", repo.created)
	}
	if out.Images[0].StorageKey != repo.created.StorageKey {
		t.Errorf("storage key = %q, want %q", out.Images[0].StorageKey, repo.created.StorageKey)
	}
	if out.Images[0].PreviewURL != repo.created.PreviewURL {
		t.Errorf("preview url = %q, want %q", out.Images[0].PreviewURL, repo.created.PreviewURL)
	}

	select {
	case usage := <-recorder.recorded:
		if usage.FixedCost != 4000 {
			t.Errorf("recorded fixed cost = %d, want 4000", usage.FixedCost)
		}
		if !usage.Success {
			t.Error("successful generation must be recorded as success")
		}
		if usage.Operation != "generate image" {
			t.Errorf("operation = %q", usage.Operation)
		}
	case <-time.After(time.Second):
		t.Fatal("usage was not recorded")
	}
}

func TestGenerateProviderFailureIsNotBilled(t *testing.T) {
	recorder := &fakeRecorder{recorded: make(chan service.UsageInput, 1)}
	svc := newTestService(&fakeStrategy{err: errors.New("503 service unavailable")}, &fakeLimiter{allowed: true}, 1_000_000, recorder, &fakeImageRepo{})

	_, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox",
	})
	if err == nil {
		t.Fatal("provider failure must surface an error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeAIProviderError {
		t.Errorf("error = %v, want provider error", err)
	}

	select {
	case usage := <-recorder.recorded:
		t.Fatalf("failed generation must not be billed, recorded %+v", usage)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGenerateInsufficientBalanceFailsBeforeProvider(t *testing.T) {
	svc := newTestService(&fakeStrategy{data: []byte("png")}, &fakeLimiter{allowed: true}, 100, nil, &fakeImageRepo{})

	_, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInsufficientBalance {
		t.Fatalf("error = %v, want insufficient balance", err)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	svc := newTestService(&fakeStrategy{data: []byte("png")}, &fakeLimiter{allowed: false}, 1_000_000, nil, &fakeImageRepo{})

	_, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeRateLimitExceeded {
		t.Fatalf("error = %v, want rate limit exceeded", err)
	}
}

func TestGenerateLimiterOutageFailsOpen(t *testing.T) {
	recorder := &fakeRecorder{recorded: make(chan service.UsageInput, 1)}
	svc := newTestService(&fakeStrategy{data: []byte("png")}, &fakeLimiter{err: errors.New("redis down")}, 1_000_000, recorder, &fakeImageRepo{})

	if _, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox",
	}); err != nil {
		t.Fatalf("limiter outage must not block generation: %v", err)
	}
	<-recorder.recorded
}

func TestGenerateUnknownProvider(t *testing.T) {
	svc := newTestService(&fakeStrategy{data: []byte("png")}, &fakeLimiter{allowed: true}, 1_000_000, nil, &fakeImageRepo{})

	_, err := svc.Generate(context.Background(), &GenerateInput{
		WorkspaceID: "ws-1", UserID: "user-1", Prompt: "a red fox", Provider: "midjourney",
	})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeAIConfigError {
		t.Fatalf("error = %v, want config error", err)
	}
}
