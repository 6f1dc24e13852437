package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"contentforge-ai-api/internal/application/billing"
	"contentforge-ai-api/internal/application/generation/contextrepo"
	"contentforge-ai-api/internal/application/generation/executor"
	"contentforge-ai-api/internal/application/generation/prompt"
	"contentforge-ai-api/internal/domain/entity"
	"contentforge-ai-api/internal/domain/repository"
	"contentforge-ai-api/internal/domain/service"
	apperrors "contentforge-ai-api/pkg/errors"
)

type fakeAccountRepo struct {
	balance int64
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.BillingAccount) error {
	return nil
}

func (f *fakeAccountRepo) GetByUserID(ctx context.Context, userID string) (*entity.BillingAccount, error) {
	return &entity.BillingAccount{UserID: userID, Balance: f.balance}, nil
}

func (f *fakeAccountRepo) Deduct(ctx context.Context, userID string, tokens int64) error {
	f.balance -= tokens
	return nil
}

func (f *fakeAccountRepo) TopUp(ctx context.Context, userID string, tokens int64) error {
	f.balance += tokens
	return nil
}

var _ repository.BillingAccountRepository = (*fakeAccountRepo)(nil)

type fakeRecorder struct {
	ch chan service.UsageInput
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{ch: make(chan service.UsageInput, 1)}
}

func (f *fakeRecorder) Record(ctx context.Context, in service.UsageInput) error {
	f.ch <- in
	return nil
}

func baseHooks(executed *bool, result *ExecResult) *Hooks {
	return &Hooks{
		Operation:   "generate draft",
		WorkspaceID: "ws-1",
		UserID:      "user-1",
		FetchData:   func(ctx context.Context) error { return nil },
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return &prompt.PromptPair{System: "system prompt text", User: "user prompt text"}, nil
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			*executed = true
			return result, nil
		},
	}
}

func TestPipelineInsufficientBalanceFailsBeforeExecute(t *testing.T) {
	executed := false
	pipeline := NewPipeline(billing.NewChecker(&fakeAccountRepo{balance: 0}), nil, 3.0)

	_, err := pipeline.Run(context.Background(), baseHooks(&executed, nil))
	if err == nil {
		t.Fatal("expected insufficient balance error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInsufficientBalance {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeInsufficientBalance)
	}
	if executed {
		t.Error("Execute must not be called when the balance pre-check fails")
	}
}

func TestPipelineRecordsUsageOnSuccess(t *testing.T) {
	executed := false
	recorder := newFakeRecorder()
	pipeline := NewPipeline(billing.NewChecker(&fakeAccountRepo{balance: 1_000_000}), recorder, 3.0)

	result := &ExecResult{
		Text:     "generated text",
		Usage:    &executor.TokenUsage{InputTokens: 12, OutputTokens: 34},
		Provider: "openai",
		Model:    "gpt-4o",
	}

	res, err := pipeline.Run(context.Background(), baseHooks(&executed, result))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Text != "generated text" {
		t.Errorf("result text = %q", res.Text)
	}
	if !executed {
		t.Fatal("Execute was not called")
	}

	select {
	case in := <-recorder.ch:
		if in.PromptTokens != 12 || in.CompletionTokens != 34 {
			t.Errorf("recorded usage = %+v", in)
		}
		if !in.Success {
			t.Error("usage should be recorded as success")
		}
		if in.Operation != "generate draft" {
			t.Errorf("operation = %q", in.Operation)
		}
	case <-time.After(time.Second):
		t.Fatal("usage was never recorded")
	}
}

func TestPipelineValidationErrorShortCircuits(t *testing.T) {
	fetched := false
	hooks := &Hooks{
		Operation: "generate draft",
		UserID:    "user-1",
		ValidateInput: func(ctx context.Context) error {
			return apperrors.New(apperrors.CodeInvalidParam, "title is required")
		},
		FetchData: func(ctx context.Context) error {
			fetched = true
			return nil
		},
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return &prompt.PromptPair{}, nil
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return nil, nil
		},
	}

	pipeline := NewPipeline(billing.NewChecker(&fakeAccountRepo{balance: 100}), nil, 3.0)
	if _, err := pipeline.Run(context.Background(), hooks); err == nil {
		t.Fatal("expected validation error")
	}
	if fetched {
		t.Error("FetchData must not run after validation failure")
	}
}

func TestPipelineExecuteErrorRecordedAsFailure(t *testing.T) {
	recorder := newFakeRecorder()
	pipeline := NewPipeline(billing.NewChecker(&fakeAccountRepo{balance: 1_000_000}), recorder, 3.0)

	hooks := &Hooks{
		Operation: "refine content",
		UserID:    "user-1",
		FetchData: func(ctx context.Context) error { return nil },
		BuildPrompts: func(ctx context.Context, gc *contextrepo.GenerationContext) (*prompt.PromptPair, error) {
			return &prompt.PromptPair{System: "s", User: "u"}, nil
		},
		Execute: func(ctx context.Context, pair *prompt.PromptPair) (*ExecResult, error) {
			return &ExecResult{
				Usage:    &executor.TokenUsage{InputTokens: 5},
				Provider: "openai",
			}, errors.New("stream interrupted")
		},
	}

	if _, err := pipeline.Run(context.Background(), hooks); err == nil {
		t.Fatal("expected execute error to propagate")
	}

	select {
	case in := <-recorder.ch:
		if in.Success {
			t.Error("failed execution must be recorded with Success=false")
		}
	case <-time.After(time.Second):
		t.Fatal("usage was never recorded for the failed call")
	}
}
