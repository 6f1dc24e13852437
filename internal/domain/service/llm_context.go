package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyOperation llmCtxKey = "llm_operation"
	llmCtxKeyProvider  llmCtxKey = "llm_provider"
)

func WithOperation(ctx context.Context, operation string) context.Context {
	if ctx == nil {
		return nil
	}
	op := strings.TrimSpace(operation)
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyOperation, op)
}

func WithProvider(ctx context.Context, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyProvider, p)
}

func WithOperationProvider(ctx context.Context, operation, provider string) context.Context {
	return WithProvider(WithOperation(ctx, operation), provider)
}

func OperationFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	v := ctx.Value(llmCtxKeyOperation)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}

func ProviderFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	v := ctx.Value(llmCtxKeyProvider)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return strings.TrimSpace(s)
}
