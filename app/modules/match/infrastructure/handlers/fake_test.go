package matchhandlers

import (
	"context"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	"github.com/google/uuid"
)

// FakeMatchService answers the calls a test programs and panics on the rest.
type FakeMatchService struct {
	matchservice.Service

	calls []string

	CreateMatchFunc        func(ctx context.Context, req matchservice.CreateRequest) (matchservice.OutcomeResult, error)
	StrikeFunc             func(ctx context.Context, a matchservice.StageAction) (matchservice.OutcomeResult, error)
	ReportResultFunc       func(ctx context.Context, a matchservice.ReportAction) (matchservice.OutcomeResult, error)
	ForfeitFunc            func(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error)
	CloseMatchFunc         func(ctx context.Context, req matchservice.CloseRequest) (matchservice.OutcomeResult, error)
	GetStageListFunc       func(ctx context.Context, id uuid.UUID) (matchservice.StageListResult, error)
	ExpireSuggestionFunc   func(ctx context.Context, t matchservice.SuggestionTimeout) (matchservice.OutcomeResult, error)
	ExpireConfirmationFunc func(ctx context.Context, t matchservice.ConfirmationTimeout) (matchservice.OutcomeResult, error)
}

func (f *FakeMatchService) CreateMatch(ctx context.Context, req matchservice.CreateRequest) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "CreateMatch")
	return f.CreateMatchFunc(ctx, req)
}

func (f *FakeMatchService) Strike(ctx context.Context, a matchservice.StageAction) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "Strike")
	return f.StrikeFunc(ctx, a)
}

func (f *FakeMatchService) ReportResult(ctx context.Context, a matchservice.ReportAction) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "ReportResult")
	return f.ReportResultFunc(ctx, a)
}

func (f *FakeMatchService) Forfeit(ctx context.Context, a matchservice.Action) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "Forfeit")
	return f.ForfeitFunc(ctx, a)
}

func (f *FakeMatchService) CloseMatch(ctx context.Context, req matchservice.CloseRequest) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "CloseMatch")
	return f.CloseMatchFunc(ctx, req)
}

func (f *FakeMatchService) GetStageList(ctx context.Context, id uuid.UUID) (matchservice.StageListResult, error) {
	f.calls = append(f.calls, "GetStageList")
	return f.GetStageListFunc(ctx, id)
}

func (f *FakeMatchService) ExpireSuggestion(ctx context.Context, t matchservice.SuggestionTimeout) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "ExpireSuggestion")
	return f.ExpireSuggestionFunc(ctx, t)
}

func (f *FakeMatchService) ExpireConfirmation(ctx context.Context, t matchservice.ConfirmationTimeout) (matchservice.OutcomeResult, error) {
	f.calls = append(f.calls, "ExpireConfirmation")
	return f.ExpireConfirmationFunc(ctx, t)
}
