package matchhandlers

import (
	"context"

	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
)

// Handlers handles the inbound match topics.
type Handlers interface {
	HandleCreateMatch(ctx context.Context, payload *matchevents.MatchCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleStrike(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePick(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSuggest(ctx context.Context, payload *matchevents.StageActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAcceptSuggestion(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRejectSuggestion(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePickFighter(ctx context.Context, payload *matchevents.FighterPickRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleReportResult(ctx context.Context, payload *matchevents.ResultReportRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleConfirmResult(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleForfeit(ctx context.Context, payload *matchevents.ActionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCloseMatch(ctx context.Context, payload *matchevents.MatchCloseRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleStageList(ctx context.Context, payload *matchevents.StageListRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleSuggestionTimeout(ctx context.Context, payload *matchevents.SuggestionTimeoutPayloadV1) ([]handlerwrapper.Result, error)
	HandleConfirmationTimeout(ctx context.Context, payload *matchevents.ConfirmationTimeoutPayloadV1) ([]handlerwrapper.Result, error)
}
