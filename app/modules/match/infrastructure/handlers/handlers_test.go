package matchhandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	matchservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/match/domain"
	ratingservice "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/application"
	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	ratingevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/rating"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/handlerwrapper"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var testMatchID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMatch() *matchdomain.Match {
	return &matchdomain.Match{
		ID:           testMatchID,
		GuildID:      "guild-1",
		Player1:      "amy",
		Player2:      "ben",
		WinsRequired: 2,
		CurrentGame:  1,
		Status:       matchdomain.StatusInProgress,
		StartedAt:    time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
		Games:        []matchdomain.Game{{Number: 1, FirstToStrike: "amy"}},
	}
}

func success(o matchservice.Outcome) matchservice.OutcomeResult {
	return results.SuccessResult[matchservice.Outcome, error](o)
}

func failure(err error) matchservice.OutcomeResult {
	return results.FailureResult[matchservice.Outcome, error](err)
}

func topics(rs []handlerwrapper.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Topic
	}
	return out
}

func strikePayload(player sharedtypes.PlayerID) *matchevents.StageActionRequestedPayloadV1 {
	return &matchevents.StageActionRequestedPayloadV1{
		ActionRequestedPayloadV1: matchevents.ActionRequestedPayloadV1{MatchID: testMatchID, PlayerID: player},
		Stage:                    "1",
	}
}

func TestHandleStrike(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*FakeMatchService)
		wantTopics []string
		wantCode   string
		wantErr    bool
	}{
		{
			name: "events are published in order",
			setup: func(f *FakeMatchService) {
				f.StrikeFunc = func(_ context.Context, a matchservice.StageAction) (matchservice.OutcomeResult, error) {
					return success(matchservice.Outcome{Match: testMatch(), Events: []matchdomain.Event{
						matchdomain.StageStruck{GameNumber: 1, By: a.PlayerID, Stage: stagedomain.Battlefield},
						matchdomain.TurnAdvanced{GameNumber: 1, NextPlayer: "ben", Prompt: matchdomain.PromptStrike, StrikesRemaining: 3},
					}}), nil
				}
			},
			wantTopics: []string{matchevents.StageStruckV1, matchevents.TurnAdvancedV1},
		},
		{
			name: "validation failure is rejected with its code",
			setup: func(f *FakeMatchService) {
				f.StrikeFunc = func(context.Context, matchservice.StageAction) (matchservice.OutcomeResult, error) {
					return failure(matchdomain.ErrNotYourTurn), nil
				}
			},
			wantTopics: []string{matchevents.MatchActionRejectedV1},
			wantCode:   "not_your_turn",
		},
		{
			name: "unknown match",
			setup: func(f *FakeMatchService) {
				f.StrikeFunc = func(context.Context, matchservice.StageAction) (matchservice.OutcomeResult, error) {
					return failure(matchservice.ErrMatchNotFound), nil
				}
			},
			wantTopics: []string{matchevents.MatchActionRejectedV1},
			wantCode:   matchevents.CodeNotFound,
		},
		{
			name: "infrastructure error is returned for retry",
			setup: func(f *FakeMatchService) {
				f.StrikeFunc = func(context.Context, matchservice.StageAction) (matchservice.OutcomeResult, error) {
					return matchservice.OutcomeResult{}, errors.New("connection reset")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeMatchService{}
			tt.setup(svc)
			h := NewMatchHandlers(svc, nil, testLogger())

			out, err := h.HandleStrike(context.Background(), strikePayload("amy"))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopics, topics(out))

			if tt.wantCode != "" {
				payload := out[0].Payload.(matchevents.MatchActionRejectedPayloadV1)
				assert.Equal(t, tt.wantCode, payload.Code)
				assert.Equal(t, testMatchID, payload.MatchID)
				assert.Equal(t, sharedtypes.PlayerID("amy"), payload.PlayerID)
				assert.NotEmpty(t, payload.Message)
			}
		})
	}
}

func TestHandleStrike_PayloadMapping(t *testing.T) {
	svc := &FakeMatchService{}
	var got matchservice.StageAction
	svc.StrikeFunc = func(_ context.Context, a matchservice.StageAction) (matchservice.OutcomeResult, error) {
		got = a
		return success(matchservice.Outcome{Match: testMatch()}), nil
	}
	h := NewMatchHandlers(svc, nil, testLogger())

	payload := strikePayload("amy")
	payload.GameNumber = 2
	payload.Stage = "Smashville"
	_, err := h.HandleStrike(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, matchservice.StageAction{
		Action: matchservice.Action{MatchID: testMatchID, GameNumber: 2, PlayerID: "amy"},
		Stage:  "Smashville",
	}, got)
}

func TestRateLimit(t *testing.T) {
	svc := &FakeMatchService{
		StrikeFunc: func(context.Context, matchservice.StageAction) (matchservice.OutcomeResult, error) {
			return success(matchservice.Outcome{Match: testMatch()}), nil
		},
	}
	h := NewMatchHandlers(svc, NewPlayerRateLimiter(rate.Every(time.Hour), 2), testLogger())
	ctx := context.Background()

	for range 2 {
		out, err := h.HandleStrike(ctx, strikePayload("amy"))
		require.NoError(t, err)
		assert.Empty(t, out)
	}

	out, err := h.HandleStrike(ctx, strikePayload("amy"))
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.MatchActionRejectedV1}, topics(out))
	assert.Equal(t, matchevents.CodeRateLimited, out[0].Payload.(matchevents.MatchActionRejectedPayloadV1).Code)
	assert.Equal(t, []string{"Strike", "Strike"}, svc.calls)

	// other players have their own budget
	out, err = h.HandleStrike(ctx, strikePayload("ben"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestHandleCreateMatch(t *testing.T) {
	req := &matchevents.MatchCreateRequestedPayloadV1{GuildID: "guild-1", Player1: "amy", Player2: "ben", WinsRequired: 2, Ranked: true}

	t.Run("created", func(t *testing.T) {
		svc := &FakeMatchService{}
		svc.CreateMatchFunc = func(_ context.Context, r matchservice.CreateRequest) (matchservice.OutcomeResult, error) {
			assert.True(t, r.Ranked)
			return success(matchservice.Outcome{Match: testMatch(), Events: []matchdomain.Event{
				matchdomain.TurnAdvanced{GameNumber: 1, NextPlayer: "amy", Prompt: matchdomain.PromptStrike, StrikesRemaining: 4},
			}}), nil
		}
		h := NewMatchHandlers(svc, nil, testLogger())

		out, err := h.HandleCreateMatch(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, []string{matchevents.MatchCreatedV1, matchevents.TurnAdvancedV1}, topics(out))

		created := out[0].Payload.(matchevents.MatchCreatedPayloadV1)
		assert.Equal(t, testMatchID, created.Match.ID)
		assert.Equal(t, "in_progress", created.Match.Status)
		assert.Equal(t, sharedtypes.PlayerID("amy"), created.FirstToStrike)

		turn := out[1].Payload.(matchevents.TurnAdvancedPayloadV1)
		assert.Equal(t, "strike", turn.Prompt)
	})

	t.Run("failed", func(t *testing.T) {
		svc := &FakeMatchService{}
		svc.CreateMatchFunc = func(context.Context, matchservice.CreateRequest) (matchservice.OutcomeResult, error) {
			return failure(&matchdomain.ValidationError{Code: "invalid_match", Message: "a player cannot play against themselves"}), nil
		}
		h := NewMatchHandlers(svc, nil, testLogger())

		out, err := h.HandleCreateMatch(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, []string{matchevents.MatchCreateFailedV1}, topics(out))
		assert.Equal(t, "a player cannot play against themselves", out[0].Payload.(matchevents.MatchCreateFailedPayloadV1).Reason)
	})
}

func TestHandleForfeit_PublishesRatingUpdates(t *testing.T) {
	m := testMatch()
	winner := sharedtypes.PlayerID("ben")
	svc := &FakeMatchService{}
	svc.ForfeitFunc = func(context.Context, matchservice.Action) (matchservice.OutcomeResult, error) {
		return success(matchservice.Outcome{
			Match: m,
			Events: []matchdomain.Event{
				matchdomain.MatchWon{Winner: winner, Player2Score: 2, Resolution: matchdomain.ResolutionForfeit},
				matchdomain.MatchClosed{Resolution: matchdomain.ResolutionForfeit, Winner: &winner},
			},
			RatingUpdates: []ratingservice.RatingUpdate{{
				Scope:    ratingdomain.ScopeCommunity,
				GuildID:  "guild-1",
				PlayerID: winner,
				MatchID:  m.ID,
				Old:      ratingdomain.Rating{Mu: 1500, Phi: 350, Sigma: 0.06},
				New:      ratingdomain.Rating{Mu: 1662.31, Phi: 290.32, Sigma: 0.06},
			}},
		}), nil
	}
	h := NewMatchHandlers(svc, nil, testLogger())

	out, err := h.HandleForfeit(context.Background(), &matchevents.ActionRequestedPayloadV1{MatchID: m.ID, PlayerID: "amy"})
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.MatchWonV1, matchevents.MatchClosedV1, ratingevents.RatingUpdatedV1}, topics(out))

	won := out[0].Payload.(matchevents.MatchWonPayloadV1)
	assert.Equal(t, "forfeit", won.Resolution)

	updated := out[2].Payload.(ratingevents.RatingUpdatedPayloadV1)
	assert.Equal(t, "community", updated.Scope)
	assert.Equal(t, 1662.31, updated.New.Mu)
}

func TestHandleCloseMatch(t *testing.T) {
	tests := []struct {
		name       string
		payload    matchevents.MatchCloseRequestedPayloadV1
		wantReq    *matchservice.CloseRequest
		wantTopics []string
	}{
		{
			name:       "cancel",
			payload:    matchevents.MatchCloseRequestedPayloadV1{MatchID: testMatchID, Resolution: "cancelled"},
			wantReq:    &matchservice.CloseRequest{MatchID: testMatchID},
			wantTopics: []string{matchevents.MatchClosedV1},
		},
		{
			name:       "award",
			payload:    matchevents.MatchCloseRequestedPayloadV1{MatchID: testMatchID, Resolution: "awarded", AwardedTo: "ben"},
			wantReq:    &matchservice.CloseRequest{MatchID: testMatchID, AwardedTo: "ben"},
			wantTopics: []string{matchevents.MatchClosedV1},
		},
		{
			name:       "award without a winner",
			payload:    matchevents.MatchCloseRequestedPayloadV1{MatchID: testMatchID, Resolution: "awarded"},
			wantTopics: []string{matchevents.MatchActionRejectedV1},
		},
		{
			name:       "unknown resolution",
			payload:    matchevents.MatchCloseRequestedPayloadV1{MatchID: testMatchID, Resolution: "draw"},
			wantTopics: []string{matchevents.MatchActionRejectedV1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *matchservice.CloseRequest
			svc := &FakeMatchService{}
			svc.CloseMatchFunc = func(_ context.Context, req matchservice.CloseRequest) (matchservice.OutcomeResult, error) {
				got = &req
				return success(matchservice.Outcome{Match: testMatch(), Events: []matchdomain.Event{
					matchdomain.MatchClosed{Resolution: matchdomain.ResolutionCancelled},
				}}), nil
			}
			h := NewMatchHandlers(svc, nil, testLogger())

			out, err := h.HandleCloseMatch(context.Background(), &tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopics, topics(out))
			assert.Equal(t, tt.wantReq, got)
		})
	}
}

func TestHandleStageList(t *testing.T) {
	svc := &FakeMatchService{}
	svc.GetStageListFunc = func(_ context.Context, id uuid.UUID) (matchservice.StageListResult, error) {
		return results.SuccessResult[matchservice.StageList, error](matchservice.StageList{
			MatchID:    id,
			GameNumber: 2,
			Stages: []matchdomain.StageOption{
				{Number: 1, Stage: stagedomain.Battlefield, Struck: true, InPool: true},
				{Number: 2, Stage: stagedomain.FinalDestination, DSRForbidden: true, InPool: true},
			},
		}), nil
	}
	h := NewMatchHandlers(svc, nil, testLogger())

	out, err := h.HandleStageList(context.Background(), &matchevents.StageListRequestedPayloadV1{MatchID: testMatchID})
	require.NoError(t, err)
	require.Equal(t, []string{matchevents.StageListRetrievedV1}, topics(out))

	list := out[0].Payload.(matchevents.StageListRetrievedPayloadV1)
	assert.Equal(t, 2, list.GameNumber)
	require.Len(t, list.Stages, 2)
	assert.Equal(t, "Battlefield", list.Stages[0].Stage.Name)
	assert.True(t, list.Stages[1].DSRForbidden)
}

func TestTimeouts(t *testing.T) {
	t.Run("stale suggestion timeout publishes nothing", func(t *testing.T) {
		svc := &FakeMatchService{}
		svc.ExpireSuggestionFunc = func(_ context.Context, st matchservice.SuggestionTimeout) (matchservice.OutcomeResult, error) {
			assert.Equal(t, stagedomain.Smashville, st.Stage)
			assert.Equal(t, 2, st.Seq)
			return success(matchservice.Outcome{Match: testMatch(), Stale: true}), nil
		}
		h := NewMatchHandlers(svc, nil, testLogger())

		out, err := h.HandleSuggestionTimeout(context.Background(), &matchevents.SuggestionTimeoutPayloadV1{
			MatchID: testMatchID, GameNumber: 1, Seq: 2, SuggestedBy: "amy", StageID: int(stagedomain.Smashville),
		})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("expired confirmation publishes the game result", func(t *testing.T) {
		svc := &FakeMatchService{}
		svc.ExpireConfirmationFunc = func(_ context.Context, ct matchservice.ConfirmationTimeout) (matchservice.OutcomeResult, error) {
			assert.Equal(t, 3, ct.Seq)
			return success(matchservice.Outcome{Match: testMatch(), Events: []matchdomain.Event{
				matchdomain.GameWon{GameNumber: 1, Winner: "amy"},
			}}), nil
		}
		h := NewMatchHandlers(svc, nil, testLogger())

		out, err := h.HandleConfirmationTimeout(context.Background(), &matchevents.ConfirmationTimeoutPayloadV1{
			MatchID: testMatchID, GameNumber: 1, Seq: 3, ClaimedWinner: "amy", NeedsConfirmationBy: "ben",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{matchevents.GameWonV1}, topics(out))
	})

	t.Run("failure publishes nothing", func(t *testing.T) {
		svc := &FakeMatchService{}
		svc.ExpireConfirmationFunc = func(context.Context, matchservice.ConfirmationTimeout) (matchservice.OutcomeResult, error) {
			return failure(matchservice.ErrMatchNotFound), nil
		}
		h := NewMatchHandlers(svc, nil, testLogger())

		out, err := h.HandleConfirmationTimeout(context.Background(), &matchevents.ConfirmationTimeoutPayloadV1{MatchID: testMatchID})
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestNilPayloads(t *testing.T) {
	h := NewMatchHandlers(&FakeMatchService{}, nil, testLogger())
	ctx := context.Background()

	_, err := h.HandleStrike(ctx, nil)
	assert.Error(t, err)
	_, err = h.HandleForfeit(ctx, nil)
	assert.Error(t, err)
	_, err = h.HandleCloseMatch(ctx, nil)
	assert.Error(t, err)
	_, err = h.HandleSuggestionTimeout(ctx, nil)
	assert.Error(t, err)
}

func TestEventResult_Fighters(t *testing.T) {
	mario := stagedomain.FighterID(1)
	r, ok := eventResult(testMatchID, matchdomain.FighterPicked{GameNumber: 1, Player: "amy", Blind: true})
	require.True(t, ok)
	assert.Nil(t, r.Payload.(matchevents.FighterPickedPayloadV1).Fighter)

	r, ok = eventResult(testMatchID, matchdomain.GameReady{GameNumber: 1, Stage: stagedomain.Battlefield, Player1Fighter: &mario})
	require.True(t, ok)
	ready := r.Payload.(matchevents.GameReadyPayloadV1)
	require.NotNil(t, ready.Player1Fighter)
	assert.Equal(t, 1, ready.Player1Fighter.ID)
	assert.Nil(t, ready.Player2Fighter)
}
