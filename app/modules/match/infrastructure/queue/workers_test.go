package matchqueue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	stagedomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/stage/domain"
	matchevents "github.com/Black-And-White-Club/ssbu-bot/app/shared/events/match"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topics []string
	msgs   []*message.Message
	err    error
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.topics = append(p.topics, topic)
		p.msgs = append(p.msgs, m)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSuggestionTimeoutWorker(t *testing.T) {
	pub := &recordingPublisher{}
	w := NewSuggestionTimeoutWorker(discardLogger(), pub)
	matchID := uuid.New()

	err := w.Work(context.Background(), &river.Job[SuggestionTimeoutJob]{
		JobRow: &rivertype.JobRow{ID: 7},
		Args: SuggestionTimeoutJob{
			MatchID:     matchID,
			GameNumber:  2,
			Seq:         4,
			SuggestedBy: "amy",
			StageID:     int(stagedomain.Smashville),
		},
	})
	require.NoError(t, err)

	require.Equal(t, []string{matchevents.SuggestionTimeoutV1}, pub.topics)
	var got matchevents.SuggestionTimeoutPayloadV1
	require.NoError(t, json.Unmarshal(pub.msgs[0].Payload, &got))
	assert.Equal(t, matchevents.SuggestionTimeoutPayloadV1{
		MatchID:     matchID,
		GameNumber:  2,
		Seq:         4,
		SuggestedBy: "amy",
		StageID:     int(stagedomain.Smashville),
	}, got)
	assert.Equal(t, matchevents.SuggestionTimeoutV1, pub.msgs[0].Metadata.Get("topic"))
}

func TestConfirmationTimeoutWorker(t *testing.T) {
	t.Run("publishes the timeout", func(t *testing.T) {
		pub := &recordingPublisher{}
		w := NewConfirmationTimeoutWorker(discardLogger(), pub)
		matchID := uuid.New()

		err := w.Work(context.Background(), &river.Job[ConfirmationTimeoutJob]{
			JobRow: &rivertype.JobRow{ID: 8},
			Args: ConfirmationTimeoutJob{
				MatchID:             matchID,
				GameNumber:          1,
				Seq:                 2,
				ClaimedWinner:       "amy",
				NeedsConfirmationBy: "ben",
			},
		})
		require.NoError(t, err)

		require.Equal(t, []string{matchevents.ConfirmationTimeoutV1}, pub.topics)
		var got matchevents.ConfirmationTimeoutPayloadV1
		require.NoError(t, json.Unmarshal(pub.msgs[0].Payload, &got))
		assert.Equal(t, matchID, got.MatchID)
		assert.EqualValues(t, "ben", got.NeedsConfirmationBy)
		assert.Equal(t, 2, got.Seq)
	})

	t.Run("publish error fails the job so River retries it", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("nats down")}
		w := NewConfirmationTimeoutWorker(discardLogger(), pub)

		err := w.Work(context.Background(), &river.Job[ConfirmationTimeoutJob]{
			JobRow: &rivertype.JobRow{ID: 9},
			Args:   ConfirmationTimeoutJob{MatchID: uuid.New(), GameNumber: 1},
		})
		assert.Error(t, err)
	})
}

func TestJobArgs(t *testing.T) {
	s := SuggestionTimeoutJob{MatchID: uuid.New(), GameNumber: 3, Seq: 5, SuggestedBy: "amy", StageID: int(stagedomain.Battlefield)}
	assert.Equal(t, "match_suggestion_timeout", s.Kind())
	assert.Equal(t, stagedomain.Battlefield, s.Timeout().Stage)
	assert.Equal(t, 5, s.Timeout().Seq)
	assert.Equal(t, s.MatchID, s.Timeout().MatchID)

	c := ConfirmationTimeoutJob{MatchID: uuid.New(), GameNumber: 2, Seq: 1, ClaimedWinner: "ben", NeedsConfirmationBy: "amy"}
	assert.Equal(t, "match_confirmation_timeout", c.Kind())
	assert.EqualValues(t, "amy", c.Timeout().NeedsConfirmationBy)

	// match_id is what CancelMatchJobs filters on
	body, err := json.Marshal(c)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, c.MatchID.String(), raw["match_id"])
	assert.EqualValues(t, 1, raw["seq"])
}
