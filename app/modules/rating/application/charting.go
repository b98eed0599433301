package ratingservice

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	ratingdomain "github.com/Black-And-White-Club/ssbu-bot/app/modules/rating/domain"
	"github.com/Black-And-White-Club/ssbu-bot/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors of the rating history chart.
type ChartPalette struct {
	Background drawing.Color
	Line       drawing.Color
	Band       drawing.Color
	Dot        drawing.Color
	Text       drawing.Color
}

// DefaultChartPalette matches a dark chat client theme.
var DefaultChartPalette = ChartPalette{
	Background: drawing.ColorFromHex("2b2d31"),
	Line:       drawing.ColorFromHex("5865f2"),
	Band:       drawing.ColorFromHex("949cf7"),
	Dot:        drawing.ColorFromHex("fee75c"),
	Text:       drawing.ColorFromHex("dbdee1"),
}

// RenderHistoryChart draws the player's rating after every rated match as a
// PNG. Players without rated matches get a placeholder image.
func (s *RatingService) RenderHistoryChart(ctx context.Context, guildID sharedtypes.GuildID, playerID sharedtypes.PlayerID, scope ratingdomain.Scope) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "RenderHistoryChart", string(guildID)+"/"+string(playerID), func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		if err := validatePlayer(guildID, playerID); err != nil {
			return results.FailureResult[[]byte, error](err), nil
		}
		history, err := s.loadHistory(ctx, ladderKey(guildID, playerID, scope))
		if err != nil {
			return results.OperationResult[[]byte, error]{}, err
		}
		png, err := GenerateRatingHistoryChart(history, DefaultChartPalette)
		if err != nil {
			return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render chart: %w", err)
		}
		return results.SuccessResult[[]byte, error](png), nil
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

// GenerateRatingHistoryChart plots rating against match number, with the
// deviation drawn as a band around it. Point 0 is the rating before the
// first match.
func GenerateRatingHistoryChart(history []HistoryPoint, palette ChartPalette) ([]byte, error) {
	if len(history) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	n := len(history) + 1
	xValues := make([]float64, n)
	mu := make([]float64, n)
	upper := make([]float64, n)
	lower := make([]float64, n)

	points := make([]ratingdomain.Rating, 0, n)
	points = append(points, history[0].Before)
	for _, h := range history {
		points = append(points, h.After)
	}

	lo, hi := points[0].Mu-points[0].Phi, points[0].Mu+points[0].Phi
	for i, r := range points {
		xValues[i] = float64(i)
		mu[i] = r.Mu
		upper[i] = r.Mu + r.Phi
		lower[i] = r.Mu - r.Phi
		lo = min(lo, lower[i])
		hi = max(hi, upper[i])
	}

	band := chart.Style{
		StrokeColor:     palette.Band,
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Match",
			ValueFormatter: matchNumberFormatter,
			Style: chart.Style{
				FontColor: palette.Text,
			},
		},
		YAxis: chart.YAxis{
			Name: "Rating",
			Style: chart.Style{
				FontColor: palette.Text,
			},
			Range: &chart.ContinuousRange{
				Min: lo - 25,
				Max: hi + 25,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Upper", XValues: xValues, YValues: upper, Style: band},
			chart.ContinuousSeries{Name: "Lower", XValues: xValues, YValues: lower, Style: band},
			chart.ContinuousSeries{
				Name:    "Rating",
				XValues: xValues,
				YValues: mu,
				Style: chart.Style{
					StrokeColor: palette.Line,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    palette.Dot,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func matchNumberFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(f))
	}
	return ""
}

// renderNoDataPlaceholder draws the message straight onto a raster canvas;
// a chart without series refuses to render.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No rated matches yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
