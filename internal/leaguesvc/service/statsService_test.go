package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
	"github.com/pokernight/league-services/internal/leaguesvc/store"
)

func decs(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i], _ = decimal.NewFromString(v)
	}
	return out
}

func TestGetLeagueStats_EmptyLeagueDefaults(t *testing.T) {
	statsStore := new(MockStatsStore)
	statsStore.On("GetLeagueTotals", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(&store.LeagueTotals{
			TotalBuyIns:  decimal.Zero,
			TotalBuyOuts: decimal.Zero,
		}, nil)
	statsStore.On("TopProfit", mock.Anything, int64(1), mock.Anything, mock.Anything, 1).
		Return([]models.PlayerProfit{}, nil)
	statsStore.On("MostActive", mock.Anything, int64(1), mock.Anything, mock.Anything, 1).
		Return([]models.PlayerActivity{}, nil)

	svc := NewStatsService(statsStore)
	out, err := svc.GetLeagueStats(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, out.AverageGameDuration)
	assert.Equal(t, "N/A", out.MostProfitablePlayer.Name)
	assert.True(t, out.MostProfitablePlayer.Profit.IsZero())
	assert.Equal(t, "N/A", out.MostActivePlayer.Name)
	assert.True(t, out.TotalProfit.IsZero())
}

func TestGetLeagueStats_TotalProfitIsOutsMinusIns(t *testing.T) {
	statsStore := new(MockStatsStore)
	statsStore.On("GetLeagueTotals", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(&store.LeagueTotals{
			TotalGames:          4,
			CompletedGames:      3,
			ActiveGames:         1,
			TotalPlayers:        6,
			TotalBuyIns:         decs("600")[0],
			TotalBuyOuts:        decs("580")[0],
			AverageGameDuration: 95,
		}, nil)
	statsStore.On("TopProfit", mock.Anything, int64(1), mock.Anything, mock.Anything, 1).
		Return([]models.PlayerProfit{{UserID: 10, Name: "Ada", Profit: decs("120")[0]}}, nil)
	statsStore.On("MostActive", mock.Anything, int64(1), mock.Anything, mock.Anything, 1).
		Return([]models.PlayerActivity{{UserID: 11, Name: "Ben", GamesPlayed: 4}}, nil)

	svc := NewStatsService(statsStore)
	out, err := svc.GetLeagueStats(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.True(t, out.TotalProfit.Equal(decs("-20")[0]), "580-600 should be -20, got %s", out.TotalProfit)
	assert.Equal(t, "Ada", out.MostProfitablePlayer.Name)
	assert.Equal(t, 4, out.MostActivePlayer.GamesPlayed)
	assert.Equal(t, 95, out.AverageGameDuration)
}

// a failed leaderboard read must not take the others down with it
func TestGetLeaderboards_IndependentBoardFailures(t *testing.T) {
	statsStore := new(MockStatsStore)
	statsStore.On("TopProfit", mock.Anything, int64(1), mock.Anything, mock.Anything, leaderboardLimit).
		Return(nil, errors.New("query timeout"))
	statsStore.On("MostActive", mock.Anything, int64(1), mock.Anything, mock.Anything, leaderboardLimit).
		Return([]models.PlayerActivity{{UserID: 11, Name: "Ben", GamesPlayed: 4}}, nil)
	statsStore.On("HighestGameProfit", mock.Anything, int64(1), mock.Anything, mock.Anything, leaderboardLimit).
		Return([]models.PlayerProfit{{UserID: 10, Name: "Ada", Profit: decs("80")[0]}}, nil)
	statsStore.On("PlayerProfitSequences", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return([]*models.ProfitSequence{}, nil)

	svc := NewStatsService(statsStore)
	boards, err := svc.GetLeaderboards(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Empty(t, boards.TopProfit)
	require.Len(t, boards.MostActive, 1)
	require.Len(t, boards.HighestGameProfit, 1)
}

func TestBestWinningStreak(t *testing.T) {
	cases := []struct {
		name    string
		profits []decimal.Decimal
		want    int
	}{
		{"empty", nil, 0},
		{"all losses", decs("-10", "-5"), 0},
		{"single win", decs("-10", "20", "-5"), 1},
		{"run in the middle", decs("-1", "5", "10", "2", "-3", "4"), 3},
		{"zero breaks the run", decs("5", "0", "5", "5"), 2},
		{"all wins", decs("1", "2", "3", "4"), 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, bestWinningStreak(tc.profits))
		})
	}
}

func TestBestStreaks_RanksAndSkipsWinless(t *testing.T) {
	seqs := []*models.ProfitSequence{
		{UserID: 1, Name: "Ada", Profits: decs("5", "5", "5")},
		{UserID: 2, Name: "Ben", Profits: decs("-5", "-5")},
		{UserID: 3, Name: "Cleo", Profits: decs("5", "-1", "5", "5")},
	}

	out := bestStreaks(seqs, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "Ada", out[0].Name)
	assert.Equal(t, 3, out[0].Streak)
	assert.Equal(t, "Cleo", out[1].Name)
	assert.Equal(t, 2, out[1].Streak)
}

func TestMostConsistent_LowestSpreadFirst(t *testing.T) {
	seqs := []*models.ProfitSequence{
		{UserID: 1, Name: "Steady", Profits: decs("10", "10", "10")},
		{UserID: 2, Name: "Swingy", Profits: decs("100", "-100", "50")},
		{UserID: 3, Name: "One-timer", Profits: decs("500")}, // skipped, one game
	}

	out := mostConsistent(seqs, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "Steady", out[0].Name)
	assert.InDelta(t, 0, out[0].StdDev, 1e-9)
	assert.Equal(t, "Swingy", out[1].Name)
	assert.Greater(t, out[1].StdDev, 0.0)
	assert.False(t, math.IsNaN(out[1].StdDev))
}
