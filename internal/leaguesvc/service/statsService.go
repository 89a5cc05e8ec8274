package service

import (
	"context"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/pokernight/league-services/internal/leaguesvc/models"
)

// StatsService computes the league dashboards and leaderboards. Reads are
// independent of each other; when assembling a combined payload a failed
// board is logged and left empty instead of failing the whole response.
type StatsService struct {
	statsStore StatsStore
}

func NewStatsService(statsStore StatsStore) *StatsService {
	return &StatsService{statsStore: statsStore}
}

const leaderboardLimit = 10

// timeWindow converts an optional calendar-year bound into a [from, to)
// range over game start times. Year 0 means unbounded.
func timeWindow(year int) (time.Time, time.Time) {
	if year <= 0 {
		return time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

// monthWindow is the [from, to) range of the current calendar month.
func monthWindow(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}

// GetLeagueStats builds the league dashboard. A league with no results
// yet gets the zero-valued defaults (duration 0, "N/A" leader entries)
// instead of an error.
func (s *StatsService) GetLeagueStats(ctx context.Context, leagueID int64, year int) (*models.LeagueStats, error) {
	from, to := timeWindow(year)

	totals, err := s.statsStore.GetLeagueTotals(ctx, leagueID, from, to)
	if err != nil {
		return nil, err
	}

	out := &models.LeagueStats{
		TotalGames:          totals.TotalGames,
		ActiveGames:         totals.ActiveGames,
		CompletedGames:      totals.CompletedGames,
		TotalPlayers:        totals.TotalPlayers,
		TotalBuyIns:         totals.TotalBuyIns,
		TotalBuyOuts:        totals.TotalBuyOuts,
		TotalProfit:         totals.TotalBuyOuts.Sub(totals.TotalBuyIns),
		AverageGameDuration: totals.AverageGameDuration,
		MostProfitablePlayer: models.PlayerProfit{Name: "N/A", Profit: decimal.Zero},
		MostActivePlayer:     models.PlayerActivity{Name: "N/A"},
	}

	if top, err := s.statsStore.TopProfit(ctx, leagueID, from, to, 1); err != nil {
		log.Warnf("league %d: top profit query failed: %v", leagueID, err)
	} else if len(top) > 0 {
		out.MostProfitablePlayer = top[0]
	}

	if active, err := s.statsStore.MostActive(ctx, leagueID, from, to, 1); err != nil {
		log.Warnf("league %d: most active query failed: %v", leagueID, err)
	} else if len(active) > 0 {
		out.MostActivePlayer = active[0]
	}

	return out, nil
}

// GetLeaderboards assembles every board for a league. Boards are ordered
// best-first; a failed board is logged and returned empty so the rest of
// the payload still renders.
func (s *StatsService) GetLeaderboards(ctx context.Context, leagueID int64, year int) (*models.Leaderboards, error) {
	from, to := timeWindow(year)
	now := time.Now()

	boards := &models.Leaderboards{GeneratedAt: now}

	var err error
	if boards.TopProfit, err = s.statsStore.TopProfit(ctx, leagueID, from, to, leaderboardLimit); err != nil {
		log.Warnf("league %d: top profit board failed: %v", leagueID, err)
	}
	if boards.MostActive, err = s.statsStore.MostActive(ctx, leagueID, from, to, leaderboardLimit); err != nil {
		log.Warnf("league %d: most active board failed: %v", leagueID, err)
	}
	if boards.HighestGameProfit, err = s.statsStore.HighestGameProfit(ctx, leagueID, from, to, leaderboardLimit); err != nil {
		log.Warnf("league %d: highest game profit board failed: %v", leagueID, err)
	}

	monthFrom, monthTo := monthWindow(now)
	if boards.MonthlyLeaders, err = s.statsStore.TopProfit(ctx, leagueID, monthFrom, monthTo, leaderboardLimit); err != nil {
		log.Warnf("league %d: monthly leader board failed: %v", leagueID, err)
	}

	seqs, err := s.statsStore.PlayerProfitSequences(ctx, leagueID, from, to)
	if err != nil {
		log.Warnf("league %d: profit sequences failed: %v", leagueID, err)
		return boards, nil
	}
	boards.BestStreaks = bestStreaks(seqs, leaderboardLimit)
	boards.MostConsistent = mostConsistent(seqs, leaderboardLimit)

	return boards, nil
}

// bestWinningStreak is the longest run of consecutive positive-profit
// games in a date-ordered sequence.
func bestWinningStreak(profits []decimal.Decimal) int {
	best, run := 0, 0
	for _, p := range profits {
		if p.IsPositive() {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

func bestStreaks(seqs []*models.ProfitSequence, limit int) []models.StreakEntry {
	entries := make([]models.StreakEntry, 0, len(seqs))
	for _, seq := range seqs {
		streak := bestWinningStreak(seq.Profits)
		if streak == 0 {
			continue
		}
		entries = append(entries, models.StreakEntry{
			UserID:   seq.UserID,
			Name:     seq.Name,
			ImageURL: seq.ImageURL,
			Streak:   streak,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Streak > entries[j].Streak })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// mostConsistent ranks by the standard deviation of per-game profit,
// lowest first. Fewer than two cashed-out games is not a measurable
// spread, so such players are skipped.
func mostConsistent(seqs []*models.ProfitSequence, limit int) []models.ConsistencyEntry {
	entries := make([]models.ConsistencyEntry, 0, len(seqs))
	for _, seq := range seqs {
		if len(seq.Profits) < 2 {
			continue
		}

		data := make([]float64, len(seq.Profits))
		for i, p := range seq.Profits {
			data[i], _ = p.Float64()
		}

		sd, err := stats.StandardDeviation(data)
		if err != nil {
			continue
		}

		entries = append(entries, models.ConsistencyEntry{
			UserID:      seq.UserID,
			Name:        seq.Name,
			ImageURL:    seq.ImageURL,
			GamesPlayed: len(seq.Profits),
			StdDev:      sd,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].StdDev < entries[j].StdDev })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
