package stats

import (
	"context"

	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/settings"
	"github.com/pocketledger/pocketledger/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

const trendDays = 7

type StatsService interface {
	GetSummary(ctx context.Context) (Summary, error)
}

type StatsServiceImpl struct {
	txRepo          transaction.Repository
	settingsService settings.Service
	clock           utils.Clock
}

func NewStatsServiceImpl(txRepo transaction.Repository, settingsService settings.Service) *StatsServiceImpl {
	return &StatsServiceImpl{
		txRepo:          txRepo,
		settingsService: settingsService,
		clock:           &utils.SystemClock{},
	}
}

// GetSummary recomputes every aggregate from the full collection. There is no
// caching; the collection is small and the derivations are cheap.
func (s *StatsServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	txs, err := s.txRepo.LoadAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	prefs, err := s.settingsService.Get(ctx)
	if err != nil {
		return Summary{}, err
	}
	log.Tracef("Computing summary over %d transactions", len(txs))

	now := s.clock.Now()
	monthlySpend := ComputeMonthlySpend(txs, now.Year(), now.Month())
	target, _ := prefs.TargetValue()
	daily := ComputeDailySeries(txs, now, trendDays)

	return Summary{
		Balance:      ComputeBalance(txs),
		MonthlySpend: monthlySpend,
		Budget:       ComputeBudgetStatus(monthlySpend, target),
		TopCategory:  ComputeTopCategory(txs),
		Daily:        daily,
		ChartScale:   ChartScale(daily),
		Currency:     prefs.Currency,
	}, nil
}
