package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"SplitSentinel/internal/calculator"
	"SplitSentinel/internal/collector"
	"SplitSentinel/internal/engine"
	"SplitSentinel/internal/mode"
	"SplitSentinel/internal/model"
	"SplitSentinel/internal/notifier"
	"SplitSentinel/internal/recorder"
)

// Scheduler runs the daily signal check and the weekly mode report on cron.
type Scheduler struct {
	Cron     *cron.Cron
	Fetcher  collector.Fetcher
	Symbol   string
	Lookback int
	SimCfg   model.SimulationConfig
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, fetcher collector.Fetcher, symbol string, lookback int, simCfg model.SimulationConfig, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Fetcher:  fetcher,
		Symbol:   symbol,
		Lookback: lookback,
		SimCfg:   simCfg,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily and weekly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

// dailyTask replays the fetched history up to today and reports the final
// day's record. The replay is stateless: the same history always produces
// the same signals.
func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily signal check")

	rec, decision, err := s.evaluate()
	if err != nil {
		log.Printf("[ERROR] daily evaluate: %v", err)
		s.trySend(fmt.Sprintf("❌ 일일 시그널 계산 실패: %v", err))
		return
	}

	s.trySend(notifier.FormatDailySignals(rec, decision))

	var buys, sells int
	for _, act := range rec.Actions {
		switch act.Kind() {
		case model.ActionBuy:
			buys++
		case model.ActionSell, model.ActionStopLoss:
			sells++
		}
	}
	if err := s.Recorder.RecordSignal(&recorder.SignalEvent{
		Date:        rec.Date,
		Mode:        rec.Mode,
		ModeReason:  decision.Reason,
		Close:       rec.Close,
		PrevClose:   rec.PrevClose,
		BuySignals:  buys,
		SellSignals: sells,
		Detail:      actionDetail(rec.Actions),
	}); err != nil {
		log.Printf("[ERROR] record signal: %v", err)
	}
}

func (s *Scheduler) weeklyTask() {
	log.Println("[INFO] running weekly mode report")

	points, err := s.fetchSeries()
	if err != nil {
		log.Printf("[ERROR] weekly fetch: %v", err)
		s.trySend(fmt.Sprintf("❌ 주간 리포트 데이터 수집 실패: %v", err))
		return
	}
	decision, err := mode.WeeklyDecision(points, calculator.DefaultRSIPeriod)
	if err != nil {
		log.Printf("[ERROR] weekly decision: %v", err)
		return
	}
	s.trySend(notifier.FormatWeeklyMode(decision))
}

func (s *Scheduler) fetchSeries() ([]model.PricePoint, error) {
	points, err := s.Fetcher.FetchDailyCloses(s.Symbol, s.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch closes: %w", err)
	}
	if err := collector.ValidateSeries(points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *Scheduler) evaluate() (model.DailyLedgerRecord, model.WeeklyModeDecision, error) {
	points, err := s.fetchSeries()
	if err != nil {
		return model.DailyLedgerRecord{}, model.WeeklyModeDecision{}, err
	}

	var modes map[string]model.Mode
	if s.SimCfg.Mode == model.ModeAuto {
		if modes, err = mode.BuildModeMap(points, calculator.DefaultRSIPeriod); err != nil {
			return model.DailyLedgerRecord{}, model.WeeklyModeDecision{}, err
		}
	}

	records, err := engine.Run(points, s.SimCfg, modes)
	if err != nil {
		return model.DailyLedgerRecord{}, model.WeeklyModeDecision{}, err
	}
	if len(records) == 0 {
		return model.DailyLedgerRecord{}, model.WeeklyModeDecision{}, fmt.Errorf("no ledger records produced")
	}

	decision, err := mode.WeeklyDecision(points, calculator.DefaultRSIPeriod)
	if err != nil {
		return model.DailyLedgerRecord{}, model.WeeklyModeDecision{}, err
	}
	return records[len(records)-1], decision, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/signal", "시그널":
		s.dailyTask()
		return ""
	case "/mode", "모드":
		points, err := s.fetchSeries()
		if err != nil {
			return fmt.Sprintf("데이터 수집 실패: %v", err)
		}
		decision, err := mode.WeeklyDecision(points, calculator.DefaultRSIPeriod)
		if err != nil {
			return fmt.Sprintf("모드 계산 실패: %v", err)
		}
		return notifier.FormatWeeklyMode(decision)
	default:
		return "사용 가능한 명령:\n• /signal - 오늘 시그널\n• /mode - 주간 RSI 모드"
	}
}

func actionDetail(actions []model.DivisionAction) string {
	detail := ""
	for i, a := range actions {
		if i > 0 {
			detail += "; "
		}
		detail += fmt.Sprintf("div%d %s", a.DivisionNumber(), a.Describe())
	}
	return detail
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
