package notifier

import (
	"fmt"
	"strings"

	"SplitSentinel/internal/model"
	"SplitSentinel/internal/stats"
)

// FormatDailySignals renders today's proposals into a Telegram message.
func FormatDailySignals(rec model.DailyLedgerRecord, decision model.WeeklyModeDecision) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>SplitSentinel 시그널</b> | %s\n\n", rec.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("종가: $%.2f (%+.2f%%)\n", rec.Close, rec.ChangeRate))
	b.WriteString(fmt.Sprintf("모드: <b>%s</b>", modeLabel(rec.Mode)))
	if decision.HaveReadings {
		b.WriteString(fmt.Sprintf(" | %s", decision.Reason))
	}
	b.WriteString("\n\n")

	if len(rec.Actions) == 0 {
		b.WriteString("오늘 매매 신호 없음\n")
	} else {
		b.WriteString("📈 <b>오늘의 매매:</b>\n")
		for _, act := range rec.Actions {
			b.WriteString(fmt.Sprintf("  %s 분할%d: %s\n", actionEmoji(act.Kind()), act.DivisionNumber(), act.Describe()))
		}
	}
	b.WriteString("\n")

	b.WriteString("💼 <b>분할 현황:</b>\n")
	for _, d := range rec.Divisions {
		if d.Position == nil {
			b.WriteString(fmt.Sprintf("  분할%d: 대기 | 현금 $%.0f | 매수지정가 $%.2f\n",
				d.Number, d.Cash, d.BuyLimitPrice))
			continue
		}
		b.WriteString(fmt.Sprintf("  분할%d: 보유 %d주 @$%.2f (%+.1f%%) | %d거래일 | 매도지정가 $%.2f\n",
			d.Number, d.Position.Holdings, d.Position.AvgPrice, d.UnrealizedPLRate,
			d.TradingDaysHeld, d.SellLimitPrice))
	}

	b.WriteString(fmt.Sprintf("\n💰 총자산 $%.0f (누적 %+.2f%%)", rec.TotalAssets, rec.ReturnRate))
	if rec.RebalanceDay {
		b.WriteString(fmt.Sprintf("\n♻️ 재분할 실행: $%.0f", rec.RebalanceAmount))
	}
	return b.String()
}

// FormatWeeklyMode renders the weekly RSI mode decision.
func FormatWeeklyMode(decision model.WeeklyModeDecision) string {
	var b strings.Builder
	b.WriteString("📅 <b>주간 RSI 모드</b>\n\n")
	if !decision.HaveReadings {
		b.WriteString(decision.Reason + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("지지난주 RSI: %.1f (%s)\n", decision.PrevRSI, decision.PrevDate.Format("01-02")))
	b.WriteString(fmt.Sprintf("지난주 RSI: %.1f (%s)\n\n", decision.LastRSI, decision.LastDate.Format("01-02")))
	b.WriteString(fmt.Sprintf("이번주 모드: <b>%s</b>\n%s", modeLabel(decision.Mode), decision.Reason))
	return b.String()
}

// FormatRunSummary renders a backtest summary block.
func FormatRunSummary(symbol string, cfg model.SimulationConfig, sum stats.Summary, days int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧮 <b>백테스트</b> %s | %d일 | %d분할 | %s\n\n",
		symbol, days, cfg.Divisions, modeLabel(cfg.Mode)))
	b.WriteString(fmt.Sprintf("최종 수익률: %+.2f%%\n", sum.FinalReturn))
	b.WriteString(fmt.Sprintf("최대 낙폭: %.2f%%\n", sum.MaxDrawdown))
	b.WriteString(fmt.Sprintf("거래: %d (매수 %d / 매도 %d / 손절 %d)\n",
		sum.TotalTrades, sum.BuyTrades, sum.SellTrades, sum.StopLosses))
	b.WriteString(fmt.Sprintf("승률: %.1f%% | 평균익 $%.2f | 평균손 $%.2f\n", sum.WinRate, sum.AvgWin, sum.AvgLoss))
	b.WriteString(fmt.Sprintf("수수료 합계: $%.2f | 샤프: %.2f", sum.TotalCommission, sum.SharpeRatio))
	return b.String()
}

func modeLabel(m model.Mode) string {
	switch m {
	case model.ModeSafe:
		return "안전모드"
	case model.ModeAggressive:
		return "공세모드"
	default:
		return string(m)
	}
}

func actionEmoji(k model.ActionKind) string {
	switch k {
	case model.ActionBuy:
		return "🟢"
	case model.ActionSell:
		return "🔴"
	case model.ActionStopLoss:
		return "⛔"
	default:
		return "⚪"
	}
}
