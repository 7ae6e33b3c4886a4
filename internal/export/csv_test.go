package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"SplitSentinel/internal/model"
)

func sampleRecords() []model.DailyLedgerRecord {
	d1, _ := time.Parse("2006-01-02", "2024-01-02")
	d2, _ := time.Parse("2006-01-02", "2024-01-03")
	return []model.DailyLedgerRecord{
		{
			Date: d1, Close: 96, PrevClose: 100, ChangeRate: -4,
			Mode: model.ModeSafe,
			Actions: []model.DivisionAction{
				model.BuyAction{Division: 1, Quantity: 52, Price: 96, Amount: 4992,
					Commission: 2.3353, Reason: "buy: change -4.00% < target -3.00%"},
			},
			TotalBuyQuantity: 52, TotalCash: 5005.66, TotalHoldings: 52,
			TotalValue: 4992, TotalAssets: 9997.66, ReturnRate: -0.02, Drawdown: -0.02,
		},
		{
			Date: d2, Close: 97, PrevClose: 96, ChangeRate: 1.04,
			Mode: model.ModeSafe,
			Actions: []model.DivisionAction{
				model.SellAction{Division: 1, Quantity: 52, Price: 96.192, Amount: 5001.98,
					Commission: 2.3399, Profit: 5.31, ProfitRate: 0.11, TradingDaysHeld: 2,
					Reason: "LOC sell: limit $96.19 <= close $97.00 (+0.2%)"},
			},
			TotalSellQuantity: 52, TotalCash: 10005.31, TotalAssets: 10005.31,
			ReturnRate: 0.05, RebalanceDay: true, RebalanceAmount: 10005.31,
		},
	}
}

func TestWriteLedger(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteLedger(&buf, sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(ledgerHeader) {
		t.Errorf("header width %d, want %d", len(rows[0]), len(ledgerHeader))
	}
	if rows[1][0] != "2024-01-02" || rows[1][1] != "96.00" {
		t.Errorf("row 1 starts %v", rows[1][:2])
	}
	if rows[2][15] != "true" || rows[2][16] != "10005.31" {
		t.Errorf("rebalance columns %v / %v", rows[2][15], rows[2][16])
	}
}

func TestWriteActions(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteActions(&buf, sampleRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 action rows, got %d", len(rows))
	}
	if rows[1][2] != "BUY" || rows[1][3] != "52" {
		t.Errorf("buy row %v", rows[1])
	}
	if rows[2][2] != "SELL" || rows[2][4] != "96.19" {
		t.Errorf("sell row %v", rows[2])
	}
	if rows[2][10] != "2" {
		t.Errorf("days held column %q, want 2", rows[2][10])
	}
}
