package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestLoanApplyPayment(t *testing.T) {
	loan := Loan{Type: "car", Principal: d("1000"), EMI: d("400"), RemainingBalance: d("1000")}

	for i := 0; i < 3; i++ {
		if err := loan.ApplyPayment(loan.EMI); err != nil {
			t.Fatalf("ApplyPayment() error = %v", err)
		}
	}

	if !loan.RemainingBalance.Equal(decimal.Zero) {
		t.Errorf("RemainingBalance = %s, want 0 (clamped)", loan.RemainingBalance)
	}
	if !loan.TotalPaid.Equal(d("1200")) {
		t.Errorf("TotalPaid = %s, want 1200", loan.TotalPaid)
	}
	if !loan.IsClosed() {
		t.Error("expected loan to be closed")
	}
	if err := loan.ApplyPayment(decimal.Zero); err == nil {
		t.Error("expected error for zero payment")
	}
}

func TestLoanDueDay(t *testing.T) {
	tests := []struct {
		due     string
		want    int
		wantErr bool
	}{
		{due: "5", want: 5},
		{due: "31", want: 31},
		{due: "0", wantErr: true},
		{due: "32", wantErr: true},
		{due: "fifth", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			loan := Loan{DueDate: tt.due}
			got, err := loan.DueDay()
			if (err != nil) != tt.wantErr {
				t.Fatalf("DueDay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DueDay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSavingsGoalContribute(t *testing.T) {
	goal := SavingsGoal{Name: "Laptop", TargetAmount: d("50000"), CurrentAmount: d("45000")}

	if err := goal.Contribute(d("4999")); err != nil {
		t.Fatal(err)
	}
	if goal.IsCompleted {
		t.Error("goal should not be complete below target")
	}
	if err := goal.Contribute(d("1")); err != nil {
		t.Fatal(err)
	}
	if !goal.IsCompleted {
		t.Error("goal should be complete at target")
	}
}

func TestSkillLogPractice(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	skill := Skill{Name: "Go", TimeSpentToday: 1, TotalHours: 10, LastUpdated: day1}

	if err := skill.LogPractice(2, day1.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if skill.TimeSpentToday != 3 || skill.TotalHours != 12 {
		t.Errorf("same day: today=%v total=%v, want 3 and 12", skill.TimeSpentToday, skill.TotalHours)
	}

	day2 := day1.AddDate(0, 0, 1)
	if err := skill.LogPractice(1.5, day2); err != nil {
		t.Fatal(err)
	}
	if skill.TimeSpentToday != 1.5 || skill.TotalHours != 13.5 {
		t.Errorf("next day: today=%v total=%v, want 1.5 and 13.5", skill.TimeSpentToday, skill.TotalHours)
	}
	if !skill.LastUpdated.Equal(day2) {
		t.Errorf("LastUpdated = %v, want %v", skill.LastUpdated, day2)
	}
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    DailyTask
		wantErr bool
	}{
		{name: "everyday", task: DailyTask{Title: "Read", IsEveryday: true}},
		{name: "dated", task: DailyTask{Title: "Ship", Date: "2026-01-15"}},
		{name: "range", task: DailyTask{Title: "Trip", StartDate: "2026-01-10", EndDate: "2026-01-12"}},
		{name: "empty title", task: DailyTask{}, wantErr: true},
		{name: "bad date", task: DailyTask{Title: "x", Date: "15/01/2026"}, wantErr: true},
		{name: "half range", task: DailyTask{Title: "x", StartDate: "2026-01-10"}, wantErr: true},
		{name: "inverted range", task: DailyTask{Title: "x", StartDate: "2026-01-12", EndDate: "2026-01-10"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.task.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeeklyReviewRequiresMonday(t *testing.T) {
	review := WeeklyReview{WeekStart: "2026-01-05"} // Monday
	if err := review.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	review.WeekStart = "2026-01-06"
	if err := review.Validate(); err == nil {
		t.Error("expected error for non-Monday week start")
	}
}

func TestInvestmentJSON(t *testing.T) {
	inv := Investment{
		ID:   "inv-1",
		Name: "Index fund",
		Asset: SIP{
			Fund:          "Nifty 50",
			MonthlyAmount: d("5000"),
			NextSipDate:   "2026-02-05",
		},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["type"] != "sip" {
		t.Errorf("type = %v, want sip", raw["type"])
	}

	var decoded Investment
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	sip, ok := decoded.Asset.(SIP)
	if !ok {
		t.Fatalf("Asset = %T, want SIP", decoded.Asset)
	}
	if !sip.MonthlyAmount.Equal(d("5000")) || sip.NextSipDate != "2026-02-05" {
		t.Errorf("decoded SIP = %+v", sip)
	}

	if err := json.Unmarshal([]byte(`{"id":"x","name":"y","type":"bonds"}`), &decoded); err == nil {
		t.Error("expected error for unknown investment type")
	}
}

func TestInvestmentMsgpack(t *testing.T) {
	invs := []Investment{
		{ID: "a", Name: "ACME", Asset: Stocks{Symbol: "ACME", Quantity: d("10"), BuyPrice: d("100"), CurrentPrice: d("150")}},
		{ID: "b", Name: "Flat", Asset: Property{BuyValue: d("5000000"), CurrentValue: d("6500000")}},
	}

	data, err := msgpack.Marshal(invs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded []Investment
	if err := msgpack.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d investments, want 2", len(decoded))
	}
	stocks, ok := decoded[0].Asset.(Stocks)
	if !ok || !stocks.CurrentPrice.Equal(d("150")) {
		t.Errorf("decoded[0].Asset = %#v", decoded[0].Asset)
	}
	if decoded[1].Kind() != KindProperty {
		t.Errorf("decoded[1].Kind() = %q, want property", decoded[1].Kind())
	}
}

func TestPriorityRank(t *testing.T) {
	if !PriorityHigh.AtLeast(PriorityMedium) {
		t.Error("high should be at least medium")
	}
	if PriorityLow.AtLeast(PriorityHigh) {
		t.Error("low should not be at least high")
	}
	if Priority("urgent").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should sort after low")
	}
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("urgent").Valid() || Priority("").Valid() {
		t.Error("unknown priorities should be invalid")
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	want := DefaultSettings()
	want.Timezone = "Asia/Kolkata"

	got, err := MapToSettings(SettingsToMap(want))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("MapToSettings(SettingsToMap()) = %+v, want %+v", got, want)
	}

	if _, err := MapToSettings(map[string]string{"backup_retention": "many"}); err == nil {
		t.Error("expected parse error for backup_retention")
	}
}
