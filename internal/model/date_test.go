package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_AddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		from   Date
		months int
		want   Date
	}{
		{NewDate(2024, time.March, 31), -1, NewDate(2024, time.February, 29)},
		{NewDate(2023, time.March, 31), -1, NewDate(2023, time.February, 28)},
		{NewDate(2024, time.May, 15), -3, NewDate(2024, time.February, 15)},
		{NewDate(2024, time.January, 31), -6, NewDate(2023, time.July, 31)},
		{NewDate(2024, time.August, 31), -6, NewDate(2024, time.February, 29)},
	}
	for _, tt := range tests {
		if got := tt.from.AddMonths(tt.months); got != tt.want {
			t.Errorf("%s %+d months: expected %s, got %s", tt.from, tt.months, tt.want, got)
		}
	}
}

func TestDate_DateOfIgnoresTimeOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	late := time.Date(2024, time.June, 3, 23, 30, 0, 0, ny)
	if got := DateOf(late); got != NewDate(2024, time.June, 3) {
		t.Errorf("expected 2024-06-03, got %s", got)
	}
	if DateOf(late.UTC()) != NewDate(2024, time.June, 4) {
		t.Error("expected the UTC view of the same instant to fall on the next day")
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.June, 3)
	b := a.AddDays(1)
	if !a.Before(b) || !b.After(a) || a.After(b) {
		t.Errorf("ordering broken for %s and %s", a, b)
	}
	if a.AddDays(-3).String() != "2024-05-31" {
		t.Errorf("unexpected AddDays result %s", a.AddDays(-3))
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-02-29"` {
		t.Fatalf("unexpected encoding %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("expected %s, got %s", d, back)
	}
}

func TestWindow_Cutoff(t *testing.T) {
	today := NewDate(2024, time.March, 31)
	if got := (Window{Name: "1M", Months: 1}).Cutoff(today); got != NewDate(2024, time.February, 29) {
		t.Errorf("1M cutoff: got %s", got)
	}
	if got := (Window{Name: "90D", Days: 90}).Cutoff(today); got != NewDate(2024, time.January, 1) {
		t.Errorf("90D cutoff: got %s", got)
	}
	if s := (Window{Months: 3}).Span(); s != "3 months" {
		t.Errorf("unexpected span %q", s)
	}
}

func TestMetric_StringAndJSON(t *testing.T) {
	if Absent().String() != "N/A" {
		t.Error("absent metric should print N/A")
	}
	if Present(-6).String() != "-6.00" {
		t.Errorf("unexpected %q", Present(-6).String())
	}
	data, _ := json.Marshal([]Metric{Present(1.5), Absent()})
	if string(data) != "[1.5,null]" {
		t.Errorf("unexpected encoding %s", data)
	}
}
