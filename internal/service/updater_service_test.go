package service

import (
	"sync"
	"testing"
	"time"
)

// Московский час = UTC + 3
func mskHour(hour int) time.Time {
	return time.Date(2024, 12, 4, hour-3, 0, 0, 0, time.UTC)
}

func TestUpdaterDue(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		elapsed time.Duration
		want    bool
	}{
		{"night, just updated", mskHour(3), time.Minute, false},
		{"night, two hours passed", mskHour(3), 2 * time.Hour, false},
		{"night, three hours passed", mskHour(3), 3 * time.Hour, true},
		{"work hours, four minutes passed", mskHour(12), 4 * time.Minute, false},
		{"work hours, five minutes passed", mskHour(12), 5 * time.Minute, true},
		{"start of work band", mskHour(7), 5 * time.Minute, true},
		{"evening, ten minutes passed", mskHour(20), 10 * time.Minute, false},
		{"evening, half hour passed", mskHour(20), 30 * time.Minute, true},
		{"start of evening band", mskHour(18), 10 * time.Minute, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var mu sync.RWMutex
			u := NewUpdaterService("timetable.xlsx", &mu, nil)
			u.recordSuccess(tc.now.Add(-tc.elapsed))

			if got := u.Due(tc.now); got != tc.want {
				t.Errorf("Due() = %v, want %v", got, tc.want)
			}
		})
	}
}

// Пока не было ни одного обновления, оно пора в любой час
func TestUpdaterDue_NeverUpdated(t *testing.T) {
	var mu sync.RWMutex
	u := NewUpdaterService("timetable.xlsx", &mu, nil)

	for _, hour := range []int{3, 12, 20} {
		if !u.Due(mskHour(hour)) {
			t.Errorf("Due(%d час) = false, want true", hour)
		}
	}
}

func TestExportURL(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "edit link with fragment",
			link: "https://docs.google.com/spreadsheets/d/ABC123/edit#gid=0",
			want: "https://docs.google.com/spreadsheets/d/ABC123/export?format=xlsx",
		},
		{
			name: "bare document link",
			link: "https://docs.google.com/spreadsheets/d/ABC123",
			want: "https://docs.google.com/spreadsheets/d/ABC123/export?format=xlsx",
		},
		{
			name: "query is replaced",
			link: "https://docs.google.com/spreadsheets/d/ABC123/edit?usp=sharing",
			want: "https://docs.google.com/spreadsheets/d/ABC123/export?format=xlsx",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := exportURL(tc.link)
			if err != nil {
				t.Fatalf("exportURL(%q) error = %v", tc.link, err)
			}
			if got != tc.want {
				t.Errorf("exportURL(%q) = %q, want %q", tc.link, got, tc.want)
			}
		})
	}
}
