package timetable

import (
	"errors"
	"testing"
	"time"
)

// Среда 4 декабря 2024, полдень по Москве
var testNow = time.Date(2024, 12, 4, 9, 0, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantWeekday int
		wantDays    int
		wantAnchor  string // ГГГГ-ММ-ДД, "" — без даты
	}{
		{"weekday number", "3", 2, 1, ""},
		{"weekday number monday", "1", 0, 1, ""},
		{"weekday number sunday", "7", 6, 1, ""},
		{"number wraps around week", "8", 0, 1, ""},
		{"positive offset", "+2", 4, 1, "2024-12-06"},
		{"negative offset resolves to tuesday", "-1", 1, 1, "2024-12-03"},
		{"date without year", "3.12", 1, 1, "2024-12-03"},
		{"date day only", "3.", 1, 1, "2024-12-03"},
		{"date with year", "1.1.2025", 2, 1, "2025-01-01"},
		{"named weekday", "пятница", 4, 1, ""},
		{"named weekday with case ending", "на пятницу", 4, 1, ""},
		{"named weekday wednesday", "среда", 2, 1, ""},
		{"today", "сегодня", 2, 1, "2024-12-04"},
		{"tomorrow", "на завтра", 3, 1, "2024-12-05"},
		{"day after tomorrow", "послезавтра", 4, 1, "2024-12-06"},
		{"yesterday", "вчера", 1, 1, "2024-12-03"},
		{"day before yesterday", "позавчера", 0, 1, "2024-12-02"},
		{"week", "на неделю", 2, 7, "2024-12-04"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Resolve(tc.text, testNow)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tc.text, err)
			}
			if res.WeekdayIndex != tc.wantWeekday {
				t.Errorf("WeekdayIndex = %d, want %d", res.WeekdayIndex, tc.wantWeekday)
			}
			if res.Days != tc.wantDays {
				t.Errorf("Days = %d, want %d", res.Days, tc.wantDays)
			}
			if tc.wantAnchor == "" {
				if res.Anchor != nil {
					t.Errorf("Anchor = %v, want nil", res.Anchor)
				}
				return
			}
			if res.Anchor == nil {
				t.Fatalf("Anchor = nil, want %s", tc.wantAnchor)
			}
			if got := res.Anchor.Format("2006-01-02"); got != tc.wantAnchor {
				t.Errorf("Anchor = %s, want %s", got, tc.wantAnchor)
			}
		})
	}
}

func TestResolve_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"arbitrary text", "привет"},
		{"weekday inside longer word", "пятницами"},
		{"relative word inside longer word", "незавтрашний"},
		{"three digit number", "123"},
		{"date with trailing text", "3.12 пары"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.text, testNow)
			if !errors.Is(err, ErrUnrecognized) {
				t.Errorf("Resolve(%q) error = %v, want ErrUnrecognized", tc.text, err)
			}
		})
	}
}

// Несуществующая дата — отдельная ошибка, не "запрос не распознан"
func TestResolve_InvalidDate(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"day 31 of 30-day month", "31.11"},
		{"day 30 of february", "30.2"},
		{"month 13", "5.13"},
		{"day zero", "0."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.text, testNow)
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("Resolve(%q) error = %v, want ErrInvalidDate", tc.text, err)
			}
			if errors.Is(err, ErrUnrecognized) {
				t.Error("ErrInvalidDate не должна совпадать с ErrUnrecognized")
			}
		})
	}
}

// "3" — номер дня недели, а не дата: частные правила стоят раньше общих
func TestResolve_NumberBeforeDate(t *testing.T) {
	res, err := Resolve("3", testNow)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.WeekdayIndex != 2 || res.Anchor != nil {
		t.Errorf("Resolve(\"3\") = %+v, want weekday 2 without anchor", res)
	}
}

// Сдвиг дня считается по московскому времени: поздним вечером UTC
// московский день уже следующий
func TestResolve_MoscowDayBoundary(t *testing.T) {
	lateNight := time.Date(2024, 12, 4, 21, 30, 0, 0, time.UTC) // Мск: четверг 00:30

	res, err := Resolve("сегодня", lateNight)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.WeekdayIndex != 3 {
		t.Errorf("WeekdayIndex = %d, want 3 (четверг)", res.WeekdayIndex)
	}
	if got := res.Anchor.Format("2006-01-02"); got != "2024-12-05" {
		t.Errorf("Anchor = %s, want 2024-12-05", got)
	}
}
