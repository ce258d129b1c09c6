package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/timetable"

	"github.com/xuri/excelize/v2"
)

// writeFixture пишет во временную папку файл расписания с шестью
// днями по семь пар и одной группой
func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetCellValue(sheet, "C2", "1-23а"); err != nil {
		t.Fatal(err)
	}
	weekdays := []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}
	for day := 0; day < 6; day++ {
		start := 3 + day*7
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", start), weekdays[day]); err != nil {
			t.Fatal(err)
		}
		for slot := 0; slot < 7; slot++ {
			cell := fmt.Sprintf("B%d", start+slot)
			if err := f.SetCellValue(sheet, cell, fmt.Sprintf("%d:30", 8+slot)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SetCellValue(sheet, "C3", "Математика"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "timetable.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

func newTestService(t *testing.T) *TimetableService {
	t.Helper()
	var mu sync.RWMutex
	return NewTimetableService(writeFixture(t), &mu, nil)
}

func TestGuess(t *testing.T) {
	s := newTestService(t)

	days, err := s.Guess("1-23а", "пятница", nil)
	if err != nil {
		t.Fatalf("Guess() error = %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("len(days) = %d, want 1", len(days))
	}
	if days[0].Weekday != "Пятница" {
		t.Errorf("Weekday = %q, want Пятница", days[0].Weekday)
	}
}

func TestGuess_Unrecognized(t *testing.T) {
	s := newTestService(t)

	_, err := s.Guess("1-23а", "что-то непонятное", nil)
	if !errors.Is(err, timetable.ErrUnrecognized) {
		t.Errorf("Guess() error = %v, want ErrUnrecognized", err)
	}
}

func TestGuess_GroupNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.Guess("9-99я", "пятница", nil)
	if !errors.Is(err, timetable.ErrGroupNotFound) {
		t.Errorf("Guess() error = %v, want ErrGroupNotFound", err)
	}
}

func TestRange_Week(t *testing.T) {
	s := newTestService(t)

	days, err := s.Range("1-23а", 0, 7, nil)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(days) != 7 {
		t.Errorf("len(days) = %d, want 7", len(days))
	}
}

func TestTryGroup(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name  string
		group string
		want  bool
	}{
		{"existing group", "1-23а", true},
		{"unknown group", "9-99я", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found, err := s.TryGroup(tc.group)
			if err != nil {
				t.Fatalf("TryGroup(%q) error = %v", tc.group, err)
			}
			if found != tc.want {
				t.Errorf("TryGroup(%q) = %v, want %v", tc.group, found, tc.want)
			}
		})
	}
}

// Ошибка чтения файла — не то же самое, что отсутствие группы
func TestExtractionIOFailure(t *testing.T) {
	var mu sync.RWMutex
	s := NewTimetableService(filepath.Join(t.TempDir(), "нет-такого.xlsx"), &mu, nil)

	_, err := s.Guess("1-23а", "пятница", nil)
	if err == nil {
		t.Fatal("Guess() error = nil, want error")
	}
	if errors.Is(err, timetable.ErrGroupNotFound) {
		t.Error("ошибка чтения файла не должна выглядеть как отсутствие группы")
	}
}

func TestGuessEverything(t *testing.T) {
	s := newTestService(t)
	user := &repository.User{ID: 1, Group: "1-23а"}

	t.Run("group from query", func(t *testing.T) {
		days, group, err := s.GuessEverything("1-23а на пятницу", nil)
		if err != nil {
			t.Fatalf("GuessEverything() error = %v", err)
		}
		if group != "1-23а" {
			t.Errorf("group = %q, want 1-23а", group)
		}
		if len(days) != 1 || days[0].Weekday != "Пятница" {
			t.Errorf("days = %+v, want одна пятница", days)
		}
	})

	t.Run("group from user", func(t *testing.T) {
		_, group, err := s.GuessEverything("среда", user)
		if err != nil {
			t.Fatalf("GuessEverything() error = %v", err)
		}
		if group != user.Group {
			t.Errorf("group = %q, want %q", group, user.Group)
		}
	})

	t.Run("no group at all", func(t *testing.T) {
		_, _, err := s.GuessEverything("среда", nil)
		if !errors.Is(err, timetable.ErrMissingGroup) {
			t.Errorf("GuessEverything() error = %v, want ErrMissingGroup", err)
		}
	})

	t.Run("bound group, unrecognized day", func(t *testing.T) {
		_, _, err := s.GuessEverything("что-то непонятное", user)
		if !errors.Is(err, timetable.ErrUnrecognized) {
			t.Errorf("GuessEverything() error = %v, want ErrUnrecognized", err)
		}
	})
}
