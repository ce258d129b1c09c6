package service

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/timetable"
)

// TimetableService отвечает на запросы расписания. Файл расписания
// перечитывается на каждый запрос под читающей блокировкой, чтобы не
// попасть на момент его перезаписи обновлением.
type TimetableService struct {
	file     string
	mu       *sync.RWMutex
	settings *repository.SettingsRepository
}

// NewTimetableService создаёт сервис расписания. mu должен быть тем же
// замком, которым сервис обновления защищает перезапись файла.
func NewTimetableService(file string, mu *sync.RWMutex, settings *repository.SettingsRepository) *TimetableService {
	return &TimetableService{file: file, mu: mu, settings: settings}
}

// extract достаёт расписание группы из файла под читающей блокировкой
func (s *TimetableService) extract(group string) (*timetable.Timetable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return timetable.ExtractFromFile(s.file, group)
}

// weekCountStart читает дату начала отсчёта недель; её отсутствие
// не мешает отвечать, просто номера недель не показываются
func (s *TimetableService) weekCountStart() *time.Time {
	if s.settings == nil {
		return nil
	}
	start, err := s.settings.GetWeekCountStart()
	if err != nil {
		log.Printf("Ошибка чтения даты начала отсчёта недель: %v", err)
		return nil
	}
	return start
}

// DaysFor отвечает на уже разобранный запрос
func (s *TimetableService) DaysFor(group string, res timetable.Resolution, phrases []string) ([]timetable.RenderedDay, error) {
	tt, err := s.extract(group)
	if err != nil {
		return nil, err
	}
	return timetable.Materialize(tt, res, group, phrases, s.weekCountStart()), nil
}

// Range отвечает на запрос "days дней, начиная со сдвига offset
// от сегодняшнего"
func (s *TimetableService) Range(group string, offset, days int, phrases []string) ([]timetable.RenderedDay, error) {
	return s.DaysFor(group, timetable.FromOffset(time.Now(), offset, days), phrases)
}

// Guess разбирает свободный текст запроса и отвечает на него
func (s *TimetableService) Guess(group, text string, phrases []string) ([]timetable.RenderedDay, error) {
	res, err := timetable.Resolve(strings.TrimSpace(text), time.Now())
	if err != nil {
		return nil, err
	}
	return s.DaysFor(group, res, phrases)
}

// TryGroup проверяет, что группа есть в расписании
func (s *TimetableService) TryGroup(group string) (bool, error) {
	_, err := s.extract(group)
	if errors.Is(err, timetable.ErrGroupNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка проверки группы: %w", err)
	}
	return true, nil
}

// inlineGroupRe вылавливает из начала запроса номер группы вида
// "1-23а". Границы слова заданы явно: \b не понимает кириллицу.
var inlineGroupRe = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(\d{1,2}-\d{2,3}[\p{L}\p{N}]{0,2})(?:$|[^\p{L}\p{N}])`)

// GuessEverything разбирает запрос, в котором может быть указана и
// группа, и день: "1-23а завтра". Если группы в тексте нет, берётся
// группа пользователя; если не задана и она — ErrMissingGroup.
// Возвращает также группу, по которой шёл поиск.
func (s *TimetableService) GuessEverything(text string, user *repository.User) ([]timetable.RenderedDay, string, error) {
	if m := inlineGroupRe.FindStringSubmatchIndex(text); m != nil {
		group := text[m[2]:m[3]]
		rest := strings.TrimSpace(text[m[3]:])
		if group != "" && rest != "" {
			var phrases []string
			if user != nil {
				phrases = user.Phrases()
			}
			days, err := s.Guess(group, rest, phrases)
			return days, group, err
		}
	}
	if user != nil && user.Group != "" {
		days, err := s.Guess(user.Group, text, user.Phrases())
		return days, user.Group, err
	}
	return nil, "", timetable.ErrMissingGroup
}
