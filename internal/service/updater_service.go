package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/timetable"
)

// ErrNoLink — ссылка на расписание ещё не задана администратором
var ErrNoLink = errors.New("ссылка на расписание не задана")

// Интервалы обновления по времени суток (московскому)
const (
	nightInterval   = 3 * time.Hour    // 0-7: ночью правок не бывает
	workInterval    = 5 * time.Minute  // 7-18: рабочее время, правки вероятны
	eveningInterval = 30 * time.Minute // 18-24: вечером правки редки
)

// UpdaterService скачивает файл расписания по расписанию обновлений.
// Скачивание и перезапись файла идут под пишущей блокировкой mu,
// той же, под которой TimetableService читает файл.
type UpdaterService struct {
	file     string
	mu       *sync.RWMutex
	settings *repository.SettingsRepository

	// lastUpdate читается из планировщика параллельно с обновлением,
	// поэтому прикрыт отдельным замком
	stateMu    sync.Mutex
	lastUpdate time.Time
}

// NewUpdaterService создаёт сервис обновления расписания
func NewUpdaterService(file string, mu *sync.RWMutex, settings *repository.SettingsRepository) *UpdaterService {
	return &UpdaterService{file: file, mu: mu, settings: settings}
}

// Due решает, пора ли перекачивать расписание. now ожидается в UTC;
// сдвиг на московское время используется только для выбора интервала.
func (u *UpdaterService) Due(now time.Time) bool {
	u.stateMu.Lock()
	elapsed := now.Sub(u.lastUpdate)
	u.stateMu.Unlock()

	switch hour := now.UTC().Add(timetable.MoscowOffset).Hour(); {
	case hour < 7:
		return elapsed >= nightInterval
	case hour < 18:
		return elapsed >= workInterval
	default:
		return elapsed >= eveningInterval
	}
}

// LastUpdate возвращает момент последнего успешного обновления
func (u *UpdaterService) LastUpdate() time.Time {
	u.stateMu.Lock()
	defer u.stateMu.Unlock()
	return u.lastUpdate
}

// recordSuccess запоминает момент успешного обновления
func (u *UpdaterService) recordSuccess(now time.Time) {
	u.stateMu.Lock()
	u.lastUpdate = now
	u.stateMu.Unlock()
}

// Update скачивает свежий файл расписания, если пора. force обходит
// проверку интервала. Возвращает true, если файл был перекачан.
func (u *UpdaterService) Update(force bool) (bool, error) {
	if !force && !u.Due(time.Now()) {
		return false, nil
	}

	link, err := u.settings.GetTimetableLink()
	if err != nil {
		return false, fmt.Errorf("ошибка чтения ссылки на расписание: %w", err)
	}
	if link == "" {
		return false, ErrNoLink
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if err := downloadTimetable(link, u.file); err != nil {
		return false, fmt.Errorf("не удалось скачать расписание: %w", err)
	}
	u.recordSuccess(time.Now())
	return true, nil
}
