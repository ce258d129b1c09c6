package repository

import (
	"database/sql"
	"time"
)

const (
	settingLink           = "link"
	settingWeekCountStart = "week_count_start"
)

// SettingsRepository хранит настройки бота парами имя/значение
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository создаёт репозиторий настроек
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			name VARCHAR(32) PRIMARY KEY,
			value VARCHAR(2048) NOT NULL
		)`)
	return err
}

func (r *SettingsRepository) get(name string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE name = $1`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SettingsRepository) set(name, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = $2`, name, value)
	return err
}

// GetTimetableLink возвращает ссылку на файл расписания
func (r *SettingsRepository) GetTimetableLink() (string, error) {
	return r.get(settingLink)
}

// SetTimetableLink сохраняет ссылку на файл расписания
func (r *SettingsRepository) SetTimetableLink(link string) error {
	return r.set(settingLink, link)
}

// GetWeekCountStart возвращает дату начала отсчёта недель
// или nil, если она не задана
func (r *SettingsRepository) GetWeekCountStart() (*time.Time, error) {
	value, err := r.get(settingWeekCountStart)
	if err != nil || value == "" {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// SetWeekCountStart сохраняет дату начала отсчёта недель
func (r *SettingsRepository) SetWeekCountStart(date time.Time) error {
	return r.set(settingWeekCountStart, date.Format("2006-01-02"))
}
