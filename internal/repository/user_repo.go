package repository

import (
	"database/sql"
	"strings"
)

// ConversationState — состояние диалога с пользователем
type ConversationState int

const (
	// Состояния пользователя
	StateIdle              ConversationState = 1
	StateSettingGroup      ConversationState = 2
	StateSettingHighlights ConversationState = 3

	// Состояния администратора
	StateSettingLink           ConversationState = 32
	StateSettingWeekCountStart ConversationState = 33
)

// Предел суммарной длины фраз для выделения
const HighlightPhrasesMaxLen = 512

// User представляет пользователя бота
type User struct {
	ID               int64
	Group            string
	State            ConversationState
	HighlightPhrases string
}

// Phrases возвращает фразы для выделения по одной на элемент
func (u *User) Phrases() []string {
	var phrases []string
	for _, line := range strings.Split(u.HighlightPhrases, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases
}

// TrySetHighlightPhrases сохраняет фразы, если они укладываются в лимит
func (u *User) TrySetHighlightPhrases(text string) bool {
	if len([]rune(text)) > HighlightPhrasesMaxLen {
		return false
	}
	u.HighlightPhrases = text
	return true
}

// UserRepository работает с пользователями
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт репозиторий пользователей
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			group_name VARCHAR(10) NOT NULL DEFAULT '',
			conversation_state INTEGER NOT NULL DEFAULT 1,
			highlight_phrases VARCHAR(512) NOT NULL DEFAULT ''
		)`)
	return err
}

// GetByID возвращает пользователя или nil, если его ещё нет
func (r *UserRepository) GetByID(id int64) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(`
		SELECT id, group_name, conversation_state, highlight_phrases
		FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Group, &u.State, &u.HighlightPhrases)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetOrCreate возвращает пользователя, создавая запись при первом обращении
func (r *UserRepository) GetOrCreate(id int64) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(`
		INSERT INTO users (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET id = users.id
		RETURNING id, group_name, conversation_state, highlight_phrases`, id).
		Scan(&u.ID, &u.Group, &u.State, &u.HighlightPhrases)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Update сохраняет изменяемые поля пользователя
func (r *UserRepository) Update(u *User) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET group_name = $1, conversation_state = $2, highlight_phrases = $3
		WHERE id = $4`,
		u.Group, u.State, u.HighlightPhrases, u.ID,
	)
	return err
}
