package repository

import "database/sql"

// Repository содержит все репозитории
type Repository struct {
	User     *UserRepository
	Settings *SettingsRepository
}

// New создаёт новый экземпляр Repository
func New(db *sql.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Settings: NewSettingsRepository(db),
	}
}

// Init создаёт таблицы, если их ещё нет
func (r *Repository) Init() error {
	if err := r.User.init(); err != nil {
		return err
	}
	return r.Settings.init()
}
