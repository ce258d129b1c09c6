package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandSetLink       = "settt"
	commandSetWeekStart  = "setwcs"
	commandForceUpdate   = "update"
	weekCountStartLayout = "2006-01-02"
)

// handleAdminCommand обрабатывает команды администратора.
// Возвращает false, если команда не административная.
func (b *Bot) handleAdminCommand(message *tgbotapi.Message, user *repository.User) bool {
	switch message.Command() {
	case commandSetLink:
		user.State = repository.StateSettingLink
		b.saveUser(user)
		b.reply(message, "Пришлите новую ссылку.")

	case commandSetWeekStart:
		user.State = repository.StateSettingWeekCountStart
		b.saveUser(user)
		b.reply(message, "Пришлите дату начала отсчета недель (ГГГГ-ММ-ДД).")

	case commandForceUpdate:
		b.forceUpdate(message)

	default:
		return false
	}
	return true
}

// handleAdminMessage обрабатывает ввод в административных состояниях.
// Возвращает false, если состояние не административное.
func (b *Bot) handleAdminMessage(message *tgbotapi.Message, user *repository.User) bool {
	switch user.State {
	case repository.StateSettingLink:
		b.handleSetLink(message, user)
	case repository.StateSettingWeekCountStart:
		b.handleSetWeekCountStart(message, user)
	default:
		return false
	}
	return true
}

// handleSetLink сохраняет новую ссылку и сразу пробует скачать по ней
// расписание. Если скачать не удалось, возвращается старая ссылка.
func (b *Bot) handleSetLink(message *tgbotapi.Message, user *repository.User) {
	user.State = repository.StateIdle
	b.saveUser(user)

	oldLink, err := b.repo.Settings.GetTimetableLink()
	if err != nil {
		b.reply(message, fmt.Sprintf("Не удалось прочитать старую ссылку. Причина: %v", err))
		return
	}
	if err := b.repo.Settings.SetTimetableLink(message.Text); err != nil {
		b.reply(message, fmt.Sprintf("Не удалось сохранить ссылку. Причина: %v", err))
		return
	}

	if _, err := b.updater.Update(true); err != nil {
		if err := b.repo.Settings.SetTimetableLink(oldLink); err != nil {
			b.reply(message, fmt.Sprintf("Не удалось вернуть старую ссылку. Причина: %v", err))
		}
		b.reply(message, fmt.Sprintf("Не удалось обновить ссылку. Причина: %v", err))
		return
	}
	b.reply(message, "Ссылка была обновлена.")
}

func (b *Bot) handleSetWeekCountStart(message *tgbotapi.Message, user *repository.User) {
	user.State = repository.StateIdle
	b.saveUser(user)

	date, err := time.Parse(weekCountStartLayout, message.Text)
	if err != nil {
		b.reply(message, "Это не дата.")
		return
	}
	if err := b.repo.Settings.SetWeekCountStart(date); err != nil {
		b.reply(message, fmt.Sprintf("Не удалось сохранить дату. Причина: %v", err))
		return
	}
	b.reply(message, "👌")
}

// forceUpdate перекачивает расписание в обход проверки интервала
func (b *Bot) forceUpdate(message *tgbotapi.Message) {
	if _, err := b.updater.Update(true); err != nil {
		if errors.Is(err, service.ErrNoLink) {
			b.reply(message, "Укажите, пожалуйста, ссылку на расписание. Для этого напишите /settt.")
			return
		}
		b.reply(message, fmt.Sprintf("Не удалось обновить расписание. Причина: %v", err))
		return
	}
	b.reply(message, "👌")
}
