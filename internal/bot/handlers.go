package bot

import (
	"errors"
	"fmt"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/timetable"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandStart    = "start"
	commandHelp     = "help"
	commandWeek     = "week"
	commandToday    = "today"
	commandTomorrow = "tomorrow"
	commandSetGroup = "setgroup"
	commandSetHl    = "sethl"
	commandCancel   = "cancel"
)

func (b *Bot) handleCommand(message *tgbotapi.Message, user *repository.User) {
	if b.isAdmin(message.Chat.ID) && b.handleAdminCommand(message, user) {
		return
	}

	switch message.Command() {
	case commandStart, commandHelp:
		b.reply(message, fmt.Sprintf(
			"Здрасьте, %s!\nЯ умею <s>только</s> отправлять расписание!\n"+
				"Для того чтобы начать, мне нужна ваша группа.",
			message.From.FirstName,
		))
		b.promptGroup(message, user)

	case commandWeek:
		b.sendRange(message, user, 0, 7)

	case commandToday:
		b.sendRange(message, user, 0, 1)

	case commandTomorrow:
		b.sendRange(message, user, 1, 1)

	case commandSetGroup:
		b.promptGroup(message, user)

	case commandSetHl:
		b.promptHighlights(message, user)

	case commandCancel:
		user.State = repository.StateIdle
		b.saveUser(user)
		b.reply(message, "👌")

	default:
		b.reply(message, "Пока я такого не умею =(")
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message, user *repository.User) {
	if b.isAdmin(message.Chat.ID) && b.handleAdminMessage(message, user) {
		return
	}

	switch user.State {
	case repository.StateSettingGroup:
		b.handleSetGroup(message, user)
	case repository.StateSettingHighlights:
		b.handleSetHighlights(message, user)
	default:
		b.handleRequest(message, user)
	}
}

// promptGroup переводит пользователя в режим ввода группы
func (b *Bot) promptGroup(message *tgbotapi.Message, user *repository.User) {
	user.State = repository.StateSettingGroup
	b.saveUser(user)
	b.reply(message, "Напишите, пожалуйста, свою группу.")
}

func (b *Bot) handleSetGroup(message *tgbotapi.Message, user *repository.User) {
	group := message.Text
	found, err := b.service.TryGroup(group)
	if err != nil {
		b.reportFailure(message, err)
		return
	}
	if !found {
		b.reply(message, "Группа не была найдена в расписании. Попробуйте другую.")
		return
	}
	user.State = repository.StateIdle
	user.Group = group
	b.saveUser(user)
	b.reply(message, "Теперь можно получать расписание. 👍")
}

// promptHighlights переводит пользователя в режим ввода фраз для выделения
func (b *Bot) promptHighlights(message *tgbotapi.Message, user *repository.User) {
	text := "Пришлите фразы, которые нужно выделить в расписании, по одной на строке.\n\n" +
		fmt.Sprintf("Ваша группа (%s) выделяется всегда, вне зависимости от заданных фраз.", user.Group)
	if user.HighlightPhrases != "" {
		text += "\nКроме нее, также выделяются следующие фразы:"
	}
	b.reply(message, text)
	if user.HighlightPhrases != "" {
		b.reply(message, user.HighlightPhrases)
	}
	user.State = repository.StateSettingHighlights
	b.saveUser(user)
}

func (b *Bot) handleSetHighlights(message *tgbotapi.Message, user *repository.User) {
	if !user.TrySetHighlightPhrases(message.Text) {
		b.reply(message, "К сожалению, фраз слишком много и/или они слишком длинные. "+
			"Попробуйте задать меньше фраз или уменьшить их длину.")
		return
	}
	user.State = repository.StateIdle
	b.saveUser(user)
	b.reply(message, "Фразы сохранены.")
}

// sendRange отвечает расписанием на days дней со сдвигом offset от сегодняшнего
func (b *Bot) sendRange(message *tgbotapi.Message, user *repository.User, offset, days int) {
	if user.Group == "" {
		b.promptGroup(message, user)
		return
	}
	rendered, err := b.service.Range(user.Group, offset, days, user.Phrases())
	if err != nil {
		b.replyResolutionError(message, user, err)
		return
	}
	b.sendDays(message, rendered)
}

// handleRequest разбирает свободный текст запроса расписания
func (b *Bot) handleRequest(message *tgbotapi.Message, user *repository.User) {
	if user.Group == "" {
		b.promptGroup(message, user)
		return
	}
	rendered, err := b.service.Guess(user.Group, message.Text, user.Phrases())
	if err != nil {
		b.replyResolutionError(message, user, err)
		return
	}
	b.sendDays(message, rendered)
}

func (b *Bot) sendDays(message *tgbotapi.Message, days []timetable.RenderedDay) {
	for _, day := range days {
		b.reply(message, day.HTML())
	}
}

// replyResolutionError переводит ошибку запроса расписания в ответ
// пользователю. Группа могла пропасть из расписания после его
// обновления, тогда пользователю предлагается выбрать её заново.
func (b *Bot) replyResolutionError(message *tgbotapi.Message, user *repository.User, err error) {
	switch {
	case errors.Is(err, timetable.ErrGroupNotFound), errors.Is(err, timetable.ErrMissingGroup):
		b.promptGroup(message, user)
	case errors.Is(err, timetable.ErrUnrecognized):
		b.reply(message, timetable.HelpText)
	case errors.Is(err, timetable.ErrInvalidDate):
		b.reply(message, "Это не дата.")
	default:
		b.reportFailure(message, err)
	}
}

// reportFailure отвечает пользователю общим сообщением об ошибке
// и пересылает подробности администратору
func (b *Bot) reportFailure(message *tgbotapi.Message, err error) {
	b.reply(message, "Что-то пошло не так. Попробуйте позже.")
	b.NotifyAdmin("Ошибка при ответе на запрос: " + err.Error())
}
