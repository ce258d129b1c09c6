package bot

import (
	"log"

	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot представляет Telegram бота
type Bot struct {
	api         *tgbotapi.BotAPI
	repo        *repository.Repository
	service     *service.TimetableService
	updater     *service.UpdaterService
	adminChatID int64
}

// New создаёт новый экземпляр бота
func New(api *tgbotapi.BotAPI, repo *repository.Repository, svc *service.TimetableService, updater *service.UpdaterService, adminChatID int64) *Bot {
	return &Bot{
		api:         api,
		repo:        repo,
		service:     svc,
		updater:     updater,
		adminChatID: adminChatID,
	}
}

// Start запускает бота
func (b *Bot) Start() error {
	b.setupCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	b.handleUpdates(b.api.GetUpdatesChan(u))
	return nil
}

func (b *Bot) handleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.InlineQuery != nil {
			b.handleInlineQuery(update.InlineQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		message := update.Message

		// У постов из каналов отправителя нет
		if message.From == nil {
			continue
		}

		user, err := b.repo.User.GetOrCreate(message.From.ID)
		if err != nil {
			log.Printf("Ошибка загрузки пользователя %d: %v", message.From.ID, err)
			continue
		}

		if message.IsCommand() {
			b.handleCommand(message, user)
			continue
		}
		b.handleMessage(message, user)
	}
}

// setupCommands регистрирует меню команд: общее для всех
// и расширенное для чата администратора
func (b *Bot) setupCommands() {
	userCommands := []tgbotapi.BotCommand{
		{Command: "week", Description: "расписание на неделю"},
		{Command: "today", Description: "расписание на сегодня"},
		{Command: "tomorrow", Description: "расписание на завтра"},
		{Command: "setgroup", Description: "поменять группу"},
		{Command: "sethl", Description: "изменить фразы для выделения"},
		{Command: "cancel", Description: "отменить действие"},
	}
	adminCommands := append(userCommands,
		tgbotapi.BotCommand{Command: "settt", Description: "обновить ссылку на расписание"},
		tgbotapi.BotCommand{Command: "setwcs", Description: "обновить дату начала отсчета недель"},
		tgbotapi.BotCommand{Command: "update", Description: "обновить расписание"},
	)

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(userCommands...)); err != nil {
		log.Printf("Ошибка регистрации команд: %v", err)
	}
	adminScope := tgbotapi.NewSetMyCommandsWithScope(tgbotapi.NewBotCommandScopeChat(b.adminChatID), adminCommands...)
	if _, err := b.api.Request(adminScope); err != nil {
		log.Printf("Ошибка регистрации команд администратора: %v", err)
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	return chatID == b.adminChatID
}

// reply отвечает на сообщение текстом в разметке HTML
func (b *Bot) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Ошибка отправки сообщения: %v", err)
	}
}

// NotifyAdmin отправляет сообщение в чат администратора
func (b *Bot) NotifyAdmin(text string) {
	msg := tgbotapi.NewMessage(b.adminChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Ошибка отправки сообщения администратору: %v", err)
	}
}

// saveUser сохраняет пользователя, ошибки только логируются
func (b *Bot) saveUser(user *repository.User) {
	if err := b.repo.User.Update(user); err != nil {
		log.Printf("Ошибка сохранения пользователя %d: %v", user.ID, err)
	}
}
