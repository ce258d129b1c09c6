package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Пост из канала приходит сообщением без отправителя; такое обновление
// должно пропускаться до обращения к базе
func TestHandleUpdates_MessageWithoutSender(t *testing.T) {
	b := &Bot{}

	updates := make(chan tgbotapi.Update, 1)
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "анонс"}}
	close(updates)

	// При обращении к репозиторию был бы nil pointer dereference
	b.handleUpdates(updates)
}
