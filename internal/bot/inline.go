package bot

import (
	"log"

	"github.com/google/uuid"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleInlineQuery отвечает на inline-запрос вида "1-23а завтра".
// Группу в запросе указывать не обязательно, если она уже задана
// у пользователя. На нераспознанный запрос отдаётся пустой список.
func (b *Bot) handleInlineQuery(query *tgbotapi.InlineQuery) {
	user, err := b.repo.User.GetByID(query.From.ID)
	if err != nil {
		log.Printf("Ошибка загрузки пользователя %d: %v", query.From.ID, err)
	}

	var results []interface{}
	days, group, err := b.service.GuessEverything(query.Query, user)
	if err == nil {
		for _, day := range days {
			title := day.Weekday
			description := "Расписание группы " + group
			if label := day.DateLabel(); label != "" {
				description += " на " + label
			}

			article := tgbotapi.NewInlineQueryResultArticleHTML(uuid.New().String(), title, day.HTML())
			article.Description = description
			results = append(results, article)
		}
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     60,
		IsPersonal:    user != nil,
	}
	if _, err := b.api.Request(answer); err != nil {
		log.Printf("Ошибка ответа на inline-запрос: %v", err)
	}
}
