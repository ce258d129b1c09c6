package main

import (
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/iigaz/tttbot/internal/bot"
	"github.com/iigaz/tttbot/internal/config"
	"github.com/iigaz/tttbot/internal/repository"
	"github.com/iigaz/tttbot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("База данных недоступна: %v", err)
	}

	repo := repository.New(db)
	if err := repo.Init(); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Один замок на файл расписания: обновление пишет, запросы читают
	var fileMu sync.RWMutex
	timetableService := service.NewTimetableService(cfg.TimetableFile, &fileMu, repo.Settings)
	updater := service.NewUpdaterService(cfg.TimetableFile, &fileMu, repo.Settings)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка подключения к Telegram: %v", err)
	}
	log.Printf("Бот авторизован как %s", api.Self.UserName)

	telegramBot := bot.New(api, repo, timetableService, updater, cfg.AdminChatID)

	update := func(force bool) {
		updated, err := updater.Update(force)
		if err != nil {
			log.Printf("Ошибка обновления расписания: %v", err)
			if errors.Is(err, service.ErrNoLink) {
				telegramBot.NotifyAdmin("Укажите, пожалуйста, ссылку на расписание. Для этого напишите /settt.")
			} else {
				telegramBot.NotifyAdmin("Не удалось обновить расписание. Причина: " + err.Error())
			}
			return
		}
		if updated {
			log.Println("Расписание обновлено")
		}
	}
	update(false)

	// Тикает чаще, чем нужно; сам сервис решает, пора ли
	// перекачивать файл, по времени суток
	c := cron.New()
	if err := c.AddFunc("@every 5m", func() { update(false) }); err != nil {
		log.Fatalf("Ошибка запуска планировщика: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Изменения файла мимо сервиса обновления стоит заметить
	watcher := service.NewWatcher(cfg.TimetableFile, func() {
		if time.Since(updater.LastUpdate()) > 10*time.Second {
			telegramBot.NotifyAdmin("Файл расписания был изменён вне бота.")
		}
	})
	if err := watcher.Start(); err != nil {
		log.Printf("Наблюдение за файлом расписания не запущено: %v", err)
	}

	if err := telegramBot.Start(); err != nil {
		log.Fatal(err)
	}
}
