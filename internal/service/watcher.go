package service

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher следит за изменениями файла расписания вне бота:
// если файл кто-то подменил руками, администратору стоит об этом знать
type Watcher struct {
	file     string
	onChange func()
}

// NewWatcher создаёт наблюдатель за файлом расписания
func NewWatcher(file string, onChange func()) *Watcher {
	return &Watcher{file: file, onChange: onChange}
}

// Start запускает наблюдение в отдельной горутине
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.file)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var lastEvent time.Time

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != w.file {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if time.Since(lastEvent) < 2*time.Second {
						continue
					}
					lastEvent = time.Now()

					log.Printf("Файл расписания изменён: %s", event.Name)
					if w.onChange != nil {
						w.onChange()
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Ошибка наблюдателя за файлом: %v", err)
			}
		}
	}()

	return nil
}
