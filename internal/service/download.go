package service

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var downloadClient = &http.Client{Timeout: 10 * time.Second}

// exportURL переделывает ссылку на таблицу в ссылку на выгрузку xlsx:
// от пути остаются первые сегменты до идентификатора документа,
// к ним добавляется /export с format=xlsx.
func exportURL(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("некорректная ссылка: %w", err)
	}
	segments := strings.Split(u.Path, "/")
	if len(segments) > 4 {
		segments = segments[:4]
	}
	u.Path = strings.Join(segments, "/") + "/export"
	u.RawQuery = "format=xlsx"
	u.Fragment = ""
	return u.String(), nil
}

// downloadTimetable скачивает файл расписания по ссылке.
// Вызывающий держит пишущую блокировку на файл.
func downloadTimetable(link, into string) error {
	exportLink, err := exportURL(link)
	if err != nil {
		return err
	}

	resp, err := downloadClient.Get(exportLink)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер ответил %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return os.WriteFile(into, body, 0644)
}
