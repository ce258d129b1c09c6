package timetable

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Заглушка для дня без занятий. Отдельное состояние, а не пустой
// список: день должен отрисоваться именно этой строкой.
const restPlaceholder = `<span class="tg-spoiler">отдыхать</span>`

// RenderedRow — одна пара "время/занятия" с уже расставленной подсветкой
type RenderedRow struct {
	Time    string
	Lessons string
}

// RenderedDay — готовый к отправке день расписания
type RenderedDay struct {
	Weekday    string
	Date       *time.Time
	WeekNumber int // 0 — не показывать
	Group      string
	Rows       []RenderedRow
	NoLessons  bool
}

// Materialize раскладывает разобранный запрос по дням расписания.
// Индексация по дням циклическая, так что запрос любой длины не
// выходит за границы. Дата и номер недели заполняются только для
// запросов с привязкой к конкретной дате.
func Materialize(tt *Timetable, res Resolution, group string, phrases []string, weekCountStart *time.Time) []RenderedDay {
	// В повреждённой сетке дней может не собраться вовсе
	if len(tt.Days) == 0 {
		return nil
	}
	days := make([]RenderedDay, 0, res.Days)
	for i := 0; i < res.Days; i++ {
		day := tt.Days[(res.WeekdayIndex+i)%len(tt.Days)]
		rendered := RenderedDay{Weekday: day.Weekday, Group: group}

		if res.Anchor != nil {
			date := res.Anchor.AddDate(0, 0, i)
			rendered.Date = &date
			if weekCountStart != nil {
				rendered.WeekNumber = weekNumber(date, *weekCountStart)
			}
		}

		if len(day.Rows) == 0 {
			rendered.NoLessons = true
		}
		for _, row := range day.Rows {
			lessons := row.Lessons
			if lessons == "" {
				lessons = "—"
			}
			rendered.Rows = append(rendered.Rows, RenderedRow{
				Time:    row.Time,
				Lessons: Highlight(lessons, group, phrases),
			})
		}
		days = append(days, rendered)
	}
	return days
}

// weekNumber считает номер недели от заданной даты начала отсчёта
func weekNumber(date, start time.Time) int {
	_, week := date.ISOWeek()
	_, startWeek := start.ISOWeek()
	return week - startWeek + 1
}

// Highlight выделяет в тексте занятий группу и заданные фразы.
// Совпадение подставляется как есть, регистр не меняется. Фразы
// применяются последовательно в порядке списка, поэтому более поздняя
// фраза может обернуть уже выделенный текст ещё раз.
func Highlight(text, group string, phrases []string) string {
	highlights := append([]string{group}, phrases...)
	for _, h := range highlights {
		if h == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(h))
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, "<i><u>${0}</u></i>")
	}
	return text
}

// DateLabel возвращает дату в формате запроса: день.месяц
func (d *RenderedDay) DateLabel() string {
	if d.Date == nil {
		return ""
	}
	return d.Date.Format("02.01")
}

// HTML собирает текст дня в разметке Telegram
func (d *RenderedDay) HTML() string {
	var b strings.Builder

	header := d.Weekday
	if d.Date != nil {
		header += ", " + d.DateLabel()
		if d.WeekNumber != 0 {
			header += fmt.Sprintf(" (%d неделя)", d.WeekNumber)
		}
	}
	b.WriteString("<b><u>" + header + ":</u></b>")
	if d.Group != "" {
		b.WriteString(" <i>" + d.Group + "</i>")
	}
	b.WriteString("\n")

	for _, row := range d.Rows {
		b.WriteString("\n<b><i>" + row.Time + "</i></b>\n" + row.Lessons + "\n")
	}
	if d.NoLessons {
		b.WriteString(restPlaceholder)
	}
	return b.String()
}
