package timetable

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Геометрия сетки расписания. Колонка 1 — день недели (объединённый
// блок на весь день), колонка 2 — время, дальше — по колонке на группу.
// 42 строки — это 7 пар в день, шесть дней в неделю.
const (
	headerMaxCol = 100
	headerMaxRow = 2

	gridFirstRow = 3
	gridLastRow  = 44

	weekdayCol = 1
	timeCol    = 2

	// Воскресенья в сетке нет, добавляется отдельным пустым днём
	sundayLabel = "Воскресенье"
)

var titleCaser = cases.Title(language.Russian)

// wholeWordRegexp собирает регулярное выражение для поиска шаблона
// как отдельного слова. \b в Go понимает только ASCII, поэтому
// границы слова задаются явно: не буква и не цифра.
func wholeWordRegexp(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + pattern + `)(?:$|[^\p{L}\p{N}])`)
}

// ExtractFromFile открывает файл расписания и извлекает из него
// расписание группы на неделю.
func ExtractFromFile(filename, group string) (*Timetable, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла расписания: %w", err)
	}
	defer f.Close()

	return Extract(f, group)
}

// Extract ищет колонку группы по всем листам книги и собирает
// расписание на неделю. Поиск идёт по листам по порядку, в каждом —
// по колонкам слева направо; берётся первое совпадение. Если группа
// не найдена ни на одном листе, возвращается ErrGroupNotFound.
func Extract(f *excelize.File, group string) (*Timetable, error) {
	groupRe := wholeWordRegexp(regexp.QuoteMeta(group))

	for _, sheet := range f.GetSheetList() {
		lookup, err := buildMergedLookup(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения объединённых ячеек листа %q: %w", sheet, err)
		}
		for col := 1; col <= headerMaxCol; col++ {
			for row := 1; row <= headerMaxRow; row++ {
				header := cellValue(f, sheet, lookup, col, row)
				if header == "" {
					continue
				}
				if groupRe.MatchString(header) {
					return extractWeek(f, sheet, lookup, col), nil
				}
			}
		}
	}
	return nil, ErrGroupNotFound
}

// extractWeek проходит сетку листа сверху вниз и раскладывает строки
// по дням. Новый день начинается там, где в первой колонке стоит
// верхняя ячейка объединённого блока дня недели.
func extractWeek(f *excelize.File, sheet string, lookup mergedLookup, groupCol int) *Timetable {
	tt := &Timetable{}
	for row := gridFirstRow; row <= gridLastRow; row++ {
		if weekday, ok := dayStart(f, sheet, lookup, weekdayCol, row); ok {
			tt.addWeekday(compactWeekday(weekday))
		}
		tt.addRowToLastWeekday(TimetableRow{
			Time:    cellValue(f, sheet, lookup, timeCol, row),
			Lessons: cellValue(f, sheet, lookup, groupCol, row),
		})
	}
	if len(tt.Days) == 6 {
		// В сетке нет воскресенья
		tt.addWeekday(sundayLabel)
	}
	return tt
}

// compactWeekday собирает название дня недели в одно слово.
// В исходном файле дни записаны вертикально, по букве на строку.
func compactWeekday(s string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return titleCaser.String(strings.ToLower(compact))
}
