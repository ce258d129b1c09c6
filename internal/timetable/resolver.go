package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Расписание живёт по московскому времени, хранение — в UTC
const MoscowOffset = 3 * time.Hour

// Resolution — разобранный запрос: с какого дня недели начинать,
// сколько дней показать и, если запрос привязан к конкретной дате,
// сама дата (нужна для подписи дат и номеров недель).
type Resolution struct {
	WeekdayIndex int
	Days         int
	Anchor       *time.Time
}

// resolveRule пытается разобрать запрос. Возвращает nil, если текст
// не подходит под правило; ошибка означает фатальный разбор
// (например, несуществующую дату), а не переход к следующему правилу.
type resolveRule func(text string, now time.Time) (*Resolution, error)

// resolveRules перебираются по порядку, выигрывает первое совпадение.
// Порядок существенный: частные правила стоят раньше общих, иначе
// "3" разобралось бы как дата, а не как номер дня недели.
var resolveRules = []resolveRule{
	resolveNumber,
	resolveDate,
	resolveWeekdayName,
	resolveRelativeWord,
}

// Resolve разбирает свободный текст запроса в Resolution.
// now ожидается в UTC. Если ни одно правило не подошло,
// возвращается ErrUnrecognized.
func Resolve(text string, now time.Time) (Resolution, error) {
	for _, rule := range resolveRules {
		res, err := rule(text, now)
		if err != nil {
			return Resolution{}, err
		}
		if res != nil {
			return *res, nil
		}
	}
	return Resolution{}, ErrUnrecognized
}

// weekdayIndex нумерует дни недели с понедельника: Пн=0 .. Вс=6
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// anchored строит Resolution от конкретной даты
func anchored(date time.Time, days int) *Resolution {
	return &Resolution{WeekdayIndex: weekdayIndex(date), Days: days, Anchor: &date}
}

// offsetFromToday сдвигает сегодняшний (московский) день на offset суток
func offsetFromToday(now time.Time, offset, days int) *Resolution {
	date := now.UTC().Add(MoscowOffset).AddDate(0, 0, offset)
	return anchored(date, days)
}

// FromOffset строит Resolution со сдвигом от сегодняшнего дня.
// Используется командами /today, /tomorrow и /week.
func FromOffset(now time.Time, offset, days int) Resolution {
	return *offsetFromToday(now, offset, days)
}

var numberRe = regexp.MustCompile(`^[+-]?\d{1,2}$`)

// resolveNumber разбирает число: со знаком — сдвиг от сегодняшнего
// дня, без знака — номер дня недели, начиная с 1 (понедельник).
func resolveNumber(text string, now time.Time) (*Resolution, error) {
	if !numberRe.MatchString(text) {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, nil
	}
	if text[0] == '+' || text[0] == '-' {
		return offsetFromToday(now, n, 1), nil
	}
	return &Resolution{WeekdayIndex: ((n-1)%7 + 7) % 7, Days: 1}, nil
}

var dateRe = regexp.MustCompile(`^(\d{1,2})\.(?:(\d{1,2})(?:\.(\d{4}))?)?$`)

// resolveDate разбирает дату вида "день.[месяц[.год]]": "3.", "03.12",
// "1.1.2025". Пропущенные месяц и год берутся из текущей (московской)
// даты. Несуществующий в календаре день — фатальная ошибка разбора,
// она не превращается в "запрос не распознан".
func resolveDate(text string, now time.Time) (*Resolution, error) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	msk := now.UTC().Add(MoscowOffset)
	day, _ := strconv.Atoi(m[1])
	month := int(msk.Month())
	if m[2] != "" {
		month, _ = strconv.Atoi(m[2])
	}
	year := msk.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}

	date := time.Date(year, time.Month(month), day, msk.Hour(), 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, text)
	}
	return anchored(date, 1), nil
}

// weekdayPatterns перечисляет дни недели по порядку; позиция в списке
// и есть индекс дня. Варианты в скобках покрывают падежи
// ("на среду", "в среду").
var weekdayPatterns = []string{
	"понедельник",
	"вторник",
	"сред[ау]",
	"четверг",
	"пятниц[ау]",
	"суббот[ау]",
	"воскресенье",
}

var weekdayRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(weekdayPatterns))
	for i, p := range weekdayPatterns {
		res[i] = wholeWordRegexp(p)
	}
	return res
}()

// resolveWeekdayName ищет в тексте название дня недели отдельным словом
func resolveWeekdayName(text string, _ time.Time) (*Resolution, error) {
	for i, re := range weekdayRes {
		if re.MatchString(text) {
			return &Resolution{WeekdayIndex: i, Days: 1}, nil
		}
	}
	return nil, nil
}

// relativeWords сопоставляет слова-сдвиги с парой (сдвиг в днях,
// сколько дней показать)
var relativeWords = []struct {
	re     *regexp.Regexp
	offset int
	days   int
}{
	{wholeWordRegexp("сегодня"), 0, 1},
	{wholeWordRegexp("завтра"), 1, 1},
	{wholeWordRegexp("послезавтра"), 2, 1},
	{wholeWordRegexp("вчера"), -1, 1},
	{wholeWordRegexp("позавчера"), -2, 1},
	{wholeWordRegexp("недел[яю]"), 0, 7},
}

// resolveRelativeWord ищет в тексте слово-сдвиг ("завтра", "на неделю")
func resolveRelativeWord(text string, now time.Time) (*Resolution, error) {
	for _, w := range relativeWords {
		if w.re.MatchString(text) {
			return offsetFromToday(now, w.offset, w.days), nil
		}
	}
	return nil, nil
}
