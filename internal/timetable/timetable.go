package timetable

// TimetableRow представляет одну строку расписания: время и занятия
type TimetableRow struct {
	Time    string
	Lessons string
}

// WeekdayTimetable представляет расписание одного дня недели
type WeekdayTimetable struct {
	Weekday string
	Rows    []TimetableRow
}

// Timetable представляет расписание группы на неделю.
// Дни идут по порядку, начиная с первого учебного дня;
// после извлечения всегда ровно 7 дней.
type Timetable struct {
	Days []WeekdayTimetable
}

func (t *Timetable) addWeekday(weekday string) {
	t.Days = append(t.Days, WeekdayTimetable{Weekday: weekday})
}

func (t *Timetable) addRowToLastWeekday(row TimetableRow) {
	if len(t.Days) == 0 {
		return
	}
	last := &t.Days[len(t.Days)-1]
	last.Rows = append(last.Rows, row)
}
