package timetable

import "errors"

var (
	// ErrGroupNotFound — группа не найдена ни на одном листе расписания
	ErrGroupNotFound = errors.New("группа не найдена в расписании")

	// ErrUnrecognized — не удалось распознать, на какой день запрошено расписание
	ErrUnrecognized = errors.New("запрос не распознан")

	// ErrMissingGroup — у пользователя ещё не задана группа
	ErrMissingGroup = errors.New("группа не задана")

	// ErrInvalidDate — дата в запросе совпала с форматом, но такого дня в календаре нет
	ErrInvalidDate = errors.New("несуществующая дата")
)

// HelpText перечисляет все принимаемые форматы запроса.
// Отправляется пользователю вместе с ErrUnrecognized.
const HelpText = "Не удалось распознать, на какой день запрошено расписание.\n" +
	"\nВозможные форматы запроса:\n" +
	"- День недели числом (1-7), начиная с Понедельника.\n" +
	"  Примеры: 4; 1\n" +
	"- День недели отдельным словом в любом месте сообщения.\n" +
	"  Примеры: на пятницу; среда\n" +
	"- Сдвиг дня недели числом, от текущего.\n" +
	"  Примеры: +2; -1\n" +
	"- Сдвиг отдельным словом в любом месте сообщения.\n" +
	"  Примеры: на сегодня; на вчера; послезавтра; на неделю\n" +
	"- Дата в <i>текущем</i> году (месяце), в формате <code>день.[месяц[.год]]</code>.\n" +
	"  Примеры: 3.; 03.12; 1.1"
