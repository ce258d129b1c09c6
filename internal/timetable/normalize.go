package timetable

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// normalizeText приводит текст ячейки к сравнимому виду:
// убирает пустые строки, схлопывает пробелы внутри строк.
func normalizeText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n")
}

// mergedRange — объединённый диапазон, в который входит ячейка:
// значение и координаты его верхней левой ячейки
type mergedRange struct {
	value  string
	anchor [2]int
}

// mergedLookup отображает координаты ячейки на её объединённый
// диапазон. Строится один раз на лист, чтобы не перебирать диапазоны
// на каждое чтение.
type mergedLookup map[[2]int]mergedRange

func buildMergedLookup(f *excelize.File, sheet string) (mergedLookup, error) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	lookup := make(mergedLookup)
	for _, mc := range merges {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		rng := mergedRange{value: mc.GetCellValue(), anchor: [2]int{startCol, startRow}}
		for col := startCol; col <= endCol; col++ {
			for row := startRow; row <= endRow; row++ {
				lookup[[2]int{col, row}] = rng
			}
		}
	}
	return lookup, nil
}

// cellValue возвращает логическое значение ячейки: для ячеек внутри
// объединённого диапазона — значение его верхней левой ячейки,
// для остальных — собственное значение. Результат нормализован.
func cellValue(f *excelize.File, sheet string, lookup mergedLookup, col, row int) string {
	if rng, ok := lookup[[2]int{col, row}]; ok {
		return normalizeText(rng.value)
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := f.GetCellValue(sheet, name)
	if err != nil {
		return ""
	}
	return normalizeText(value)
}

// dayStart сообщает, начинается ли в этой ячейке новый блок дня.
// День недели объединён в одну ячейку на весь свой блок, и все
// накрытые ею ячейки читаются со значением блока, поэтому начало дня
// определяется по структуре: либо это верхняя левая ячейка своего
// диапазона, либо непустая ячейка вне всяких диапазонов.
func dayStart(f *excelize.File, sheet string, lookup mergedLookup, col, row int) (string, bool) {
	if rng, ok := lookup[[2]int{col, row}]; ok {
		if rng.anchor != [2]int{col, row} {
			return "", false
		}
		label := normalizeText(rng.value)
		return label, label != ""
	}
	label := cellValue(f, sheet, lookup, col, row)
	return label, label != ""
}
