// Package card детерминированно рисует итоговую карточку канала.
// Вся геометрия выводится из небольшого набора констант, поэтому
// состав и порядок блоков можно менять без пересчёта пиксельной
// арифметики руками.
package card

import (
	"math"
	"strings"
)

// Layout — константы геометрии карточки. Значения по умолчанию
// повторяют макет 1000x1550 с двумя колонками стеклянных блоков.
type Layout struct {
	CardWidth  int
	CardHeight int

	AvatarSize int
	AvatarY    int

	BoxWidth  int
	BoxHeight int
	Gap       int

	WideHeight   int
	BarHeight    int
	CornerRadius float64
}

func DefaultLayout() Layout {
	return Layout{
		CardWidth:    1000,
		CardHeight:   1550,
		AvatarSize:   220,
		AvatarY:      100,
		BoxWidth:     400,
		BoxHeight:    160,
		Gap:          60,
		WideHeight:   180,
		BarHeight:    25,
		CornerRadius: 30,
	}
}

// LeftX — левая граница сетки блоков: сетка центрирована по карточке.
func (l Layout) LeftX() int {
	return (l.CardWidth - 2*l.BoxWidth - l.Gap) / 2
}

// RightX — левая граница правой колонки.
func (l Layout) RightX() int {
	return l.LeftX() + l.BoxWidth + l.Gap
}

// WideWidth — ширина широкого блока на обе колонки; её же занимает
// полоса распределения медиа.
func (l Layout) WideWidth() int {
	return 2*l.BoxWidth + l.Gap
}

// segmentWidths распределяет ширину полосы между категориями
// пропорционально их долям. Последняя ненулевая категория забирает
// остаток, чтобы ошибки округления не оставляли зазор и не вылезали
// за полосу. Нулевая категория всегда получает нулевую ширину.
func segmentWidths(counts []int, barWidth int) []int {
	widths := make([]int, len(counts))

	total := 0
	lastNonZero := -1
	for i, c := range counts {
		total += c
		if c > 0 {
			lastNonZero = i
		}
	}
	if total == 0 {
		return widths
	}

	used := 0
	for i, c := range counts {
		if c == 0 {
			continue
		}
		if i == lastNonZero {
			w := barWidth - used
			if w < 0 {
				w = 0
			}
			widths[i] = w
			continue
		}
		w := int(math.Round(float64(c) / float64(total) * float64(barWidth)))
		widths[i] = w
		used += w
	}
	return widths
}

// measureFunc возвращает ширину строки в пикселях для текущего шрифта.
// Вынесена в тип, чтобы тесты переносов не зависели от растеризации.
type measureFunc func(s string) float64

// wrapText жадно разбивает строку по словам: слово добавляется к строке,
// пока измеренная ширина укладывается в лимит. Слово шире лимита
// остаётся одно на строке — урезать текст не наша задача.
func wrapText(text string, maxWidth float64, measure measureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
