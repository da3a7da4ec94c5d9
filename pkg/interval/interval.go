// Package interval содержит чистые операции над минутными интервалами
// в пределах одних суток. Все интервалы полуоткрытые: [Start, End).
package interval

// Span минутный интервал [Start, End) от начала суток
type Span struct {
	Start int
	End   int
}

// MarkedSpan интервал с признаком доступности
type MarkedSpan struct {
	Span
	Available bool
}

// Discretize нарезает окно [start, end) на последовательные слоты ширины step.
// Неполный хвостовой слот отбрасывается целиком, не усекается.
// Возвращает пустой срез, если окно короче step или step некорректен.
func Discretize(start, end, step int) []Span {
	if step <= 0 || end-start < step {
		return []Span{}
	}

	spans := make([]Span, 0, (end-start)/step)
	for cur := start; cur+step <= end; cur += step {
		spans = append(spans, Span{Start: cur, End: cur + step})
	}
	return spans
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Строгие неравенства: интервалы, граничащие концами, НЕ пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// MarkBusy помечает слоты, пересекающиеся хотя бы с одним занятым интервалом.
// Слот помечается занятым целиком, даже если занята только его часть -
// частичное вычитание интервалов намеренно не выполняется.
func MarkBusy(spans []Span, busy []Span) []MarkedSpan {
	marked := make([]MarkedSpan, len(spans))
	for i, s := range spans {
		available := true
		for _, b := range busy {
			if Overlaps(s.Start, s.End, b.Start, b.End) {
				available = false
				break
			}
		}
		marked[i] = MarkedSpan{Span: s, Available: available}
	}
	return marked
}
