package booking

import "time"

// Overlaps compara dois intervalos semiabertos [startA, endA) e [startB, endB).
// Encostar (endA == startB) não é conflito.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.Start, i.End, o.Start, o.End)
}

// FirstOverlap devolve o índice do primeiro intervalo que colide com [start, end), ou -1.
func FirstOverlap(start, end time.Time, occupied []Interval) int {
	for i, o := range occupied {
		if Overlaps(start, end, o.Start, o.End) {
			return i
		}
	}
	return -1
}
