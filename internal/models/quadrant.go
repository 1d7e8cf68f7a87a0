package models

// Quadrant is one cell of the Eisenhower matrix.
type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "Q1"
	QuadrantNotUrgentImportant    Quadrant = "Q2"
	QuadrantUrgentNotImportant    Quadrant = "Q3"
	QuadrantNotUrgentNotImportant Quadrant = "Q4"
)

var quadrantLabels = map[Quadrant]string{
	QuadrantUrgentImportant:       "Urgent & Important",
	QuadrantNotUrgentImportant:    "Not Urgent & Important",
	QuadrantUrgentNotImportant:    "Urgent & Not Important",
	QuadrantNotUrgentNotImportant: "Not Urgent & Not Important",
}

// quadrantRanks orders decisions in listings. Unclassified decisions rank
// after every quadrant.
var quadrantRanks = map[Quadrant]int{
	QuadrantUrgentImportant:       1,
	QuadrantNotUrgentImportant:    2,
	QuadrantUrgentNotImportant:    3,
	QuadrantNotUrgentNotImportant: 4,
}

const unclassifiedRank = 5

// Quadrants lists every quadrant in display order.
func Quadrants() []Quadrant {
	return []Quadrant{
		QuadrantUrgentImportant,
		QuadrantNotUrgentImportant,
		QuadrantUrgentNotImportant,
		QuadrantNotUrgentNotImportant,
	}
}

func (q Quadrant) Valid() bool {
	_, ok := quadrantLabels[q]
	return ok
}

// Label returns the human readable name, or the raw code for unknown values.
func (q Quadrant) Label() string {
	if label, ok := quadrantLabels[q]; ok {
		return label
	}
	return string(q)
}

// QuadrantRank returns the listing position of a possibly unset quadrant.
func QuadrantRank(q *Quadrant) int {
	if q == nil {
		return unclassifiedRank
	}
	if rank, ok := quadrantRanks[*q]; ok {
		return rank
	}
	return unclassifiedRank
}
