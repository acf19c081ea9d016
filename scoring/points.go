package scoring

// PointsTable awards points by 1-based position for every game scored by
// position order. Positions beyond the table earn 0.
var PointsTable = []int{25, 22, 19, 15, 12, 8, 7, 6, 5, 4, 3, 2, 1, 0, 0, 0}

// PointsForPosition returns the table points for a 1-based position.
func PointsForPosition(position int) int {
	if position < 1 || position > len(PointsTable) {
		return 0
	}
	return PointsTable[position-1]
}
