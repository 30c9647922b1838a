package presenter

import "github.com/openvta/van-terminal-api/internal/models"

// AvailableOperators returns the operators not yet held by an assignment. The
// assignment identified by editingID (the edit draft) does not count against
// availability, so an edit can keep its current operator selected.
//
// This is a pure derivation over the fetched lists; it never touches the
// store and is recomputed from scratch on every call.
func AvailableOperators(operators []models.Operator, assignments []models.Assignment, editingID *int64) []models.Operator {
	taken := takenIDs(assignments, editingID, func(a models.Assignment) int64 { return a.OperatorID })
	available := make([]models.Operator, 0, len(operators))
	for _, op := range operators {
		if _, held := taken[op.ID]; !held {
			available = append(available, op)
		}
	}
	return available
}

// AvailableVans is the symmetric rule for vans. Note the van list handed in
// here is unfiltered by archive state; see VanService.List.
func AvailableVans(vans []models.Van, assignments []models.Assignment, editingID *int64) []models.Van {
	taken := takenIDs(assignments, editingID, func(a models.Assignment) int64 { return a.VanID })
	available := make([]models.Van, 0, len(vans))
	for _, van := range vans {
		if _, held := taken[van.ID]; !held {
			available = append(available, van)
		}
	}
	return available
}

func takenIDs(assignments []models.Assignment, editingID *int64, pick func(models.Assignment) int64) map[int64]struct{} {
	taken := make(map[int64]struct{}, len(assignments))
	for _, a := range assignments {
		if editingID != nil && a.ID == *editingID {
			continue
		}
		taken[pick(a)] = struct{}{}
	}
	return taken
}
