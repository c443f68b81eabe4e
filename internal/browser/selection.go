package browser

import "tutor-board/internal/domain/demand"

// ReconcileSelection keeps selected when it is still visible, otherwise moves
// to the first visible demand. An empty result means nothing is selected.
func ReconcileSelection(visible []demand.Demand, selected string) string {
	if selected != "" && indexOf(visible, selected) >= 0 {
		return selected
	}
	if len(visible) == 0 {
		return ""
	}
	return visible[0].ID
}

func indexOf(items []demand.Demand, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
