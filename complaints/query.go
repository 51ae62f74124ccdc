package complaints

import (
	"sort"
	"strings"

	"hostel-complaint-server/models"
)

// Sort fields accepted by the query engine.
const (
	SortByID        = "id"
	SortByStatus    = "status"
	SortByBlockName = "block_name"
	SortByCategory  = "category"
	SortByText      = "text"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// QueryParams are the search/sort controls the presentation layer forwards
// unmodified from the user.
type QueryParams struct {
	Search    string
	SortField string
	SortOrder string
}

// Filter returns the complaints whose text, category, block name or room
// number contains term, case-insensitively. An empty term matches everything.
func Filter(queue []models.Complaint, term string) []models.Complaint {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return queue
	}

	var matched []models.Complaint
	for i := range queue {
		c := &queue[i]
		if strings.Contains(strings.ToLower(c.Text), term) ||
			strings.Contains(strings.ToLower(c.Category), term) ||
			strings.Contains(strings.ToLower(c.BlockName), term) ||
			strings.Contains(strings.ToLower(c.RoomNo), term) {
			matched = append(matched, *c)
		}
	}
	return matched
}

// Sort orders the queue by field and order. Ties always break by ascending
// id so repeated calls on an unchanged snapshot return the same sequence.
// Unknown fields fall back to id; unknown orders fall back to ascending.
func Sort(queue []models.Complaint, field, order string) []models.Complaint {
	sorted := make([]models.Complaint, len(queue))
	copy(sorted, queue)

	desc := order == OrderDesc

	less := func(a, b *models.Complaint) bool {
		var cmp int
		switch field {
		case SortByStatus:
			cmp = int(a.Status) - int(b.Status)
		case SortByBlockName:
			cmp = strings.Compare(strings.ToLower(a.BlockName), strings.ToLower(b.BlockName))
		case SortByCategory:
			cmp = strings.Compare(strings.ToLower(a.Category), strings.ToLower(b.Category))
		case SortByText:
			cmp = strings.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text))
		default:
			// SortByID and anything unrecognized sort numerically by id.
			switch {
			case a.ID < b.ID:
				cmp = -1
			case a.ID > b.ID:
				cmp = 1
			}
		}

		if cmp == 0 {
			// Deterministic tiebreak, ascending regardless of order.
			return a.ID < b.ID
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})
	return sorted
}

// Apply runs the filter then the sort over queue.
func Apply(queue []models.Complaint, params QueryParams) []models.Complaint {
	return Sort(Filter(queue, params.Search), params.SortField, params.SortOrder)
}
