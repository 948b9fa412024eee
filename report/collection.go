package report

import (
	"time"

	"github.com/clinmind/samplelog/response"
)

type Collection struct {
	Items      []ListItem          `json:"items"`
	Pagination response.Pagination `json:"pagination"`
}

type ListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Period      string    `json:"period"`
	Total       int       `json:"total"`
	GeneratedAt time.Time `json:"generated_at"`
}

func mapReportToListItem(r *Report) (ListItem, bool) {
	if r == nil {
		return ListItem{}, false
	}

	return ListItem{
		ID:          r.ID,
		Name:        r.Name,
		Period:      r.Period,
		Total:       r.Total,
		GeneratedAt: r.GeneratedAt,
	}, true
}

func NewReportListCollection(reports []Report, pagination response.Pagination) *Collection {
	items := make([]ListItem, 0, len(reports))
	for _, r := range reports {
		if item, ok := mapReportToListItem(&r); ok {
			items = append(items, item)
		}
	}

	return &Collection{
		Items:      items,
		Pagination: pagination,
	}
}
