package response

// CollectionResponse is the wire shape of every list endpoint. Items is
// never null; an empty listing marshals as an empty array.
type CollectionResponse[T any] struct {
	Items      []T         `json:"items"`
	Total      int         `json:"total"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func NewCollectionResponse[T any](items []T, pagination *Pagination) CollectionResponse[T] {
	if items == nil {
		items = []T{}
	}

	return CollectionResponse[T]{
		Items:      items,
		Total:      len(items),
		Pagination: pagination,
	}
}
