package model

// ListFilters is a row-level window over a listing. Nil fields mean
// "return everything"; the delivery layer decides when paging applies.
type ListFilters struct {
	Limit  *int
	Offset *int
}
