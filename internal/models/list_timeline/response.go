package listtimeline

import "io.winapps.timelineapp/internal/timeline"

type Pagination struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

type ListTimelineResponse struct {
	Items      []timeline.Item `json:"items"`
	Pagination Pagination      `json:"pagination"`
}
