package dto

import "fupa/response"

// PaginatedResponse wraps a page of data with its paging info
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
