package api

import "sort"

// PostPage is the pagination envelope every post-listing endpoint returns:
// one page of items plus the page index, total counts and first/last flags.
type PostPage struct {
	Content       []Post `json:"content"`
	Number        int    `json:"number"`
	Size          int    `json:"size"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
}

// CommentPage is the same envelope for comment listings.
type CommentPage struct {
	Content       []Comment `json:"content"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	First         bool      `json:"first"`
	Last          bool      `json:"last"`
}

// paginatePosts sorts posts by creation time, newest first, and slices out
// the requested page, synthesizing the same envelope the backend produces.
func paginatePosts(all []Post, page, size int) *PostPage {
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt.Time)
	})

	total := len(all)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &PostPage{
		Content:       all[start:end],
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page == totalPages-1,
	}
}
