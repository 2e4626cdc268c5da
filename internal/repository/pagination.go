package repository

import (
	"sort"

	"todo-be/internal/entities"
)

// pageBounds computes totalPages, the clamped page and the slice offset.
// page is forced into [1, totalPages] and never below 1, even when there are no items.
func pageBounds(total, page, limit int) (totalPages, safePage, offset int) {
	if limit < 1 {
		limit = 1
	}
	totalPages = (total + limit - 1) / limit
	safePage = page
	if safePage > totalPages {
		safePage = totalPages
	}
	if safePage < 1 {
		safePage = 1
	}
	offset = (safePage - 1) * limit
	return totalPages, safePage, offset
}

// paginate filters todos by owner, orders them newest first and cuts one page
func paginate(todos []entities.Todo, page, limit int, userID string) *entities.TodoPage {
	if limit < 1 {
		limit = 1
	}

	owned := make([]entities.Todo, 0, len(todos))
	for _, t := range todos {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	totalPages, safePage, start := pageBounds(total, page, limit)
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &entities.TodoPage{
		Items:      owned[start:end],
		Total:      total,
		Page:       safePage,
		TotalPages: totalPages,
	}
}
