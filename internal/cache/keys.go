package cache

import "fmt"

// TodoVersionKey holds a counter bumped on every write to a user's todos.
// Page keys embed it, so a write orphans every page cached before it.
func TodoVersionKey(userID string) string {
	return fmt.Sprintf("todos:%s:version", userID)
}

// TodoPagePrefix is the key prefix shared by every cached page of one user at one version
func TodoPagePrefix(userID string, version int64) string {
	return fmt.Sprintf("todos:%s:v%d:", userID, version)
}

// TodoPageKey identifies one cached page of a user's todos
func TodoPageKey(userID string, version int64, page, limit int) string {
	return fmt.Sprintf("%spage=%d:limit=%d", TodoPagePrefix(userID, version), page, limit)
}
