// resolve_id.go adapts incoming task ids. The model (or the user) may hand
// back either a real UUID or a 1-based position into the user's current
// list; legacy clients used small integer indexes. Position errors name how
// many tasks the user actually has.
package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// resolveTaskID turns a UUID-or-index string into a concrete task UUID.
func (ts *toolset) resolveTaskID(ctx context.Context, taskID string) (string, error) {
	if _, err := uuid.Parse(taskID); err == nil {
		return taskID, nil
	}

	n, err := strconv.Atoi(taskID)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("task_id must be a valid UUID string or a positive integer")
	}

	all, err := ts.svc.List(ctx, ts.userID, "")
	if err != nil {
		return "", err
	}
	if n >= 1 && n <= len(all) {
		return all[n-1].ID, nil
	}
	return "", fmt.Errorf("Task at position %d does not exist. You only have %d tasks.", n, len(all))
}
