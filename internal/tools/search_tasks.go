// search_tasks.go defines the search_tasks_by_title tool: fuzzy title search
// returning every task above a fixed similarity bar, best first.
package tools

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// searchScoreCutoff is on the 0-100 similarity scale.
const searchScoreCutoff = 40.0

// SearchTasksArgs is the input for the search_tasks_by_title tool.
type SearchTasksArgs struct {
	TitleQuery string `json:"title_query" jsonschema:"The title or part of title to search for"`
}

// SearchHit is one matching task with its similarity score (0-100).
type SearchHit struct {
	TaskID          string  `json:"task_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Status          string  `json:"status"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SearchTasksOutput contains the matches sorted by score descending.
type SearchTasksOutput struct {
	Tasks        []SearchHit `json:"tasks"`
	TotalMatches int         `json:"total_matches"`
}

func (ts *toolset) searchTasksByTitle(ctx context.Context, _ *mcp.CallToolRequest, args SearchTasksArgs) (*mcp.CallToolResult, SearchTasksOutput, error) {
	if strings.TrimSpace(args.TitleQuery) == "" {
		return nil, SearchTasksOutput{}, errors.New("title_query is required")
	}

	all, err := ts.svc.List(ctx, ts.userID, "")
	if err != nil {
		return nil, SearchTasksOutput{}, err
	}

	out := SearchTasksOutput{Tasks: make([]SearchHit, 0, len(all))}
	for _, t := range all {
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		score := ts.resolver.Similarity(args.TitleQuery, t.Title) * 100
		if score <= searchScoreCutoff {
			continue
		}
		out.Tasks = append(out.Tasks, SearchHit{
			TaskID:          t.ID,
			Title:           t.Title,
			Description:     t.Description,
			Status:          string(t.Status),
			SimilarityScore: math.Round(score*100) / 100,
		})
	}

	sort.SliceStable(out.Tasks, func(i, j int) bool {
		return out.Tasks[i].SimilarityScore > out.Tasks[j].SimilarityScore
	})
	out.TotalMatches = len(out.Tasks)
	return nil, out, nil
}
