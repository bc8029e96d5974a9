// dispatch.go routes each model-proposed tool call through a strategy table:
// direct dispatch, resolve-then-dispatch with a fallback cascade, or
// by-description dispatch with a bulk re-check. Every underlying invocation
// is wrapped so a failure becomes an {error} result instead of aborting the
// batch.
package agent

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"taskory-assistant/internal/intent"
	"taskory-assistant/internal/llm"
	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
	"taskory-assistant/internal/tools"
)

const matchFailureError = "I couldn't find a task matching that description."

// bulkArgumentHints are checked against a by-description tool's own
// task_description argument. Heuristic: a task literally titled "all" would
// be swept up too; accepted limitation.
var bulkArgumentHints = []string{"all", "all tasks", "everything", "each task", "every task"}

type dispatcher struct {
	conn     *tools.Conn
	resolver *resolve.Resolver
	snapshot []task.Task
	message  string
	log      *zap.Logger
}

type handlerFunc func(ctx context.Context, d *dispatcher, call llm.ToolCall) []ToolResult

var dispatchTable = map[string]handlerFunc{
	"add_task":                     dispatchDirect,
	"list_tasks":                   dispatchDirect,
	"search_tasks_by_title":        dispatchDirect,
	"delete_task":                  resolveThenDispatch,
	"update_task":                  resolveThenDispatch,
	"complete_task":                resolveThenDispatch,
	"delete_task_by_description":   dispatchByDescription,
	"update_task_by_description":   dispatchByDescription,
	"complete_task_by_description": dispatchByDescription,
}

func (d *dispatcher) dispatch(ctx context.Context, call llm.ToolCall) []ToolResult {
	handler, ok := dispatchTable[call.Name]
	if !ok {
		return []ToolResult{errorResult(call.Name, call.Arguments, "Unknown tool: "+call.Name)}
	}
	return handler(ctx, d, call)
}

// execute invokes the tool and contains any failure in the result.
func (d *dispatcher) execute(ctx context.Context, name string, args map[string]any) ToolResult {
	result, err := d.conn.Execute(ctx, name, args)
	if err != nil {
		d.log.Warn("tool call failed", zap.String("tool", name), zap.Error(err))
		return errorResult(name, args, err.Error())
	}
	return ToolResult{Name: name, Arguments: args, Result: result}
}

func dispatchDirect(ctx context.Context, d *dispatcher, call llm.ToolCall) []ToolResult {
	return []ToolResult{d.execute(ctx, call.Name, call.Arguments)}
}

// resolveThenDispatch handles the identifier-based mutations. The resolved
// id is injected over whatever the model proposed; when nothing resolves,
// the cascade is: bulk fan-out, by-description sibling with the extracted
// reference text, general fuzzy match, then a single not-found result with
// no mutation attempted.
func resolveThenDispatch(ctx context.Context, d *dispatcher, call llm.ToolCall) []ToolResult {
	ref := d.resolver.Resolve(d.message, d.snapshot)

	if ref.Kind == resolve.KindBulk {
		return d.fanOut(ctx, call.Name)
	}

	// Title-specific phrasing gets one stricter attempt on the extracted
	// fragment before giving up on direct resolution.
	if ref.Kind == resolve.KindNone && intent.IsTitleSpecific(d.message) {
		if fragment := intent.ExtractReferenceText(d.message); fragment != "" {
			if id := d.resolver.FindByTitle(fragment, d.snapshot); id != "" {
				ref = resolve.Reference{Kind: resolve.KindTask, TaskID: id}
			}
		}
	}

	if ref.Kind == resolve.KindTask {
		args := cloneArgs(call.Arguments)
		args["task_id"] = ref.TaskID
		return []ToolResult{d.execute(ctx, call.Name, args)}
	}

	// Unresolved and not bulk: try the by-description variant on the
	// residual reference text.
	if fragment := intent.ExtractReferenceText(d.message); len(fragment) > 1 {
		descArgs := map[string]any{"task_description": fragment}
		if call.Name == "update_task" {
			if v, ok := call.Arguments["title"]; ok {
				descArgs["title"] = v
			}
			if v, ok := call.Arguments["description"]; ok {
				descArgs["description"] = v
			}
		}
		descTool := call.Name + "_by_description"
		res := d.execute(ctx, descTool, descArgs)
		if res.Err() == "" {
			return []ToolResult{res}
		}
		d.log.Debug("description-based fallback failed",
			zap.String("tool", descTool),
			zap.String("fragment", fragment))
	}

	// Last resort: the lenient fuzzy resolver over the whole message.
	if id := d.resolver.FuzzyMatch(strings.ToLower(d.message), d.snapshot); id != "" {
		args := cloneArgs(call.Arguments)
		args["task_id"] = id
		return []ToolResult{d.execute(ctx, call.Name, args)}
	}

	return []ToolResult{errorResult(call.Name, call.Arguments, matchFailureError)}
}

// dispatchByDescription runs the by-description tools, first re-checking
// bulk intent against both the raw message and the tool's own
// task_description argument: by-description tools target exactly one task,
// so a bulk request is redirected to a fan-out over the identifier-based
// sibling.
func dispatchByDescription(ctx context.Context, d *dispatcher, call llm.ToolCall) []ToolResult {
	isBulk := intent.IsBulk(d.message)
	if !isBulk {
		if desc, ok := call.Arguments["task_description"].(string); ok {
			lower := strings.ToLower(desc)
			for _, hint := range bulkArgumentHints {
				if strings.Contains(lower, hint) {
					isBulk = true
					break
				}
			}
		}
	}

	if isBulk {
		if call.Name == "update_task_by_description" {
			// No sane "same update for every task" semantics.
			return []ToolResult{errorResult(call.Name, call.Arguments,
				"Bulk update operations require specific task identification.")}
		}
		return d.fanOut(ctx, call.Name)
	}

	return []ToolResult{d.execute(ctx, call.Name, call.Arguments)}
}

// fanOut applies an operation to every task in the snapshot using the
// identifier-based tool, one result per task with errors isolated per task.
// An empty snapshot yields zero results, which the orchestrator turns into
// an explicit failure response. Updates are skipped entirely. Partial
// completion is accepted: already-committed mutations stay committed.
func (d *dispatcher) fanOut(ctx context.Context, op string) []ToolResult {
	base := strings.TrimSuffix(op, "_by_description")

	var results []ToolResult
	for _, t := range d.snapshot {
		switch base {
		case "delete_task":
			results = append(results, d.execute(ctx, "delete_task", map[string]any{"task_id": t.ID}))
		case "complete_task":
			results = append(results, d.execute(ctx, "complete_task", map[string]any{"task_id": t.ID, "completed": true}))
		}
	}
	return results
}
