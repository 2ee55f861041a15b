package crm

import (
	"github.com/google/uuid"

	"github.com/spektr-org/salesdesk/engine"
)

// TaskType classifies a task.
type TaskType string

const (
	TaskUrgent  TaskType = "Urgent"
	TaskCall    TaskType = "Call"
	TaskMeeting TaskType = "Meeting"
	TaskReview  TaskType = "Review"
)

// TaskTypes lists the selectable task types.
var TaskTypes = []string{string(TaskUrgent), string(TaskCall), string(TaskMeeting), string(TaskReview)}

// Task is one to-do item.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Client    string   `json:"client"`
	Due       string   `json:"due"`
	Type      TaskType `json:"type"`
	Completed bool     `json:"completed"`
}

// TaskDraft is the add-task form. Empty fields take defaults.
type TaskDraft struct {
	Title  string
	Client string
	Due    string
	Type   TaskType
}

// TaskAdapter binds []Task to the engine.
var TaskAdapter = engine.NewDomainAdapter[Task]().
	Identity(func(t Task) string { return t.ID }).
	Dimension("title", func(t Task) string { return t.Title }).
	Dimension("client", func(t Task) string { return t.Client }).
	Dimension("due", func(t Task) string { return t.Due }).
	Dimension("type", func(t Task) string { return string(t.Type) }).
	Dimension("completed", func(t Task) string { return boolDim(t.Completed) })

// TaskCatalog declares the tasks list. Search only; no facets.
func TaskCatalog() Catalog {
	return Catalog{
		TextFields: []string{"title", "client"},
		Columns: []Column{
			{Key: "title", Label: "Task"},
			{Key: "client", Label: "Client"},
			{Key: "due", Label: "Due"},
			{Key: "type", Label: "Type"},
		},
		Metrics: []engine.Metric{
			{Name: "open", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("completed", "false")},
			{Name: "done", Scope: engine.ScopeFull, Reducer: engine.ReduceCountWhere, Where: engine.DimensionIs("completed", "true")},
			{Name: "showing", Scope: engine.ScopeFiltered, Reducer: engine.ReduceCount},
		},
	}
}

// SeedTasks returns the starting task list.
func SeedTasks() []Task {
	return []Task{
		{ID: "1", Title: "Review Proposal: PepsiCo", Client: "PepsiCo India", Due: "Today, 2 PM", Type: TaskUrgent},
		{ID: "2", Title: "Follow-up: Velocity Motors", Client: "Velocity Motors", Due: "Tomorrow, 10 AM", Type: TaskCall},
		{ID: "3", Title: "Screen Inventory Discussion", Client: "PVR Cinemas", Due: "Yesterday", Type: TaskUrgent},
	}
}

// ToggleTask returns a new slice with the completion of id flipped.
// Unknown ids yield an equal copy.
func ToggleTask(tasks []Task, id string) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t.Completed = !t.Completed
		}
		out[i] = t
	}
	return out
}

// AddTask returns a new slice with a task built from d prepended.
func AddTask(tasks []Task, d TaskDraft) ([]Task, Task) {
	t := Task{
		ID:     uuid.NewString(),
		Title:  orDefault(d.Title, "Untitled Task"),
		Client: orDefault(d.Client, "General"),
		Due:    orDefault(d.Due, "TBD"),
		Type:   TaskType(orDefault(string(d.Type), string(TaskCall))),
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...), t
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
