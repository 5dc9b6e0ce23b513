// Command planner is the local-first front door to the task core: a small
// CLI over the same operation set a graphical shell would use. All state
// lives in JSON documents under the data directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taskflow-app/taskflow/internal/config"
	"github.com/taskflow-app/taskflow/internal/constants"
	"github.com/taskflow-app/taskflow/internal/models"
	"github.com/taskflow-app/taskflow/internal/planner"
	"github.com/taskflow-app/taskflow/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stderr)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	store, err := storage.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("open data dir", "dir", cfg.DataDir, "err", err)
	}

	app := planner.NewApp(store, nil)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "add":
		runAdd(app, os.Args[2:], logger)
	case "list":
		runList(app, os.Args[2:])
	case "done":
		runDone(app, os.Args[2:], logger)
	case "rm":
		runRemove(app, os.Args[2:])
	case "stats":
		runStats(app)
	case "categories":
		runCategories(app)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: planner <add|list|done|rm|stats|categories> [flags]")
}

func runAdd(app *planner.App, args []string, logger *log.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	desc := fs.String("desc", "", "task description")
	due := fs.String("due", "", "due date (2006-01-02)")
	priority := fs.String("priority", "", "low, medium, or high")
	category := fs.String("category", "", "task category")
	fs.Parse(args)

	if fs.NArg() == 0 {
		logger.Fatal("add needs a title")
	}

	input := planner.TaskInput{
		Title:       fs.Arg(0),
		Description: *desc,
		Priority:    models.Priority(*priority),
		Category:    *category,
	}
	if *due != "" {
		d, err := time.ParseInLocation("2006-01-02", *due, time.Local)
		if err != nil {
			logger.Fatal("bad due date", "due", *due, "err", err)
		}
		input.DueDate = &d
	}

	task, err := app.AddTask(input)
	if err != nil {
		logger.Fatal("add task", "err", err)
	}
	fmt.Printf("added %s  %s\n", task.ID, task.Title)
}

func runList(app *planner.App, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	pending := fs.Bool("pending", false, "only incomplete tasks")
	done := fs.Bool("done", false, "only completed tasks")
	category := fs.String("category", "", "filter by category")
	today := fs.Bool("today", false, "tasks due today")
	upcoming := fs.Int("upcoming", 0, "tasks due within n days")
	fs.Parse(args)

	var tasks []models.Task
	switch {
	case *today:
		tasks = app.GetTasksDueToday()
	case *upcoming > 0:
		tasks = app.GetUpcomingTasks(*upcoming)
	default:
		var filter planner.Filter
		if *pending {
			f := false
			filter.Completed = &f
		}
		if *done {
			t := true
			filter.Completed = &t
		}
		if *category != "" {
			filter.Category = category
		}
		tasks = app.ListTasks(filter)
	}

	for _, t := range tasks {
		mark := " "
		if t.Completed() {
			mark = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Printf("[%s] %-36s %-8s %-10s %s  %s\n", mark, t.ID, t.Priority, t.Category, due, t.Title)
	}
}

func runDone(app *planner.App, args []string, logger *log.Logger) {
	if len(args) == 0 {
		logger.Fatal("done needs a task id")
	}
	task, err := app.ToggleCompletion(args[0])
	if err != nil {
		logger.Fatal("toggle task", "id", args[0], "err", err)
	}
	state := "reopened"
	if task.Completed() {
		state = "completed"
	}
	fmt.Printf("%s %s\n", state, task.Title)
}

func runRemove(app *planner.App, args []string) {
	if len(args) == 0 || !app.DeleteTask(args[0]) {
		fmt.Println("nothing removed")
		return
	}
	fmt.Println("removed")
}

// runCategories prints the curated starter set plus any category already in
// use, without duplicates.
func runCategories(app *planner.App) {
	seen := map[string]bool{}
	for _, c := range constants.DefaultCategories {
		seen[c] = true
		fmt.Println(c)
	}
	for category := range app.GetStats().TasksByCategory {
		if !seen[category] {
			fmt.Println(category)
		}
	}
}

func runStats(app *planner.App) {
	stats := app.GetStats()
	fmt.Printf("total %d, completed %d, pending %d (%d%%)\n",
		stats.Total, stats.Completed, stats.Pending, stats.CompletionRate)
	fmt.Printf("completed this week: %d\n", stats.CompletedThisWeek)
	for category, count := range stats.TasksByCategory {
		fmt.Printf("  %-12s %d\n", category, count)
	}
	for _, point := range stats.CompletionTrend {
		fmt.Printf("  %s %d\n", point.Date, point.Count)
	}
}
