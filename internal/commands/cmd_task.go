package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/studydesk/studydesk/internal/core/query"
	"github.com/studydesk/studydesk/internal/core/task"
	"github.com/studydesk/studydesk/internal/core/validate"
	"github.com/studydesk/studydesk/pkg/iojson"
)

type TaskCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	search     string
	status     string
	priority   string

	title       string
	description string
	dueDate     string

	yes bool

	importReader iojson.FileReader[[]task.Task]
}

// NewTaskCmd creates a new task command
func NewTaskCmd(flags *Flags) *TaskCmd {
	return &TaskCmd{flags: flags}
}

// Register adds the task command to the application
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "task",
		Usage:     "Manage tasks",
		UsageText: "studydesk task <command>",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List tasks",
				UsageText: "studydesk task list [--search text] [--status value] [--priority value] [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
					&cli.StringFlag{
						Name:        "search",
						Aliases:     []string{"s"},
						Usage:       "filter by title or description substring",
						Destination: &cmd.search,
					},
					&cli.StringFlag{
						Name:        "status",
						Usage:       "filter by status (pending, in-progress, completed, all)",
						Value:       query.All,
						Destination: &cmd.status,
					},
					&cli.StringFlag{
						Name:        "priority",
						Usage:       "filter by priority (low, medium, high, all)",
						Value:       query.All,
						Destination: &cmd.priority,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "add",
				Usage:     "Add a task",
				UsageText: "studydesk task add [--title text] [--description text] [--priority value] [--due date]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "title",
						Aliases:     []string{"t"},
						Usage:       "task title",
						Destination: &cmd.title,
					},
					&cli.StringFlag{
						Name:        "description",
						Aliases:     []string{"d"},
						Usage:       "task description",
						Destination: &cmd.description,
					},
					&cli.StringFlag{
						Name:        "priority",
						Usage:       "task priority (low, medium, high)",
						Destination: &cmd.priority,
					},
					&cli.StringFlag{
						Name:        "due",
						Usage:       "due date (YYYY-MM-DD)",
						Destination: &cmd.dueDate,
					},
				},
				Action: cmd.runAdd,
			},
			{
				Name:      "toggle",
				Usage:     "Toggle a task between completed and pending",
				UsageText: "studydesk task toggle <id>",
				Action:    cmd.runToggle,
			},
			{
				Name:      "delete",
				Usage:     "Delete a task",
				UsageText: "studydesk task delete <id> [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runDelete,
			},
			{
				Name:      "import",
				Usage:     "Import tasks from a JSON array",
				UsageText: "studydesk task import [--file tasks.json]",
				Flags: []cli.Flag{
					cmd.importReader.Flag(),
				},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	tasks := cmd.flags.App.SearchTasks(query.Params{
		Text: cmd.search,
		Fields: map[string]string{
			task.FilterStatus:   cmd.status,
			task.FilterPriority: cmd.priority,
		},
	})

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Priority, t.Status, t.DueDate)
	}
	return w.Flush()
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if cmd.title == "" {
		if err := cmd.runAddForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	created, err := cmd.flags.App.CreateTask(ctx, task.Task{
		Title:       cmd.title,
		Description: cmd.description,
		Priority:    task.Priority(cmd.priority),
		DueDate:     cmd.dueDate,
	})
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created task %s\n", created.ID)
	return nil
}

func (cmd *TaskCmd) runAddForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.TaskTitle).
				Value(&cmd.title),
			huh.NewText().
				Title("Description").
				Value(&cmd.description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(task.PriorityLow)),
					huh.NewOption("Medium", string(task.PriorityMedium)),
					huh.NewOption("High", string(task.PriorityHigh)),
				).
				Value(&cmd.priority),
		),
	).Run()
}

func (cmd *TaskCmd) runToggle(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}

	updated, err := cmd.flags.App.ToggleTaskStatus(ctx, id)
	if err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Task %s is now %s\n", updated.ID, updated.Status)
	return nil
}

func (cmd *TaskCmd) runDelete(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}

	if !cmd.yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete task %s?", id)).
			Value(&confirmed).
			Run()
		if err != nil || !confirmed {
			return err
		}
	}

	if err := cmd.flags.App.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Deleted task %s\n", id)
	return nil
}

func (cmd *TaskCmd) runImport(ctx context.Context, c *cli.Command) error {
	tasks, err := cmd.importReader.Read()
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}

	var created []string
	for _, t := range tasks {
		t.ID = "" // ids are always allocated by the store
		added, err := cmd.flags.App.CreateTask(ctx, t)
		if err != nil {
			return fmt.Errorf("import task %q: %w", t.Title, err)
		}
		created = append(created, added.ID)
	}

	fmt.Fprintf(c.Root().Writer, "Imported %d task(s): %s\n", len(created), strings.Join(created, ", "))
	return nil
}
