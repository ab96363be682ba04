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
	"github.com/studydesk/studydesk/internal/core/resource"
	"github.com/studydesk/studydesk/internal/core/validate"
	"github.com/studydesk/studydesk/pkg/iojson"
)

type ResourceCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	search     string

	title   string
	resType string
	url     string
	tags    string

	yes bool
}

// NewResourceCmd creates a new resource command
func NewResourceCmd(flags *Flags) *ResourceCmd {
	return &ResourceCmd{flags: flags}
}

// Register adds the resource command to the application
func (cmd *ResourceCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "resource",
		Usage:     "Manage study resources",
		UsageText: "studydesk resource <command>",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List resources, newest first",
				UsageText: "studydesk resource list [--search text] [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
					&cli.StringFlag{
						Name:        "search",
						Aliases:     []string{"s"},
						Usage:       "filter by title or tag substring",
						Destination: &cmd.search,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "add",
				Usage:     "Add a resource",
				UsageText: "studydesk resource add [--title text] [--type link|pdf] [--url value] [--tags a,b]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "title",
						Aliases:     []string{"t"},
						Usage:       "resource title",
						Destination: &cmd.title,
					},
					&cli.StringFlag{
						Name:        "type",
						Usage:       "resource type (link, pdf)",
						Value:       string(resource.TypeLink),
						Destination: &cmd.resType,
					},
					&cli.StringFlag{
						Name:        "url",
						Aliases:     []string{"u"},
						Usage:       "absolute URL for links, file name for PDFs",
						Destination: &cmd.url,
					},
					&cli.StringFlag{
						Name:        "tags",
						Usage:       "comma-separated tags",
						Destination: &cmd.tags,
					},
				},
				Action: cmd.runAdd,
			},
			{
				Name:      "delete",
				Usage:     "Delete a resource",
				UsageText: "studydesk resource delete <id> [--yes]",
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
		},
	})

	return app
}

func (cmd *ResourceCmd) runList(ctx context.Context, c *cli.Command) error {
	resources := cmd.flags.App.SearchResources(query.Params{Text: cmd.search})

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, resources)
	}

	if len(resources) == 0 {
		fmt.Fprintln(os.Stderr, "No resources found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tTYPE\tTAGS\tUPLOADED")
	for _, r := range resources {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Type, strings.Join(r.Tags, ","), r.UploadedAt)
	}
	return w.Flush()
}

func (cmd *ResourceCmd) runAdd(ctx context.Context, c *cli.Command) error {
	if cmd.title == "" {
		if err := cmd.runAddForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	created, err := cmd.flags.App.CreateResource(ctx, resource.Resource{
		Title: cmd.title,
		Type:  resource.Type(cmd.resType),
		URL:   cmd.url,
		Tags:  resource.ParseTags(cmd.tags),
	})
	if err != nil {
		return fmt.Errorf("create resource: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Added resource %s\n", created.ID)
	return nil
}

func (cmd *ResourceCmd) runAddForm() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.ResourceTitle).
				Value(&cmd.title),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Link", string(resource.TypeLink)),
					huh.NewOption("PDF", string(resource.TypePDF)),
				).
				Value(&cmd.resType),
			huh.NewInput().
				Title("URL / file name").
				Value(&cmd.url),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&cmd.tags),
		),
	).Run()
}

func (cmd *ResourceCmd) runDelete(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("resource id is required")
	}

	if !cmd.yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete resource %s?", id)).
			Value(&confirmed).
			Run()
		if err != nil || !confirmed {
			return err
		}
	}

	if err := cmd.flags.App.DeleteResource(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Deleted resource %s\n", id)
	return nil
}
