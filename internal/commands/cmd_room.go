package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/studydesk/studydesk/internal/core/notify"
	"github.com/studydesk/studydesk/internal/core/session"
	"github.com/studydesk/studydesk/internal/core/validate"
	"github.com/studydesk/studydesk/internal/tui"
	"github.com/studydesk/studydesk/pkg/iojson"
)

type RoomCmd struct {
	flags *Flags

	// flags
	jsonOutput  bool
	name        string
	description string
	noUI        bool
}

// NewRoomCmd creates a new room command
func NewRoomCmd(flags *Flags) *RoomCmd {
	return &RoomCmd{flags: flags}
}

// Register adds the room command to the application
func (cmd *RoomCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "room",
		Usage:     "Manage collaboration rooms",
		UsageText: "studydesk room <command>",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List rooms",
				UsageText: "studydesk room list [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "new",
				Usage:     "Create a room",
				UsageText: "studydesk room new [--name text] [--description text]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "name",
						Aliases:     []string{"n"},
						Usage:       "room name",
						Destination: &cmd.name,
					},
					&cli.StringFlag{
						Name:        "description",
						Aliases:     []string{"d"},
						Usage:       "room description",
						Destination: &cmd.description,
					},
				},
				Action: cmd.runNew,
			},
			{
				Name:      "join",
				Usage:     "Join a room and open the live view",
				UsageText: "studydesk room join <id> [--no-ui]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "no-ui",
						Usage:       "record the join without opening the room view",
						Destination: &cmd.noUI,
					},
				},
				Action: cmd.runJoin,
			},
		},
	})

	return app
}

func (cmd *RoomCmd) runList(ctx context.Context, c *cli.Command) error {
	rooms := cmd.flags.App.Rooms.List()

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.WriteWith(out, rooms)
	}

	if len(rooms) == 0 {
		fmt.Fprintln(os.Stderr, "No rooms found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPARTICIPANTS\tCREATED")
	for _, r := range rooms {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.Name, r.ParticipantCount, r.CreatedAt)
	}
	return w.Flush()
}

func (cmd *RoomCmd) runNew(ctx context.Context, c *cli.Command) error {
	if cmd.name == "" {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Room name").
					Validate(validate.RoomName).
					Value(&cmd.name),
				huh.NewText().
					Title("Description").
					Value(&cmd.description),
			),
		).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	created, err := cmd.flags.App.CreateRoom(ctx, cmd.name, cmd.description)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Created room %s\n", created.ID)
	return nil
}

func (cmd *RoomCmd) runJoin(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("room id is required")
	}

	joined, err := cmd.flags.App.JoinRoom(ctx, id)
	if err != nil {
		return fmt.Errorf("join room: %w", err)
	}

	if cmd.noUI {
		fmt.Fprintf(c.Root().Writer, "Joined %s (%d participants)\n", joined.Name, joined.ParticipantCount)
		return nil
	}

	// The program is created after the session, so change callbacks go
	// through an indirection that is bound once the view starts.
	var send func(tea.Msg)
	s, err := cmd.flags.App.OpenSession(joined.ID, session.OnChange(func() {
		if send != nil {
			send(tui.SessionChangedMsg{})
		}
	}))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer s.Close()

	notifier := cmd.flags.App.Notifier
	return tui.Run(joined.Name, s, notifier, func(fn func(tea.Msg)) {
		send = fn
		notifier.Subscribe(func([]notify.Notification) {
			fn(tui.ToastsChangedMsg{})
		})
	})
}
