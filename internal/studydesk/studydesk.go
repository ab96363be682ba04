// Package studydesk wires the collection stores, notification queue, and
// room sessions into one application service. Command and TUI layers
// talk to an App; they never touch stores directly.
package studydesk

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/studydesk/studydesk/internal/core/config"
	"github.com/studydesk/studydesk/internal/core/entity"
	"github.com/studydesk/studydesk/internal/core/logging"
	"github.com/studydesk/studydesk/internal/core/notify"
	"github.com/studydesk/studydesk/internal/core/query"
	"github.com/studydesk/studydesk/internal/core/resource"
	"github.com/studydesk/studydesk/internal/core/room"
	"github.com/studydesk/studydesk/internal/core/session"
	"github.com/studydesk/studydesk/internal/core/stats"
	"github.com/studydesk/studydesk/internal/core/task"
	"github.com/studydesk/studydesk/internal/core/validate"
	"github.com/studydesk/studydesk/pkg/identity"
)

// App aggregates the application's state layer: one store per
// collection, the shared notification queue, and configuration.
type App struct {
	Tasks     *entity.Store[task.Task]
	Rooms     *entity.Store[room.Room]
	Resources *entity.Store[resource.Resource]
	Notifier  *notify.Queue

	cfg *config.Config
	ids *identity.Allocator
	now func() time.Time
	log zerolog.Logger
}

// Option configures an App.
type Option func(*App)

// WithClock replaces the application clock.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithAllocator replaces the id allocator.
func WithAllocator(ids *identity.Allocator) Option {
	return func(a *App) { a.ids = ids }
}

// New builds the application service on top of the given snapshot
// adapter. Collections are loaded eagerly; a first run (or a disabled
// seed) starts from the configured starter data or empty collections.
func New(ctx context.Context, cfg *config.Config, adapter entity.Adapter, notifier *notify.Queue, opts ...Option) (*App, error) {
	a := &App{
		Notifier: notifier,
		cfg:      cfg,
		ids:      identity.NewAllocator(),
		now:      time.Now,
		log:      logging.Component("app"),
	}

	for _, opt := range opts {
		opt(a)
	}

	var (
		taskSeed     []task.Task
		roomSeed     []room.Room
		resourceSeed []resource.Resource
	)
	if cfg.SeedEnabled() {
		taskSeed = task.Seed()
		roomSeed = room.Seed()
		resourceSeed = resource.Seed()
	}

	onPersistError := func(error) {
		notifier.Errorf("Failed to save changes")
	}

	tasks, err := entity.NewStore(ctx, task.Collection, adapter, taskSeed, entity.Options[task.Task]{
		NewID:          a.ids.Next,
		AssignID:       func(t task.Task, id string) task.Task { t.ID = id; return t },
		Defaults:       task.Defaults,
		OnPersistError: onPersistError,
	})
	if err != nil {
		return nil, err
	}

	rooms, err := entity.NewStore(ctx, room.Collection, adapter, roomSeed, entity.Options[room.Room]{
		NewID:          room.NewID,
		AssignID:       func(r room.Room, id string) room.Room { r.ID = id; return r },
		Defaults:       room.Defaults,
		OnPersistError: onPersistError,
	})
	if err != nil {
		return nil, err
	}

	resources, err := entity.NewStore(ctx, resource.Collection, adapter, resourceSeed, entity.Options[resource.Resource]{
		Placement:      entity.Prepend,
		NewID:          a.ids.Next,
		AssignID:       func(r resource.Resource, id string) resource.Resource { r.ID = id; return r },
		OnPersistError: onPersistError,
	})
	if err != nil {
		return nil, err
	}

	a.Tasks = tasks
	a.Rooms = rooms
	a.Resources = resources
	return a, nil
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// CreateTask validates and creates a task. Unset status and priority
// take collection defaults.
func (a *App) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	err := criterio.ValidateStruct(
		validate.TaskTitleField("title", t.Title),
		validTaskEnums(t),
	)
	if err != nil {
		a.Notifier.Errorf("Task title is required")
		return task.Task{}, err
	}

	created, err := a.Tasks.Create(ctx, t)
	if err != nil {
		return task.Task{}, err
	}

	a.log.Info().Str("task_id", created.ID).Msg("task created")
	a.Notifier.Successf("Task created successfully")
	return created, nil
}

func validTaskEnums(t task.Task) error {
	var errs criterio.FieldErrorsBuilder
	if t.Priority != "" && !task.ValidPriority(t.Priority) {
		errs = errs.Append("priority", fmt.Errorf("invalid priority %q", t.Priority))
	}
	if t.Status != "" && !task.ValidStatus(t.Status) {
		errs = errs.Append("status", fmt.Errorf("invalid status %q", t.Status))
	}
	return errs.ToError()
}

// UpdateTask applies a patch to an existing task.
func (a *App) UpdateTask(ctx context.Context, id string, patch func(task.Task) task.Task) (task.Task, error) {
	updated, err := a.Tasks.Update(ctx, id, patch)
	if err != nil {
		return task.Task{}, err
	}

	a.Notifier.Successf("Task updated")
	return updated, nil
}

// ToggleTaskStatus flips a task between completed and pending.
// In-progress tasks complete; completed tasks reopen as pending.
func (a *App) ToggleTaskStatus(ctx context.Context, id string) (task.Task, error) {
	updated, err := a.Tasks.Update(ctx, id, func(t task.Task) task.Task {
		t.Status = t.Toggled()
		return t
	})
	if err != nil {
		return task.Task{}, err
	}

	if updated.Status == task.StatusCompleted {
		a.Notifier.Successf("Task completed")
	} else {
		a.Notifier.Infof("Task reopened")
	}
	return updated, nil
}

// DeleteTask removes a task.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	if err := a.Tasks.Delete(ctx, id); err != nil {
		return err
	}

	a.Notifier.Successf("Task deleted")
	return nil
}

// SearchTasks filters the task collection.
func (a *App) SearchTasks(p query.Params) []task.Task {
	return query.Filter(a.Tasks.List(), task.QuerySpec(), p)
}

// CreateRoom validates and creates a collaboration room. The creator
// counts as the first participant.
func (a *App) CreateRoom(ctx context.Context, name, description string) (room.Room, error) {
	if err := validate.RoomNameField("name", name); err != nil {
		a.Notifier.Errorf("Room name is required")
		return room.Room{}, err
	}

	created, err := a.Rooms.Create(ctx, room.Room{
		Name:        name,
		Description: description,
		CreatedAt:   a.now().Format("2006-01-02"),
	})
	if err != nil {
		return room.Room{}, err
	}

	a.log.Info().Str("room_id", created.ID).Msg("room created")
	a.Notifier.Successf("Room created successfully")
	return created, nil
}

// JoinRoom looks up a room by id and records the new participant.
// Returns entity.ErrNotFound (wrapped) for an unknown id.
func (a *App) JoinRoom(ctx context.Context, id string) (room.Room, error) {
	if err := validate.RoomIDField("room_id", id); err != nil {
		return room.Room{}, err
	}

	ctx = logging.WithRoomID(ctx, id)
	joined, err := a.Rooms.Update(ctx, id, func(r room.Room) room.Room {
		r.ParticipantCount++
		return r
	})
	if err != nil {
		a.Notifier.Errorf("Room not found")
		return room.Room{}, err
	}

	a.Notifier.Successf("Joined %s", joined.Name)
	return joined, nil
}

// OpenSession opens a live session for an existing room. The caller
// owns the returned session and must Close it.
func (a *App) OpenSession(roomID string, opts ...session.Option) (*session.Session, error) {
	if _, err := a.Rooms.Get(roomID); err != nil {
		return nil, err
	}

	base := []session.Option{
		session.WithRunLatency(a.cfg.RunLatency()),
	}
	if a.cfg.DisplayName != "" {
		base = append(base, session.WithLocalUser(a.cfg.DisplayName))
	}

	return session.New(roomID, a.Notifier, append(base, opts...)...), nil
}

// CreateResource validates and creates a study resource. New resources
// appear at the front of the collection.
func (a *App) CreateResource(ctx context.Context, r resource.Resource) (resource.Resource, error) {
	err := criterio.ValidateStruct(
		validate.ResourceTitleField("title", r.Title),
		validResourceLocation(r),
	)
	if err != nil {
		a.Notifier.Errorf("Please provide a valid title and URL")
		return resource.Resource{}, err
	}

	if r.UploadedAt == "" {
		r.UploadedAt = a.now().Format("2006-01-02")
	}

	created, err := a.Resources.Create(ctx, r)
	if err != nil {
		return resource.Resource{}, err
	}

	a.log.Info().Str("resource_id", created.ID).Msg("resource created")
	a.Notifier.Successf("Resource added successfully")
	return created, nil
}

func validResourceLocation(r resource.Resource) error {
	if !resource.ValidType(r.Type) {
		return criterio.NewFieldErrors("type", fmt.Errorf("invalid resource type %q", r.Type))
	}

	if r.Type == resource.TypeLink {
		return validate.LinkURLField("url", r.URL)
	}
	return validate.FileNameField("url", r.URL)
}

// DeleteResource removes a resource.
func (a *App) DeleteResource(ctx context.Context, id string) error {
	if err := a.Resources.Delete(ctx, id); err != nil {
		return err
	}

	a.Notifier.Successf("Resource deleted")
	return nil
}

// SearchResources filters the resource collection.
func (a *App) SearchResources(p query.Params) []resource.Resource {
	return query.Filter(a.Resources.List(), resource.QuerySpec(), p)
}

// Stats computes the dashboard summary over all collections.
func (a *App) Stats() stats.Summary {
	return stats.Collect(a.Tasks.List(), a.Rooms.List(), a.Resources.List(), a.now())
}
