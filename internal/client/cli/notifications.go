package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/qaforum/internal/client/mutation"
	"github.com/iudanet/qaforum/internal/models"
	"github.com/iudanet/qaforum/internal/validation"
)

type listOptions struct {
	priority string
	typ      string
	page     int
	unread   bool
	archived bool
	cached   bool
}

func newNotificationsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "List and manage notifications",
	}

	cmd.AddCommand(newNotificationsListCommand(e))
	cmd.AddCommand(newNotificationsCountCommand(e))
	cmd.AddCommand(newNotificationActionCommand(e, "read", "Mark a notification as read", "marked as read", func(ctx context.Context, id string) (*mutation.Pending, error) {
		return e.app.Notifications.MarkRead(ctx, id)
	}))
	cmd.AddCommand(newNotificationActionCommand(e, "unread", "Mark a notification as unread", "marked as unread", func(ctx context.Context, id string) (*mutation.Pending, error) {
		return e.app.Notifications.MarkUnread(ctx, id)
	}))
	cmd.AddCommand(newNotificationActionCommand(e, "archive", "Archive a notification (cannot be undone)", "archived", func(ctx context.Context, id string) (*mutation.Pending, error) {
		return e.app.Notifications.Archive(ctx, id)
	}))
	cmd.AddCommand(newNotificationsDeleteCommand(e))
	cmd.AddCommand(newNotificationsReadAllCommand(e))

	return cmd
}

func newNotificationsListCommand(e *env) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.filter(e.app.Notifications.DefaultFilter())
			if err != nil {
				return err
			}

			if !opts.cached {
				if err := e.app.Notifications.Refresh(cmd.Context(), filter); err != nil {
					return err
				}
			}

			items, agg := e.app.Notifications.View()
			if opts.archived {
				items = archivedOnly(e.app.Notifications.Store().All())
			}
			renderNotifications(e.out(), items, agg, e.opts.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.unread, "unread", false, "only unread notifications")
	cmd.Flags().BoolVar(&opts.archived, "archived", false, "only archived notifications")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "only this priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&opts.typ, "type", "", "only this notification type")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().BoolVar(&opts.cached, "cached", false, "show the local cache without contacting the server")

	return cmd
}

func (o *listOptions) filter(base models.NotificationFilter) (models.NotificationFilter, error) {
	filter := base
	filter.Page = o.page
	if filter.Page < 1 {
		return filter, fmt.Errorf("page must be at least 1")
	}

	archived := o.archived
	filter.IsArchived = &archived
	filter.IsRead = nil
	if o.unread {
		read := false
		filter.IsRead = &read
	}

	filter.Priority = ""
	if o.priority != "" {
		p, err := models.ParsePriority(o.priority)
		if err != nil {
			return filter, err
		}
		filter.Priority = p
	}
	filter.Type = models.NotificationType(o.typ)

	return filter, nil
}

func archivedOnly(items []models.Notification) []models.Notification {
	archived := make([]models.Notification, 0, len(items))
	for _, n := range items {
		if n.IsArchived {
			archived = append(archived, n)
		}
	}
	return archived
}

func newNotificationsCountCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show notification counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.Notifications.Refresh(cmd.Context(), e.app.Notifications.DefaultFilter()); err != nil {
				return err
			}
			renderAggregate(e.out(), e.app.Notifications.Aggregate())
			return nil
		},
	}
}

type notificationAction func(ctx context.Context, id string) (*mutation.Pending, error)

func newNotificationActionCommand(e *env, use, short, done string, action notificationAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runNotificationAction(cmd.Context(), args[0], done, action)
		},
	}
}

func newNotificationsDeleteCommand(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				if !e.opts.IO.IsInteractive() {
					return fmt.Errorf("refusing to delete %s without --yes", id)
				}
				ok, err := e.opts.IO.Confirm(fmt.Sprintf("Delete notification %s permanently?", id))
				if err != nil {
					return err
				}
				if !ok {
					e.opts.IO.Println("Cancelled")
					return nil
				}
			}

			return e.runNotificationAction(cmd.Context(), id, "deleted", func(ctx context.Context, id string) (*mutation.Pending, error) {
				return e.app.Notifications.Delete(ctx, id)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func newNotificationsReadAllCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if e.app.Notifications.RefreshedAt().IsZero() {
				if err := e.app.Notifications.Refresh(ctx, e.app.Notifications.DefaultFilter()); err != nil {
					return err
				}
			}

			pending, err := e.app.Notifications.MarkAllRead(ctx)
			if err != nil {
				return err
			}
			if pending.Skipped() {
				e.opts.IO.Println("Already in progress")
				return nil
			}
			if err := pending.Wait(ctx); err != nil {
				return err
			}

			e.opts.IO.Println("All notifications marked as read")
			renderAggregate(e.out(), e.app.Notifications.Aggregate())
			return nil
		},
	}
}

func (e *env) runNotificationAction(ctx context.Context, id, done string, action notificationAction) error {
	if err := validation.ValidateEntityID(id); err != nil {
		return fmt.Errorf("invalid notification id: %w", err)
	}

	// Уведомление должно быть в кэше - иначе загружаем активный список
	if _, ok := e.app.Notifications.Store().Get(id); !ok {
		if err := e.app.Notifications.Refresh(ctx, e.app.Notifications.DefaultFilter()); err != nil {
			return err
		}
		if _, ok := e.app.Notifications.Store().Get(id); !ok {
			return fmt.Errorf("notification %s not found", id)
		}
	}

	pending, err := action(ctx, id)
	if err != nil {
		return err
	}
	if pending.Skipped() {
		e.opts.IO.Printf("Notification %s: nothing to change\n", id)
		return nil
	}
	if err := pending.Wait(ctx); err != nil {
		return err
	}

	e.opts.IO.Printf("Notification %s %s\n", id, done)
	renderAggregate(e.out(), e.app.Notifications.Aggregate())
	return nil
}
