package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-field-sync/internal/handler"
	"github.com/MKhiriev/go-field-sync/internal/server"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/tui"
	"github.com/MKhiriev/go-field-sync/internal/workers"
	"github.com/MKhiriev/go-field-sync/models"
)

func (a *App) pullCmd() *cobra.Command {
	var (
		kind        string
		permissions bool
		progress    bool
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Refresh the local cache from the remote API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var family models.EntityKind
			if kind != "" {
				k, err := models.ParseEntityKind(kind)
				if err != nil {
					return err
				}
				family = k
			}

			run := func(ctx context.Context, sc *service.SyncContext) (string, error) {
				sc.PermissionRefresh = permissions

				var (
					summary models.PullSummary
					err     error
				)
				if kind == "" {
					summary, err = a.services.SyncService.PullAll(ctx, sc)
				} else {
					summary, err = a.services.SyncService.PullFamily(ctx, sc, family)
				}
				if err != nil {
					return "", err
				}
				return summary.Message(), nil
			}

			return a.runSync(cmd, "Pull", progress, run)
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", "", "pull only this root kind (case or license)")
	f.BoolVar(&permissions, "permissions", false, "refresh permissions of unchanged records")
	f.BoolVar(&progress, "progress", false, "show a progress view")

	return cmd
}

func (a *App) pushCmd() *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Submit pending local changes to the remote API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run := func(ctx context.Context, sc *service.SyncContext) (string, error) {
				result := a.services.SyncService.PushAll(ctx, sc, a.services.SyncService.IsOnline(ctx))
				if !result.Success && !result.Offline {
					return result.Message(), fmt.Errorf("%w: %s", ErrPushIncomplete, result.Message())
				}
				return result.Message(), nil
			}

			return a.runSync(cmd, "Push", progress, run)
		},
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "show a progress view")

	return cmd
}

// runSync executes run either behind the progress view or inline, printing
// the final message in the latter case.
func (a *App) runSync(cmd *cobra.Command, title string, progress bool, run tui.RunFunc) error {
	ctx := cmd.Context()

	if progress {
		return tui.New(a.services.Session, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).RunSync(ctx, title, run)
	}

	sc := a.services.Session.Begin(nil)
	defer a.services.Session.End(sc)

	msg, err := run(ctx, sc)
	if msg != "" {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return err
}

func (a *App) forceSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-sync KIND ID",
		Short: "Push one record so that it overwrites the server copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseEntityKind(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			status := a.services.SyncService.ForceSyncRecord(ctx, kind, args[1], a.services.SyncService.IsOnline(ctx))
			if status != http.StatusOK {
				return fmt.Errorf("%w: %s %s", ErrForceSync, kind, args[1])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s synced\n", kind.DisplayName(), args[1])
			return nil
		},
	}
}

func (a *App) pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List records waiting to be pushed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.services.QueueService.ItemsToSync(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to sync")
				return nil
			}

			writePending(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func writePending(w io.Writer, items []models.PendingItem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tTITLE\tCHANGES\tFORCE\tMODIFIED")
	for _, it := range items {
		changes := ""
		for i, area := range it.Areas {
			if i > 0 {
				changes += ", "
			}
			changes += fmt.Sprintf("%s x%d", area.Area.DisplayName(), area.Count)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			it.RootKind, it.RootID, it.DisplayText, changes, it.IsForceSync, formatTime(it.LastModified))
	}
	_ = tw.Flush()
}

func (a *App) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List pushed changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return ErrInvalidLimit
			}

			entries, err := a.services.QueueService.ListHistory(cmd.Context(), uint64(limit))
			if err != nil {
				return err
			}

			writeHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show, 0 for all")

	return cmd
}

func writeHistory(w io.Writer, entries []models.HistoryEntry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYNCED\tKIND\tID\tBEFORE\tAFTER\tFORCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n",
			formatTime(e.SyncedAt), e.Kind, e.ContentItemID, e.OldDisplayText, e.NewDisplayText, e.IsForceSync)
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func (a *App) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the control API and the background sync job",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			handlers, err := handler.NewHandlers(a.services, a.cfg.Server, a.logger)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(handlers, workers.NewWorkers(a.services, a.cfg.Workers, a.logger), a.cfg.Server, a.logger)
			if err != nil {
				return err
			}

			a.logger.Info().Str("version", a.cfg.App.Version).Msg("starting control API")
			srv.RunServer()
			return nil
		},
	}
}
