package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/focusboard/internal/history"
	"github.com/sandeepkv93/focusboard/internal/lines"
	"github.com/sandeepkv93/focusboard/internal/session"
	"github.com/sandeepkv93/focusboard/internal/storage"
	"github.com/sandeepkv93/focusboard/internal/webhook"
	"github.com/spf13/cobra"
)

func newShareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Send the whole session history to the configured webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Share(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shared %d submission(s)\n", n)
			return nil
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the session history grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			subs := a.History.All()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(webhook.Encode(subs, a.DisplayLocation))
			}
			if len(subs) == 0 {
				fmt.Fprintln(out, "no sessions recorded")
				return nil
			}
			for _, group := range history.GroupByDay(subs, a.DisplayLocation) {
				fmt.Fprintln(out, group.Date)
				for _, s := range group.Submissions {
					fmt.Fprintf(out, "  %s  %-30s %3d min\n", s.Timestamp.In(a.DisplayLocation).Format(webhook.TimeLayout), s.Title, s.Duration)
					for _, label := range lines.CompletedLabels(s.TaskContent) {
						fmt.Fprintf(out, "      [x] %s\n", label)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the webhook payloads instead of a listing")
	return cmd
}

func newClearHistoryCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear-history",
		Short: "Delete every recorded session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			a, err := openCLI(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			n := a.History.Len()
			if err := a.History.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d submission(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newTimerCmd(opts *rootOptions) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the focus timer without the dashboard",
		Long:  "Runs work and break phases in the terminal. Completed work phases are recorded without reflection answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := openCLI(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			stopRecording := a.RecordCompletedSessions()
			defer stopRecording()
			unsubscribe := a.Engine.Subscribe(func(ev session.Event) {
				switch typed := ev.(type) {
				case session.PhaseChanged:
					fmt.Fprintf(out, "%s  %s -> %s (cycle %d)\n", time.Now().Format("15:04:05"), typed.From.Label(), typed.To.Label(), typed.Cycle)
					if !a.Engine.State().Running && !once {
						a.Engine.Start()
					}
				case session.SessionCompleted:
					fmt.Fprintf(out, "work session %d complete, %d min recorded\n", typed.Cycle, typed.WorkMinutes)
					if once {
						cancel()
					}
				}
			})
			defer unsubscribe()

			a.StartTimer()
			a.Engine.Start()
			st := a.Engine.State()
			fmt.Fprintf(out, "%s started: %s (cycle %d/%d)\n", st.Phase.Label(), st.Clock(), st.CurrentCycle, a.Engine.Config().TotalCycles)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "stop after the first completed work phase")
	return cmd
}

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	var now bool
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run only the daily webhook export until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a, err := openCLI(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if now {
				sent, err := a.Exporter.RunNow(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "immediate export sent: %v\n", sent)
			}
			a.Exporter.Start()
			fmt.Fprintf(cmd.OutOrStdout(), "next export at %s\n", a.Exporter.NextRun().Format(time.RFC3339))
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&now, "now", false, "attempt today's export immediately before waiting")
	return cmd
}

func newStateCmd(opts *rootOptions) *cobra.Command {
	var (
		filter     storage.EntryListFilter
		showValues bool
	)
	cmd := &cobra.Command{
		Use:   "state",
		Short: "List the documents stored in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openCLI(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			docs, err := a.Store.Documents(cmd.Context(), filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, doc := range docs {
				fmt.Fprintf(out, "%-20s %7d bytes  %s\n", doc.Key, len(doc.Value), doc.UpdatedAt.In(a.DisplayLocation).Format(time.RFC3339))
				if showValues {
					fmt.Fprintf(out, "  %s\n", doc.Value)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Prefix, "prefix", "", "only keys starting with this prefix")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of documents")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "documents to skip")
	cmd.Flags().BoolVar(&showValues, "values", false, "print the raw stored values")
	return cmd
}
