package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"storyreel-client/internal/config"
	"storyreel-client/internal/project"
)

func newWatchCommand(ctx *appContext) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "watch <storyboard-id>",
		Short: "Follow generation progress live over the event stream",
		Long:  "Loads the storyboard, attaches to its event stream and keeps the local view reconciled with periodic snapshot resyncs. Exits once every scene has a completed clip.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyboardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid storyboard id: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := ctx.store.LoadStoryboard(runCtx, storyboardID); err != nil {
				return err
			}

			streamDone := make(chan struct{}, 1)
			ctx.store.SetStreamHandlers(
				func(message string) {
					fmt.Printf("stream error: %s\n", message)
				},
				func() {
					streamDone <- struct{}{}
				},
			)

			updates := ctx.store.Subscribe()
			ctx.store.ConnectSSE(storyboardID)
			defer ctx.store.DisconnectSSE()

			if err := ctx.recoverer.StartPeriodic(storyboardID); err != nil {
				return err
			}
			defer ctx.recoverer.StopPeriodic()

			fmt.Printf("watching storyboard %s (%d scenes)\n", storyboardID, ctx.store.SceneCount())
			renderScenes(ctx)

			for {
				select {
				case <-runCtx.Done():
					return runCtx.Err()
				case <-streamDone:
					fmt.Println("backend reported the storyboard stream complete")
					renderScenes(ctx)
					return markProjectComplete(ctx, projectFlag)
				case <-updates:
					if ctx.recoverer.IsRecovering() {
						fmt.Println("syncing...")
					}
					renderScenes(ctx)
					if ctx.store.AllReady() {
						fmt.Println("all scenes ready for composition")
						return markProjectComplete(ctx, projectFlag)
					}
					if err := ctx.store.Err(); err != nil {
						config.Log.WithError(err).Warn("store error while watching")
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project id to mark storyboard-complete on exit")
	return cmd
}

func markProjectComplete(ctx *appContext, projectID string) error {
	if projectID == "" {
		return nil
	}
	record, err := advanceProject(ctx, projectID, func(record *project.Record) {
		record.Snapshot.MarkStoryboardComplete()
	})
	if err != nil {
		return err
	}
	fmt.Printf("project %q marked storyboard-complete\n", record.Name)
	return nil
}
