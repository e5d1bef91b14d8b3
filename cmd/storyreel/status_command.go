package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"storyreel-client/internal/models"
)

func newStatusCommand(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <storyboard-id>",
		Short: "Show per-scene generation status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyboardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid storyboard id: %w", err)
			}

			if err := ctx.store.LoadStoryboard(cmd.Context(), storyboardID); err != nil {
				return err
			}

			renderScenes(ctx)
			return nil
		},
	}
	return cmd
}

func renderScenes(ctx *appContext) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Scene", "Stage", "Image", "Video", "Dur", "Error"})
	for i, scene := range ctx.store.Scenes() {
		t.AppendRow(table.Row{
			i + 1,
			shortID(scene.ID),
			scene.State,
			statusCell(scene.Generation.Image, scene.Progress),
			statusCell(scene.Generation.Video, scene.Progress),
			fmt.Sprintf("%ds", scene.Duration),
			scene.ErrorMessage,
		})
	}
	t.Render()
	fmt.Printf("ready %d/%d", ctx.store.ReadyCount(), ctx.store.SceneCount())
	if errored := ctx.store.ErrorCount(); errored > 0 {
		fmt.Printf(", %d failed", errored)
	}
	fmt.Println()
}

func statusCell(status models.GenStatus, progress int) string {
	if status == models.StatusGenerating && progress > 0 {
		return fmt.Sprintf("%s %d%%", status, progress)
	}
	return string(status)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
