package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"storyreel-client/internal/models"
)

func newInitCommand(ctx *appContext) *cobra.Command {
	var (
		conceptFlag  string
		toneFlag     string
		audienceFlag string
		moodFlag     string
		scenesFlag   int
		projectFlag  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a storyboard from a creative brief and mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := ctx.client.InitStoryboard(cmd.Context(), models.InitStoryboardRequest{
				Brief: models.CreativeBrief{
					Concept:  conceptFlag,
					Tone:     toneFlag,
					Audience: audienceFlag,
				},
				MoodID:     moodFlag,
				SceneCount: scenesFlag,
			})
			if err != nil {
				return err
			}

			ctx.store.ReplaceSnapshot(snapshot.Storyboard, snapshot.Scenes)

			fmt.Printf("storyboard %s created with %d scenes\n", snapshot.Storyboard.ID, len(snapshot.Scenes))
			for i, scene := range ctx.store.Scenes() {
				fmt.Printf("  %d. %s: %s\n", i+1, scene.ID, scene.Description)
			}

			if projectFlag != "" {
				if err := saveProject(ctx, projectFlag, snapshot.Storyboard); err != nil {
					return err
				}
				fmt.Printf("project %q saved\n", projectFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&conceptFlag, "concept", "", "Creative brief concept")
	cmd.Flags().StringVar(&toneFlag, "tone", "", "Creative brief tone")
	cmd.Flags().StringVar(&audienceFlag, "audience", "", "Target audience")
	cmd.Flags().StringVar(&moodFlag, "mood", "", "Selected mood board id")
	cmd.Flags().IntVar(&scenesFlag, "scenes", 0, "Number of scenes to plan (backend default when omitted)")
	cmd.Flags().StringVar(&projectFlag, "project", "", "Save the session under this project name")
	_ = cmd.MarkFlagRequired("concept")
	_ = cmd.MarkFlagRequired("mood")

	return cmd
}

func saveProject(ctx *appContext, name string, storyboard models.Storyboard) error {
	projects, err := ctx.projects()
	if err != nil {
		return err
	}
	userID, err := ctx.identity.CurrentUserID()
	if err != nil {
		return err
	}
	_, err = projects.Save(projectRecord(name, userID, storyboard))
	return err
}
