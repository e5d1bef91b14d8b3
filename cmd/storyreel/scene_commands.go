package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"storyreel-client/internal/store"
)

func newSceneCommand(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Operate on individual storyboard scenes",
	}
	cmd.AddCommand(newSceneGenerateCommand(ctx))
	cmd.AddCommand(newSceneSetTextCommand(ctx))
	cmd.AddCommand(newSceneSetDurationCommand(ctx))
	return cmd
}

func newSceneGenerateCommand(ctx *appContext) *cobra.Command {
	var storyboardFlag string

	cmd := &cobra.Command{
		Use:       "generate <image|video> <scene-id>",
		Short:     "Submit async image or video generation for a scene",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"image", "video"},
		RunE: func(cmd *cobra.Command, args []string) error {
			medium := store.Medium(args[0])
			if medium != store.MediumImage && medium != store.MediumVideo {
				return fmt.Errorf("medium must be image or video, got %q", args[0])
			}
			sceneID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid scene id: %w", err)
			}
			if err := loadStoryboardFlag(ctx, cmd, storyboardFlag); err != nil {
				return err
			}

			if medium == store.MediumImage {
				err = ctx.facade.GenerateImage(cmd.Context(), sceneID)
			} else {
				err = ctx.facade.GenerateVideo(cmd.Context(), sceneID)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s generation started for scene %s\n", medium, shortID(sceneID))
			return nil
		},
	}

	cmd.Flags().StringVar(&storyboardFlag, "storyboard", "", "Storyboard id the scene belongs to")
	_ = cmd.MarkFlagRequired("storyboard")
	return cmd
}

func newSceneSetTextCommand(ctx *appContext) *cobra.Command {
	var storyboardFlag string

	cmd := &cobra.Command{
		Use:   "set-text <scene-id> <description>",
		Short: "Update a scene's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid scene id: %w", err)
			}
			if err := loadStoryboardFlag(ctx, cmd, storyboardFlag); err != nil {
				return err
			}
			if err := ctx.facade.UpdateSceneText(cmd.Context(), sceneID, args[1]); err != nil {
				return err
			}
			fmt.Printf("scene %s text updated\n", shortID(sceneID))
			return nil
		},
	}

	cmd.Flags().StringVar(&storyboardFlag, "storyboard", "", "Storyboard id the scene belongs to")
	_ = cmd.MarkFlagRequired("storyboard")
	return cmd
}

func newSceneSetDurationCommand(ctx *appContext) *cobra.Command {
	var storyboardFlag string

	cmd := &cobra.Command{
		Use:   "set-duration <scene-id> <seconds>",
		Short: "Update a scene's clip duration (1-10 seconds)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid scene id: %w", err)
			}
			seconds, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			if err := loadStoryboardFlag(ctx, cmd, storyboardFlag); err != nil {
				return err
			}
			if err := ctx.facade.UpdateSceneDuration(cmd.Context(), sceneID, seconds); err != nil {
				return err
			}
			fmt.Printf("scene %s duration set to %ds\n", shortID(sceneID), seconds)
			return nil
		},
	}

	cmd.Flags().StringVar(&storyboardFlag, "storyboard", "", "Storyboard id the scene belongs to")
	_ = cmd.MarkFlagRequired("storyboard")
	return cmd
}

func loadStoryboardFlag(ctx *appContext, cmd *cobra.Command, value string) error {
	storyboardID, err := uuid.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid storyboard id: %w", err)
	}
	return ctx.store.LoadStoryboard(cmd.Context(), storyboardID)
}
