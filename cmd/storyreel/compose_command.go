package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"storyreel-client/internal/project"
)

func newComposeCommand(ctx *appContext) *cobra.Command {
	var (
		audioFlag   string
		projectFlag string
	)

	cmd := &cobra.Command{
		Use:   "compose <storyboard-id>",
		Short: "Submit the final composition job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyboardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid storyboard id: %w", err)
			}

			if err := ctx.store.LoadStoryboard(cmd.Context(), storyboardID); err != nil {
				return err
			}

			resp, err := ctx.facade.ComposeVideo(cmd.Context(), audioFlag)
			if err != nil {
				return err
			}
			fmt.Printf("composition job %s submitted\n", resp.JobID)
			if resp.FinalVideoURL != "" {
				fmt.Println(resp.FinalVideoURL)
			}

			if projectFlag != "" {
				record, err := advanceProject(ctx, projectFlag, func(record *project.Record) {
					record.Snapshot.RecordComposition(audioFlag, resp.JobID)
					if resp.FinalVideoURL != "" {
						record.Snapshot.RecordFinalVideo(resp.FinalVideoURL)
					}
				})
				if err != nil {
					return err
				}
				fmt.Printf("project %q advanced to step %s\n", record.Name, record.Snapshot.Step)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&audioFlag, "audio", "", "Music track URL for the final video")
	cmd.Flags().StringVar(&projectFlag, "project", "", "Project id to record the composition under")
	return cmd
}
