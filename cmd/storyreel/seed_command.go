package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"storyreel-client/internal/uploads"
)

func newSeedCommand(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Manage seed images for scene generation",
	}
	cmd.AddCommand(newSeedUploadCommand(ctx))
	return cmd
}

func newSeedUploadCommand(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <storyboard-id> <file>",
		Short: "Validate and upload a seed image, printing its public URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			storyboardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid storyboard id: %w", err)
			}

			filename := filepath.Base(args[1])
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			// Field checks run before any network call.
			if err := uploads.ValidateSeedImage(filename, data); err != nil {
				return err
			}

			uploader, err := ctx.uploader()
			if err != nil {
				return err
			}
			userID, err := ctx.identity.CurrentUserID()
			if err != nil {
				return err
			}

			url, err := uploader.UploadSeedImage(userID, storyboardID, filename, data)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}
	return cmd
}
