package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"storyreel-client/internal/models"
	"storyreel-client/internal/project"
)

func newProjectsCommand(ctx *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage saved project sessions",
	}
	cmd.AddCommand(newProjectsListCommand(ctx))
	cmd.AddCommand(newProjectsOpenCommand(ctx))
	cmd.AddCommand(newProjectsDeleteCommand(ctx))
	return cmd
}

func newProjectsListCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, userID, err := projectsForUser(ctx)
			if err != nil {
				return err
			}
			records, err := projects.List(userID)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Project", "Name", "Step", "Storyboard", "Updated"})
			for _, record := range records {
				storyboard := ""
				if record.Snapshot.StoryboardID != uuid.Nil {
					storyboard = shortID(record.Snapshot.StoryboardID)
				}
				t.AppendRow(table.Row{
					shortID(record.ID),
					record.Name,
					record.Snapshot.Step,
					storyboard,
					record.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newProjectsOpenCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <project-id>",
		Short: "Resume a saved project session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id: %w", err)
			}
			projects, userID, err := projectsForUser(ctx)
			if err != nil {
				return err
			}
			record, err := projects.Get(projectID, userID)
			if err != nil {
				return err
			}

			fmt.Printf("project %q at step %s\n", record.Name, record.Snapshot.Step)
			if record.Snapshot.StoryboardID == uuid.Nil {
				switch record.Snapshot.Step {
				case models.StepChat:
					fmt.Println("still in the brief chat; run init once the brief is settled")
				case models.StepMood:
					fmt.Println("mood not picked yet; run init with --mood to build the storyboard")
				default:
					fmt.Println("no storyboard yet; run init to create one")
				}
				return nil
			}

			// A resumed session recovers from the backend snapshot, so no
			// stale optimistic state survives the reload.
			if err := ctx.recoverer.Recover(cmd.Context(), record.Snapshot.StoryboardID); err != nil {
				return err
			}
			renderScenes(ctx)
			return nil
		},
	}
}

func newProjectsDeleteCommand(ctx *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id: %w", err)
			}
			projects, userID, err := projectsForUser(ctx)
			if err != nil {
				return err
			}
			if err := projects.Delete(projectID, userID); err != nil {
				return err
			}
			fmt.Printf("project %s deleted\n", shortID(projectID))
			return nil
		},
	}
}

// advanceProject loads a record by id, applies the snapshot mutation
// and saves it back, returning the stored row.
func advanceProject(ctx *appContext, projectID string, mutate func(*project.Record)) (*project.Record, error) {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project id: %w", err)
	}
	projects, userID, err := projectsForUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := projects.Get(id, userID)
	if err != nil {
		return nil, err
	}
	mutate(record)
	return projects.Save(*record)
}

func projectsForUser(ctx *appContext) (*project.Store, uuid.UUID, error) {
	projects, err := ctx.projects()
	if err != nil {
		return nil, uuid.Nil, err
	}
	userID, err := ctx.identity.CurrentUserID()
	if err != nil {
		return nil, uuid.Nil, err
	}
	return projects, userID, nil
}

func projectRecord(name string, userID uuid.UUID, storyboard models.Storyboard) project.Record {
	return project.Record{
		UserID: userID,
		Name:   name,
		Snapshot: models.AppStateSnapshot{
			Step:           models.StepStoryboard,
			Brief:          storyboard.Brief,
			SelectedMoodID: storyboard.MoodID,
			StoryboardID:   storyboard.ID,
		},
	}
}
