package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	config "kanban-today.com/kanban-today/internal/configs"
	repository "kanban-today.com/kanban-today/internal/repositories"
	"kanban-today.com/kanban-today/internal/services"
	"kanban-today.com/kanban-today/pkg/constants"
)

var (
	todayTop  int
	todayDate string
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print the tasks that deserve attention next",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		ref := time.Now()
		if todayDate != "" {
			parsed, err := time.ParseInLocation(constants.DateLayout, todayDate, time.Local)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			ref = parsed
		}

		top := todayTop
		if top <= 0 {
			top = cfg.TodayLimit
		}

		db, err := config.OpenDatabase(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		boardService := services.NewBoardService(repository.NewTaskRepository(db))
		ranked, err := boardService.TodayAt(cmd.Context(), ref, top)
		if err != nil {
			return err
		}

		return printToday(cmd.OutOrStdout(), ranked)
	},
}

func printToday(out io.Writer, ranked []services.ScoredTask) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tTITLE\tDUE\tPRIORITY\tSTATUS")
	for _, st := range ranked {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			st.Score, st.Task.ID, st.Task.Title, st.Task.DueDate, st.Task.Priority.Label(), st.Task.Status)
	}
	return w.Flush()
}

func init() {
	todayCmd.Flags().IntVar(&todayTop, "top", 0, "number of tasks to show (default TODAY_LIMIT)")
	todayCmd.Flags().StringVar(&todayDate, "date", "", "reference date, YYYY-MM-DD (default today)")
	rootCmd.AddCommand(todayCmd)
}
