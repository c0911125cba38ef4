package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-today.com/kanban-today/internal/services"
	"kanban-today.com/kanban-today/pkg/constants"
	model "kanban-today.com/kanban-today/pkg/models"
)

func TestPrintToday(t *testing.T) {
	var out bytes.Buffer
	ranked := []services.ScoredTask{
		{Score: 69, Task: model.Task{ID: 2, Title: "late", DueDate: "2026-07-01", Priority: constants.PriorityHigh, Status: constants.StatusTodo}},
		{Score: 43, Task: model.Task{ID: 7, Title: "plumber", DueDate: "2026-07-05", Priority: constants.PriorityLow, Status: constants.StatusProgress}},
	}

	require.NoError(t, printToday(&out, ranked))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"SCORE", "ID", "TITLE", "DUE", "PRIORITY", "STATUS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"69", "2", "late", "2026-07-01", "HIGH", "todo"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"43", "7", "plumber", "2026-07-05", "LOW", "progress"}, strings.Fields(lines[2]))
}

func TestTodayCommand_EndToEnd(t *testing.T) {
	dsn := t.TempDir() + "/tasks.db"
	t.Setenv("DATABASE_DSN", dsn)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "schema version 3")

	out.Reset()
	rootCmd.SetArgs([]string{"today", "--date", "2026-07-01", "--top", "3"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "SCORE  ID  TITLE  DUE  PRIORITY  STATUS", strings.TrimSpace(out.String()))

	rootCmd.SetArgs([]string{"today", "--date", "July 1st"})
	assert.Error(t, rootCmd.Execute())
}
