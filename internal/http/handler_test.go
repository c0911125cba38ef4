package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	config "kanban-today.com/kanban-today/internal/configs"
	dto "kanban-today.com/kanban-today/internal/data_models"
	"kanban-today.com/kanban-today/internal/limiter"
	repository "kanban-today.com/kanban-today/internal/repositories"
	"kanban-today.com/kanban-today/internal/services"
	"kanban-today.com/kanban-today/pkg/constants"
)

var fixedNow = time.Date(2026, 7, 1, 10, 0, 0, 0, time.Local)

func dueIn(days int) string {
	return fixedNow.AddDate(0, 0, days).Format(constants.DateLayout)
}

type HandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *services.BoardService
	echo    *echo.Echo
}

func (s *HandlerTestSuite) SetupTest() {
	var err error
	s.db, err = config.OpenDatabase(":memory:")
	s.Require().NoError(err)

	clock := func() time.Time { return fixedNow }
	repo := repository.NewTaskRepository(s.db).WithClock(clock)
	s.service = services.NewBoardService(repo).WithClock(clock)

	s.echo = echo.New()
	Register(s.echo, NewHandler(s.service, 5), limiter.NewMemoryStore(), 10_000)
}

func (s *HandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *HandlerTestSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *HandlerTestSuite) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.do(req)
}

func (s *HandlerTestSuite) addTask(title string, dueDays int, priority, status string) int64 {
	task, err := s.service.AddTask(context.Background(), services.AddTaskInput{
		Title:    title,
		DueDate:  dueIn(dueDays),
		Priority: priority,
		Status:   status,
	})
	s.Require().NoError(err)
	return task.ID
}

func (s *HandlerTestSuite) TestIndex_RendersBoardAndToday() {
	s.addTask("Write report", 1, "high", "todo")
	s.addTask("Call plumber", 3, "low", "progress")

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(s.T(), body, "Write report")
	assert.Contains(s.T(), body, "Call plumber")
	assert.Contains(s.T(), body, "In progress (1)")
	assert.Contains(s.T(), body, "To do (1)")
	assert.Contains(s.T(), body, "score 53")
	assert.NotContains(s.T(), body, `class="error"`)
}

func (s *HandlerTestSuite) TestIndex_ShowsBadDateBanner() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/?error=bad_date", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "Due date must be a valid date")
}

func (s *HandlerTestSuite) TestAddTask_Success() {
	rec := s.postForm("/add", url.Values{
		"title":    {"Buy milk"},
		"due_date": {dueIn(2)},
	})

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/", rec.Header().Get(echo.HeaderLocation))

	board, err := s.service.Board(context.Background())
	s.Require().NoError(err)
	s.Require().Len(board.Columns[constants.StatusTodo], 1)

	task := board.Columns[constants.StatusTodo][0]
	assert.Equal(s.T(), "Buy milk", task.Title)
	assert.Equal(s.T(), constants.PriorityMid, task.Priority)
	assert.Equal(s.T(), "2026-07-01T10:00:00", task.CreatedAt)
}

func (s *HandlerTestSuite) TestAddTask_CoercesPriorityAndStatus() {
	rec := s.postForm("/add", url.Values{
		"title":    {"Odd"},
		"due_date": {dueIn(2)},
		"priority": {"HIGH"},
		"status":   {"someday"},
	})
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)

	board, err := s.service.Board(context.Background())
	s.Require().NoError(err)
	s.Require().Len(board.Columns[constants.StatusTodo], 1)
	assert.Equal(s.T(), constants.PriorityHigh, board.Columns[constants.StatusTodo][0].Priority)
}

func (s *HandlerTestSuite) TestAddTask_BadDateRedirectsWithoutWriting() {
	rec := s.postForm("/add", url.Values{
		"title":    {"Buy milk"},
		"due_date": {"31/12/2026"},
	})

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/?error=bad_date", rec.Header().Get(echo.HeaderLocation))

	open, err := s.service.Today(context.Background(), 10)
	s.Require().NoError(err)
	assert.Empty(s.T(), open)
}

func (s *HandlerTestSuite) TestAddTask_EmptyTitle() {
	rec := s.postForm("/add", url.Values{
		"title":    {"  "},
		"due_date": {dueIn(1)},
	})

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/?error=title_required", rec.Header().Get(echo.HeaderLocation))
}

func (s *HandlerTestSuite) TestDeleteTask_AlwaysRedirects() {
	id := s.addTask("Gone soon", 1, "mid", "todo")

	for _, path := range []string{"/delete/" + itoa(id), "/delete/" + itoa(id), "/delete/999", "/delete/abc"} {
		rec := s.do(httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(s.T(), http.StatusSeeOther, rec.Code, path)
		assert.Equal(s.T(), "/", rec.Header().Get(echo.HeaderLocation), path)
	}

	_, err := s.service.GetTask(context.Background(), id)
	assert.Error(s.T(), err)
}

func (s *HandlerTestSuite) TestMoveTask_DoneAndBack() {
	id := s.addTask("Ship it", 1, "mid", "todo")

	rec := s.postJSON("/move/"+itoa(id), `{"status":"done"}`)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"ok":true}`, rec.Body.String())

	task, err := s.service.GetTask(context.Background(), id)
	s.Require().NoError(err)
	assert.Equal(s.T(), constants.StatusDone, task.Status)
	assert.True(s.T(), task.Done)
	assert.NotNil(s.T(), task.DoneAt)

	rec = s.postJSON("/move/"+itoa(id), `{"status":"archived"}`)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	task, err = s.service.GetTask(context.Background(), id)
	s.Require().NoError(err)
	assert.Equal(s.T(), constants.StatusTodo, task.Status)
	assert.False(s.T(), task.Done)
	assert.Nil(s.T(), task.DoneAt)
}

func (s *HandlerTestSuite) TestMoveTask_UnknownIDIsAcknowledged() {
	rec := s.postJSON("/move/4242", `{"status":"progress"}`)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"ok":true}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestMoveTask_BadInput() {
	id := s.addTask("Ship it", 1, "mid", "todo")

	rec := s.postJSON("/move/"+itoa(id), `{"status":`)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "invalid JSON payload")

	rec = s.postJSON("/move/not-a-number", `{"status":"done"}`)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerTestSuite) TestMoveTask_MissingStatusKeepsTask() {
	id := s.addTask("Ship it", 1, "mid", "done")
	rec := s.postJSON("/move/"+itoa(id), `{"status":"done"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.postJSON("/move/"+itoa(id), `{}`)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.postJSON("/move/"+itoa(id), `{"status":null}`)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodPost, "/move/"+itoa(id), nil))
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	task, err := s.service.GetTask(context.Background(), id)
	s.Require().NoError(err)
	assert.Equal(s.T(), constants.StatusDone, task.Status)
	assert.True(s.T(), task.Done)
	assert.NotNil(s.T(), task.DoneAt)
}

func (s *HandlerTestSuite) TestToday_DefaultAndTop() {
	for i := 0; i < 7; i++ {
		s.addTask("task", i, "mid", "todo")
	}
	late := s.addTask("late", -2, "high", "todo")

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/today", nil))
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var items []dto.TodayItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Require().Len(items, 5)
	assert.Equal(s.T(), late, items[0].ID)
	assert.Equal(s.T(), 69, items[0].Score)
	assert.Equal(s.T(), "HIGH", items[0].Priority)
	assert.Equal(s.T(), 3, items[0].PriorityRaw)
	assert.Equal(s.T(), "todo", items[0].Status)
	assert.Equal(s.T(), dueIn(-2), items[0].DueDate)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/today?top=2", nil))
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(s.T(), items, 2)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/today?top=100", nil))
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(s.T(), items, 8)
}

func (s *HandlerTestSuite) TestToday_RawFieldNames() {
	s.addTask("T1", 1, "high", "todo")

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/today", nil))

	var raw []map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &raw))
	s.Require().Len(raw, 1)
	for _, key := range []string{"score", "id", "title", "due_date", "priority", "priority_raw", "status"} {
		assert.Contains(s.T(), raw[0], key)
	}
	assert.EqualValues(s.T(), 53, raw[0]["score"])
}

func (s *HandlerTestSuite) TestToday_InvalidTop() {
	for _, top := range []string{"-1", "many"} {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/today?top="+top, nil))
		assert.Equal(s.T(), http.StatusBadRequest, rec.Code, top)
	}
}

func (s *HandlerTestSuite) TestToday_ZeroTopIsEmpty() {
	s.addTask("T1", 1, "high", "todo")

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/today?top=0", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `[]`, rec.Body.String())
}

func (s *HandlerTestSuite) TestBoard_JSON() {
	s.addTask("a", 1, "mid", "todo")
	s.addTask("b", 1, "mid", "pending")
	done := s.addTask("c", 1, "mid", "progress")
	_, err := s.service.MoveTask(context.Background(), done, "done")
	s.Require().NoError(err)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/board", nil))
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var board dto.BoardResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &board))
	s.Require().Len(board.Columns, 4)
	assert.Equal(s.T(), "todo", board.Columns[0].Status)
	assert.Equal(s.T(), "done", board.Columns[3].Status)
	assert.Equal(s.T(), map[string]int{"todo": 1, "pending": 1, "progress": 0, "done": 1}, board.Counts)
}

func (s *HandlerTestSuite) TestResponsesCarryRequestID() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Len(s.T(), rec.Header().Get(echo.HeaderXRequestID), 36)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
