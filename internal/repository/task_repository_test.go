package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/taskflow-app/taskflow/internal/models"
)

func newMockTaskRepo(t *testing.T) (TaskRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTaskRepository(db), mock
}

func TestList_OrdersByDueDateNullsLast(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title"}).
		AddRow("t1", "u1", "first").
		AddRow("t2", "u1", "second")

	mock.ExpectQuery(regexp.QuoteMeta(
		"CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC")).
		WithArgs("u1").
		WillReturnRows(rows)

	tasks, err := repo.List("u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_PropagatesQueryError(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err := repo.List("u1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_MatchesTitleOrDescription(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title"}).
		AddRow("t1", "u1", "Pay rent")

	mock.ExpectQuery(regexp.QuoteMeta("title LIKE ? OR description LIKE ?")).
		WithArgs("u1", "%rent%", "%rent%").
		WillReturnRows(rows)

	tasks, err := repo.Search("u1", "rent")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay rent", tasks[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	mock.ExpectQuery("SELECT").
		WithArgs("t1", "u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID("u1", "t1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ReportsWhetherARowWasRemoved(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks`")).
		WithArgs("t1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Delete("u1", "t1")
	require.NoError(t, err)
	assert.True(t, removed)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `tasks`")).
		WithArgs("t1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err = repo.Delete("u1", "t1")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_PropagatesExecError(t *testing.T) {
	repo, mock := newMockTaskRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `tasks`")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(&models.Task{ID: "t1", UserID: "u1", Title: "x"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
