package service

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"

	"tasktracker/m/domain"
)

// TaskService performs task CRUD against the store. It enforces no
// authorization; callers decide who may reach each method. Store errors are
// logged and returned to the caller unchanged.
type TaskService struct {
	db *sqlx.DB
}

func NewTask(db *sqlx.DB) *TaskService {
	return &TaskService{db: db}
}

// Projections join the owner row once at query time; no entity graphs.
const taskSelect = `SELECT t.id, t.title, t.description, t.status, t.user_id, t.created_at, t.updated_at,
       COALESCE(u.email, '') AS owner_email
  FROM tasks t
  LEFT JOIN users u ON u.id = t.user_id`

// GetByID returns the task projection, or nil when no task has that id.
func (s *TaskService) GetByID(id int64) (*domain.TaskDTO, error) {
	var dto domain.TaskDTO
	err := s.db.Get(&dto, taskSelect+` WHERE t.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Printf("task service: get by id %d: %v", id, err)
		return nil, err
	}
	return &dto, nil
}

// GetAll returns every task, newest first.
func (s *TaskService) GetAll() ([]domain.TaskDTO, error) {
	tasks := []domain.TaskDTO{}
	if err := s.db.Select(&tasks, taskSelect+` ORDER BY t.created_at DESC, t.id DESC`); err != nil {
		log.Printf("task service: get all: %v", err)
		return nil, err
	}
	return tasks, nil
}

// GetByUser returns the tasks owned by userID, newest first.
func (s *TaskService) GetByUser(userID int64) ([]domain.TaskDTO, error) {
	tasks := []domain.TaskDTO{}
	if err := s.db.Select(&tasks, taskSelect+` WHERE t.user_id = $1 ORDER BY t.created_at DESC, t.id DESC`, userID); err != nil {
		log.Printf("task service: get by user %d: %v", userID, err)
		return nil, err
	}
	return tasks, nil
}

// Create inserts a task owned by userID. Status always starts Pending no
// matter what the caller sent upstream.
func (s *TaskService) Create(userID int64, title, description string) (*domain.TaskDTO, error) {
	var id int64
	err := s.db.QueryRowx(`INSERT INTO tasks (title, description, status, user_id, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		title, description, domain.StatusPending, userID, domain.Now()).Scan(&id)
	if err != nil {
		log.Printf("task service: create for user %d: %v", userID, err)
		return nil, err
	}
	return s.GetByID(id)
}

// Update overwrites title, description and status wholesale and refreshes
// the update timestamp. Returns nil when no task has that id. There is no
// version check; a late writer silently wins.
func (s *TaskService) Update(id int64, title, description string, status domain.TaskStatus) (*domain.TaskDTO, error) {
	res, err := s.db.Exec(`UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = $4 WHERE id = $5`,
		title, description, status, domain.Now(), id)
	if err != nil {
		log.Printf("task service: update %d: %v", id, err)
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Printf("task service: update %d: rows affected: %v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}

// Delete removes the task permanently. The flag reports whether a row was
// actually deleted; deleting an unknown id is not an error.
func (s *TaskService) Delete(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Printf("task service: delete %d: %v", id, err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		log.Printf("task service: delete %d: rows affected: %v", id, err)
		return false, err
	}
	return affected > 0, nil
}
