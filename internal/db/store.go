package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ContentSchema creates the tables a content pack is expected to carry.
const ContentSchema = `
	CREATE TABLE IF NOT EXISTS modules (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		lecture TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS questions (
		moduleId TEXT NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		prompt TEXT NOT NULL,
		options TEXT NOT NULL,
		correct INTEGER NOT NULL,
		PRIMARY KEY (moduleId, position)
	);
`

// Store provides read-only access to a content pack database.
type Store struct {
	db *sql.DB
}

// Open opens the content pack in read-only mode.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Modules returns every module ordered by position.
func (s *Store) Modules() ([]ModuleRow, error) {
	rows, err := s.db.Query(`
		SELECT id, position, title, description, lecture, color
		FROM modules
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query modules: %w", err)
	}
	defer rows.Close()

	var modules []ModuleRow
	for rows.Next() {
		var m ModuleRow
		if err := rows.Scan(&m.ID, &m.Position, &m.Title, &m.Description, &m.Lecture, &m.Color); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// QuestionsForModule returns the quiz for a module, ordered by position.
func (s *Store) QuestionsForModule(moduleID string) ([]QuestionRow, error) {
	rows, err := s.db.Query(`
		SELECT moduleId, position, prompt, options, correct
		FROM questions
		WHERE moduleId = ?
		ORDER BY position ASC
	`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []QuestionRow
	for rows.Next() {
		var q QuestionRow
		var options string
		if err := rows.Scan(&q.ModuleID, &q.Position, &q.Prompt, &options, &q.Correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
			return nil, fmt.Errorf("decode options for %s/%d: %w", moduleID, q.Position, err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
