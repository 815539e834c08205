package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cartable-app/cartable/internal/api"
)

// SQLiteStore implements api.Store on a single SQLite database. The Store
// interface returns bare values; row-level failures are logged here and
// surface to callers as "not found" style results, matching the in-memory
// store's behavior.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func (s *SQLiteStore) AddUser(u *api.User) {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.CreatedAt,
	)
	s.logErr("add user", err)
}

func (s *SQLiteStore) scanUser(row *sql.Row) *api.User {
	var u api.User
	err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt)
	if err != nil {
		s.logErr("scan user", err)
		return nil
	}
	return &u
}

func (s *SQLiteStore) FindUserByEmail(email string) *api.User {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, created_at FROM users WHERE email = ?`, email)
	return s.scanUser(row)
}

func (s *SQLiteStore) GetUser(id string) *api.User {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, created_at FROM users WHERE id = ?`, id)
	return s.scanUser(row)
}

func (s *SQLiteStore) DeleteUser(id string) bool {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete user", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) AddProfile(p *api.Profile) {
	completed := false
	var testDate sql.NullTime
	if p.Preferences != nil {
		completed = p.Preferences.CompletedTest
		testDate = sql.NullTime{Time: p.Preferences.TestDate, Valid: !p.Preferences.TestDate.IsZero()}
	}
	_, err := s.db.Exec(
		`INSERT INTO profiles (user_id, first_name, birth_date, filiere, parent_email,
		    parental_consent_validated, learning_style, completed_test, test_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.FirstName, p.BirthDate, p.Filiere, p.ParentEmail,
		boolToInt64(p.ParentalConsentValidated), p.LearningStyle,
		boolToInt64(completed), testDate, p.CreatedAt, p.UpdatedAt,
	)
	s.logErr("add profile", err)
}

func (s *SQLiteStore) GetProfile(userID string) *api.Profile {
	row := s.db.QueryRow(
		`SELECT user_id, first_name, birth_date, filiere, parent_email,
		    parental_consent_validated, learning_style, completed_test, test_date, created_at, updated_at
		 FROM profiles WHERE user_id = ?`, userID)
	var p api.Profile
	var consent, completed int64
	var testDate sql.NullTime
	err := row.Scan(&p.UserID, &p.FirstName, &p.BirthDate, &p.Filiere, &p.ParentEmail,
		&consent, &p.LearningStyle, &completed, &testDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		s.logErr("scan profile", err)
		return nil
	}
	p.ParentalConsentValidated = int64ToBool(consent)
	if int64ToBool(completed) || testDate.Valid {
		p.Preferences = &api.Preferences{CompletedTest: int64ToBool(completed), TestDate: testDate.Time}
	}
	return &p
}

func (s *SQLiteStore) UpdateProfile(p *api.Profile) bool {
	res, err := s.db.Exec(
		`UPDATE profiles SET first_name = ?, birth_date = ?, filiere = ?, parent_email = ?,
		    parental_consent_validated = ?, updated_at = ?
		 WHERE user_id = ?`,
		p.FirstName, p.BirthDate, p.Filiere, p.ParentEmail,
		boolToInt64(p.ParentalConsentValidated), p.UpdatedAt, p.UserID,
	)
	if err != nil {
		s.logErr("update profile", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) SetLearningStyle(userID, style string, prefs api.Preferences) bool {
	res, err := s.db.Exec(
		`UPDATE profiles SET learning_style = ?, completed_test = ?, test_date = ?, updated_at = ?
		 WHERE user_id = ?`,
		style, boolToInt64(prefs.CompletedTest), prefs.TestDate, time.Now().UTC(), userID,
	)
	if err != nil {
		s.logErr("set learning style", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteProfile(userID string) bool {
	res, err := s.db.Exec(`DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		s.logErr("delete profile", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) AddTask(t *api.Task) {
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, user_id, title, description, subject, deadline, priority, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Subject, t.Deadline, t.Priority,
		boolToInt64(t.Completed), t.CreatedAt,
	)
	s.logErr("add task", err)
}

func (s *SQLiteStore) scanTask(scan func(dest ...any) error) (*api.Task, error) {
	var t api.Task
	var completed int64
	err := scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Subject, &t.Deadline,
		&t.Priority, &completed, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Completed = int64ToBool(completed)
	return &t, nil
}

const taskColumns = `id, user_id, title, description, subject, deadline, priority, completed, created_at`

func (s *SQLiteStore) GetTask(id string) *api.Task {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := s.scanTask(row.Scan)
	if err != nil {
		s.logErr("scan task", err)
		return nil
	}
	return t
}

func (s *SQLiteStore) UpdateTask(t *api.Task) bool {
	res, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, subject = ?, deadline = ?, priority = ?, completed = ?
		 WHERE id = ?`,
		t.Title, t.Description, t.Subject, t.Deadline, t.Priority, boolToInt64(t.Completed), t.ID,
	)
	if err != nil {
		s.logErr("update task", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteTask(id string) bool {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete task", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) ListTasksByUser(userID string) []*api.Task {
	rows, err := s.db.Query(`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY deadline, id`, userID)
	if err != nil {
		s.logErr("list tasks", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Task{}
	for rows.Next() {
		t, err := s.scanTask(rows.Scan)
		if err != nil {
			s.logErr("scan task row", err)
			continue
		}
		out = append(out, t)
	}
	s.logErr("iterate tasks", rows.Err())
	return out
}

func (s *SQLiteStore) DeleteTasksByUser(userID string, limit int) int {
	return s.deleteByUserBatch("tasks", userID, limit)
}

// deleteByUserBatch removes at most limit rows of one user from table.
// The table name always comes from a compile-time constant caller.
func (s *SQLiteStore) deleteByUserBatch(table, userID string, limit int) int {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE id IN (SELECT id FROM %s WHERE user_id = ? LIMIT ?)`, table, table)
	res, err := s.db.Exec(query, userID, limit)
	if err != nil {
		s.logErr("batch delete "+table, err)
		return 0
	}
	n, _ := res.RowsAffected()
	return int(n)
}

func (s *SQLiteStore) AddNote(n *api.Note) {
	_, err := s.db.Exec(
		`INSERT INTO notes (id, user_id, title, content, subject, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, n.Subject, n.Color, n.CreatedAt, n.UpdatedAt,
	)
	s.logErr("add note", err)
}

const noteColumns = `id, user_id, title, content, subject, color, created_at, updated_at`

func (s *SQLiteStore) scanNote(scan func(dest ...any) error) (*api.Note, error) {
	var n api.Note
	err := scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Subject, &n.Color, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *SQLiteStore) GetNote(id string) *api.Note {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := s.scanNote(row.Scan)
	if err != nil {
		s.logErr("scan note", err)
		return nil
	}
	return n
}

func (s *SQLiteStore) UpdateNote(n *api.Note) bool {
	res, err := s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, subject = ?, color = ?, updated_at = ? WHERE id = ?`,
		n.Title, n.Content, n.Subject, n.Color, n.UpdatedAt, n.ID,
	)
	if err != nil {
		s.logErr("update note", err)
		return false
	}
	count, _ := res.RowsAffected()
	return count > 0
}

func (s *SQLiteStore) DeleteNote(id string) bool {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete note", err)
		return false
	}
	count, _ := res.RowsAffected()
	return count > 0
}

func (s *SQLiteStore) ListNotesByUser(userID string) []*api.Note {
	rows, err := s.db.Query(`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY updated_at DESC, id`, userID)
	if err != nil {
		s.logErr("list notes", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Note{}
	for rows.Next() {
		n, err := s.scanNote(rows.Scan)
		if err != nil {
			s.logErr("scan note row", err)
			continue
		}
		out = append(out, n)
	}
	s.logErr("iterate notes", rows.Err())
	return out
}

func (s *SQLiteStore) DeleteNotesByUser(userID string, limit int) int {
	return s.deleteByUserBatch("notes", userID, limit)
}

func (s *SQLiteStore) AddActivity(a *api.StageActivity) {
	_, err := s.db.Exec(
		`INSERT INTO stage_activities (id, user_id, hours_worked, description, activity_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.HoursWorked, a.Description, a.ActivityDate, a.CreatedAt,
	)
	s.logErr("add activity", err)
}

const activityColumns = `id, user_id, hours_worked, description, activity_date, created_at`

func (s *SQLiteStore) GetActivity(id string) *api.StageActivity {
	row := s.db.QueryRow(`SELECT `+activityColumns+` FROM stage_activities WHERE id = ?`, id)
	var a api.StageActivity
	err := row.Scan(&a.ID, &a.UserID, &a.HoursWorked, &a.Description, &a.ActivityDate, &a.CreatedAt)
	if err != nil {
		s.logErr("scan activity", err)
		return nil
	}
	return &a
}

func (s *SQLiteStore) DeleteActivity(id string) bool {
	res, err := s.db.Exec(`DELETE FROM stage_activities WHERE id = ?`, id)
	if err != nil {
		s.logErr("delete activity", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) ListActivitiesByUser(userID string) []*api.StageActivity {
	rows, err := s.db.Query(
		`SELECT `+activityColumns+` FROM stage_activities WHERE user_id = ? ORDER BY activity_date DESC, created_at DESC`,
		userID)
	if err != nil {
		s.logErr("list activities", err)
		return nil
	}
	defer rows.Close()
	out := []*api.StageActivity{}
	for rows.Next() {
		var a api.StageActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.HoursWorked, &a.Description, &a.ActivityDate, &a.CreatedAt); err != nil {
			s.logErr("scan activity row", err)
			continue
		}
		out = append(out, &a)
	}
	s.logErr("iterate activities", rows.Err())
	return out
}

func (s *SQLiteStore) DeleteActivitiesByUser(userID string, limit int) int {
	return s.deleteByUserBatch("stage_activities", userID, limit)
}

func (s *SQLiteStore) AddConversation(c *api.Conversation) {
	_, err := s.db.Exec(
		`INSERT INTO conversations (id, user_id, message, response, model_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Message, c.Response, c.ModelUsed, c.CreatedAt,
	)
	s.logErr("add conversation", err)
}

// ListRecentConversations fetches the newest n rows, then flips them so the
// caller sees chronological order.
func (s *SQLiteStore) ListRecentConversations(userID string, n int) []*api.Conversation {
	rows, err := s.db.Query(
		`SELECT id, user_id, message, response, model_used, created_at
		 FROM conversations WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, n)
	if err != nil {
		s.logErr("list conversations", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Conversation{}
	for rows.Next() {
		var c api.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &c.ModelUsed, &c.CreatedAt); err != nil {
			s.logErr("scan conversation row", err)
			continue
		}
		out = append(out, &c)
	}
	s.logErr("iterate conversations", rows.Err())
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s *SQLiteStore) DeleteConversationsByUser(userID string, limit int) int {
	return s.deleteByUserBatch("conversations", userID, limit)
}

func (s *SQLiteStore) AddAudit(e api.AuditEntry) {
	_, err := s.db.Exec(
		`INSERT INTO audit_log (time, actor, action, target, note) VALUES (?, ?, ?, ?, ?)`,
		e.Time, e.Actor, e.Action, e.Target, e.Note,
	)
	s.logErr("add audit", err)
}

func (s *SQLiteStore) ListAudit() []api.AuditEntry {
	rows, err := s.db.Query(`SELECT time, actor, action, target, note FROM audit_log ORDER BY id`)
	if err != nil {
		s.logErr("list audit", err)
		return nil
	}
	defer rows.Close()
	out := []api.AuditEntry{}
	for rows.Next() {
		var e api.AuditEntry
		if err := rows.Scan(&e.Time, &e.Actor, &e.Action, &e.Target, &e.Note); err != nil {
			s.logErr("scan audit row", err)
			continue
		}
		out = append(out, e)
	}
	s.logErr("iterate audit", rows.Err())
	return out
}
