package api

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type User struct {
	ID        string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

type Preferences struct {
	CompletedTest bool      `json:"completed_test"`
	TestDate      time.Time `json:"test_date"`
}

type Profile struct {
	UserID                   string       `json:"user_id"`
	FirstName                string       `json:"first_name"`
	BirthDate                string       `json:"birth_date,omitempty"`
	Filiere                  string       `json:"filiere"`
	ParentEmail              string       `json:"parent_email,omitempty"`
	ParentalConsentValidated bool         `json:"parental_consent_validated"`
	LearningStyle            string       `json:"learning_style,omitempty"`
	Preferences              *Preferences `json:"preferences,omitempty"`
	CreatedAt                time.Time    `json:"created_at"`
	UpdatedAt                time.Time    `json:"updated_at"`
}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Deadline    string    `json:"deadline"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StageActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	HoursWorked  float64   `json:"hours_worked"`
	Description  string    `json:"description,omitempty"`
	ActivityDate string    `json:"activity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	ModelUsed string    `json:"model_used"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditEntry struct {
	Time   time.Time `json:"time"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Target string    `json:"target"`
	Note   string    `json:"note,omitempty"`
}

type memoryStore struct {
	mu            sync.RWMutex
	usersByEmail  map[string]*User
	usersByID     map[string]*User
	profiles      map[string]*Profile
	tasks         map[string]*Task
	notes         map[string]*Note
	activities    map[string]*StageActivity
	conversations []*Conversation
	audit         []AuditEntry
}

// NewMemoryStore builds the in-memory Store used by tests and local runs.
func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByEmail: map[string]*User{},
		usersByID:    map[string]*User{},
		profiles:     map[string]*Profile{},
		tasks:        map[string]*Task{},
		notes:        map[string]*Note{},
		activities:   map[string]*StageActivity{},
	}
}

func (s *memoryStore) AddUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[strings.ToLower(u.Email)] = u
	s.usersByID[u.ID] = u
}

func (s *memoryStore) FindUserByEmail(email string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)]
}

func (s *memoryStore) GetUser(id string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByID[id]
}

func (s *memoryStore) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usersByID[id]
	if !ok {
		return false
	}
	delete(s.usersByID, id)
	delete(s.usersByEmail, strings.ToLower(u.Email))
	return true
}

func (s *memoryStore) AddProfile(p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

func (s *memoryStore) GetProfile(userID string) *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[userID]
}

func (s *memoryStore) UpdateProfile(p *Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; !ok {
		return false
	}
	s.profiles[p.UserID] = p
	return true
}

func (s *memoryStore) SetLearningStyle(userID, style string, prefs Preferences) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return false
	}
	p.LearningStyle = style
	cp := prefs
	p.Preferences = &cp
	p.UpdatedAt = time.Now().UTC()
	return true
}

func (s *memoryStore) DeleteProfile(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		return false
	}
	delete(s.profiles, userID)
	return true
}

func (s *memoryStore) AddTask(t *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func (s *memoryStore) GetTask(id string) *Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks[id]
}

func (s *memoryStore) UpdateTask(t *Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; !ok {
		return false
	}
	s.tasks[t.ID] = t
	return true
}

func (s *memoryStore) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

func (s *memoryStore) ListTasksByUser(userID string) []*Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Task{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	// deadline ascending, id as tie-break for stable pagination
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deadline != out[j].Deadline {
			return out[i].Deadline < out[j].Deadline
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memoryStore) DeleteTasksByUser(userID string, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, t := range s.tasks {
		if removed >= limit {
			break
		}
		if t.UserID == userID {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

func (s *memoryStore) AddNote(n *Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n
}

func (s *memoryStore) GetNote(id string) *Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes[id]
}

func (s *memoryStore) UpdateNote(n *Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[n.ID]; !ok {
		return false
	}
	s.notes[n.ID] = n
	return true
}

func (s *memoryStore) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return false
	}
	delete(s.notes, id)
	return true
}

func (s *memoryStore) ListNotesByUser(userID string) []*Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Note{}
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memoryStore) DeleteNotesByUser(userID string, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, n := range s.notes {
		if removed >= limit {
			break
		}
		if n.UserID == userID {
			delete(s.notes, id)
			removed++
		}
	}
	return removed
}

func (s *memoryStore) AddActivity(a *StageActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = a
}

func (s *memoryStore) GetActivity(id string) *StageActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities[id]
}

func (s *memoryStore) DeleteActivity(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[id]; !ok {
		return false
	}
	delete(s.activities, id)
	return true
}

func (s *memoryStore) ListActivitiesByUser(userID string) []*StageActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*StageActivity{}
	for _, a := range s.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ActivityDate != out[j].ActivityDate {
			return out[i].ActivityDate > out[j].ActivityDate
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *memoryStore) DeleteActivitiesByUser(userID string, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, a := range s.activities {
		if removed >= limit {
			break
		}
		if a.UserID == userID {
			delete(s.activities, id)
			removed++
		}
	}
	return removed
}

func (s *memoryStore) AddConversation(c *Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append(s.conversations, c)
}

// ListRecentConversations returns the user's last n turns oldest first.
func (s *memoryStore) ListRecentConversations(userID string, n int) []*Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mine := []*Conversation{}
	for _, c := range s.conversations {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	if len(mine) > n {
		mine = mine[len(mine)-n:]
	}
	return mine
}

func (s *memoryStore) DeleteConversationsByUser(userID string, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	kept := make([]*Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.UserID == userID && removed < limit {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.conversations = kept
	return removed
}

func (s *memoryStore) AddAudit(e AuditEntry) {
	s.mu.Lock()
	s.audit = append(s.audit, e)
	s.mu.Unlock()
}

func (s *memoryStore) ListAudit() []AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}
