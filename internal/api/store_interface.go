package api

// Store is the persistence surface the router works against. The in-memory
// implementation backs tests and local runs; the SQLite implementation in
// internal/db backs real deployments. Bulk deletes take a limit and report
// how many rows they removed so account deletion can loop in batches.
type Store interface {
	AddUser(u *User)
	FindUserByEmail(email string) *User
	GetUser(id string) *User
	DeleteUser(id string) bool

	AddProfile(p *Profile)
	GetProfile(userID string) *Profile
	UpdateProfile(p *Profile) bool
	SetLearningStyle(userID, style string, prefs Preferences) bool
	DeleteProfile(userID string) bool

	AddTask(t *Task)
	GetTask(id string) *Task
	UpdateTask(t *Task) bool
	DeleteTask(id string) bool
	ListTasksByUser(userID string) []*Task
	DeleteTasksByUser(userID string, limit int) int

	AddNote(n *Note)
	GetNote(id string) *Note
	UpdateNote(n *Note) bool
	DeleteNote(id string) bool
	ListNotesByUser(userID string) []*Note
	DeleteNotesByUser(userID string, limit int) int

	AddActivity(a *StageActivity)
	GetActivity(id string) *StageActivity
	DeleteActivity(id string) bool
	ListActivitiesByUser(userID string) []*StageActivity
	DeleteActivitiesByUser(userID string, limit int) int

	AddConversation(c *Conversation)
	ListRecentConversations(userID string, n int) []*Conversation
	DeleteConversationsByUser(userID string, limit int) int

	AddAudit(e AuditEntry)
	ListAudit() []AuditEntry
}

var _ Store = (*memoryStore)(nil)
