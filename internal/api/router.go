package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cartable-app/cartable/internal/ai"
	"github.com/cartable-app/cartable/internal/middleware"
	"github.com/cartable-app/cartable/internal/services"
)

type Router struct {
	store      Store
	auth       *services.AuthService
	profile    *services.ProfileService
	chat       *services.ChatService
	tasks      *services.TaskService
	notes      *services.NoteService
	internship *services.InternshipService
	account    *services.AccountService
}

// NewRouter wires every service onto one store. client may be nil when no
// API key is configured; chat then fails with a config error instead of
// taking the whole server down.
func NewRouter(store Store, client *ai.Client, model string) *Router {
	return &Router{
		store:      store,
		auth:       services.NewAuthService(newAuthStoreAdapter(store), middleware.SignToken),
		profile:    services.NewProfileService(newProfileStoreAdapter(store)),
		chat:       services.NewChatService(newChatStoreAdapter(store), newGeneratorAdapter(client), model),
		tasks:      services.NewTaskService(newTaskStoreAdapter(store)),
		notes:      services.NewNoteService(newNoteStoreAdapter(store)),
		internship: services.NewInternshipService(newInternshipStoreAdapter(store)),
		account:    services.NewAccountService(newAccountStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)        // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)              // POST
	mux.HandleFunc("/api/auth/me", rt.handleMe)                    // GET
	mux.HandleFunc("/api/survey/questions", rt.handleQuestions)    // GET
	mux.HandleFunc("/api/survey/answers", rt.handleSurveyAnswers)  // POST
	mux.HandleFunc("/api/chat", rt.handleChat)                     // POST
	mux.HandleFunc("/api/chat/history", rt.handleChatHistory)      // GET
	mux.HandleFunc("/api/chat/suggestions", rt.handleSuggestions)  // GET
	mux.HandleFunc("/api/tasks", rt.handleTasks)                   // GET, POST
	mux.HandleFunc("/api/tasks/", rt.handleTaskScoped)             // PUT/DELETE /api/tasks/{id}, POST .../toggle
	mux.HandleFunc("/api/notes", rt.handleNotes)                   // GET, POST
	mux.HandleFunc("/api/notes/", rt.handleNoteScoped)             // PUT/DELETE /api/notes/{id}
	mux.HandleFunc("/api/internship/activities", rt.handleActivities)        // GET, POST
	mux.HandleFunc("/api/internship/activities/", rt.handleActivityScoped)   // DELETE /api/internship/activities/{id}
	mux.HandleFunc("/api/internship/summary", rt.handleInternshipSummary)    // GET
	mux.HandleFunc("/api/profile", rt.handleProfile)               // GET, PUT
	mux.HandleFunc("/api/account", rt.handleAccount)               // DELETE
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are logged and surfaced as a bare 500 so internals never
// leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch se.Code {
	case services.ErrorInvalid:
		status = http.StatusBadRequest
	case services.ErrorUnauthorized:
		status = http.StatusUnauthorized
	case services.ErrorForbidden:
		status = http.StatusForbidden
	case services.ErrorNotFound:
		status = http.StatusNotFound
	case services.ErrorConflict:
		status = http.StatusConflict
	case services.ErrorBadGateway:
		status = http.StatusBadGateway
	case services.ErrorConfig, services.ErrorOutOfRange:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"error": string(se.Code), "message": se.Message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeServiceError(w, services.NewInvalidError("invalid JSON body"))
		return false
	}
	return true
}

func userID(r *http.Request) string {
	uid, _ := middleware.UserIDFromContext(r.Context())
	return uid
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in services.RegisterInput
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := rt.auth.Register(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rt.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: res.UserID, Action: "register", Target: res.UserID})
	writeJSON(w, http.StatusCreated, res)
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := rt.auth.Login(in.Email, in.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/auth/me
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.NewUnauthorizedError("unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": claims.UID, "email": claims.Email})
}

// GET /api/survey/questions
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": services.Questions()})
}

// POST /api/survey/answers
func (rt *Router) handleSurveyAnswers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Answers []int `json:"answers"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	uid := userID(r)
	outcome, err := rt.profile.CompleteSurvey(uid, in.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rt.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: uid, Action: "survey.complete", Target: outcome.LearningStyle})
	writeJSON(w, http.StatusOK, outcome)
}

// POST /api/chat
func (rt *Router) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var in struct {
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := rt.chat.Chat(r.Context(), userID(r), in.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/chat/history?limit=n
func (rt *Router) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeServiceError(w, services.NewInvalidError("limit must be a positive integer"))
			return
		}
		limit = n
	}
	turns, err := rt.chat.History(userID(r), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": turns})
}

// GET /api/chat/suggestions
func (rt *Router) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sugg, err := rt.chat.Suggestions(userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": sugg})
}

// GET|POST /api/tasks
func (rt *Router) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := rt.tasks.List(userID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
	case http.MethodPost:
		var in services.TaskInput
		if !decodeBody(w, r, &in) {
			return
		}
		task, err := rt.tasks.Create(userID(r), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, task)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT|DELETE /api/tasks/{id}, POST /api/tasks/{id}/toggle
func (rt *Router) handleTaskScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if len(parts) == 2 && parts[1] == "toggle" && r.Method == http.MethodPost {
		task, err := rt.tasks.ToggleComplete(userID(r), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
		return
	}
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in services.TaskInput
		if !decodeBody(w, r, &in) {
			return
		}
		task, err := rt.tasks.Update(userID(r), id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	case http.MethodDelete:
		if err := rt.tasks.Delete(userID(r), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET|POST /api/notes
func (rt *Router) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		notes, err := rt.notes.List(userID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
	case http.MethodPost:
		var in services.NoteInput
		if !decodeBody(w, r, &in) {
			return
		}
		note, err := rt.notes.Create(userID(r), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// PUT|DELETE /api/notes/{id}
func (rt *Router) handleNoteScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in services.NoteInput
		if !decodeBody(w, r, &in) {
			return
		}
		note, err := rt.notes.Update(userID(r), id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	case http.MethodDelete:
		if err := rt.notes.Delete(userID(r), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET|POST /api/internship/activities
func (rt *Router) handleActivities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		activities, err := rt.internship.List(userID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
	case http.MethodPost:
		var in services.ActivityInput
		if !decodeBody(w, r, &in) {
			return
		}
		a, err := rt.internship.Log(userID(r), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// DELETE /api/internship/activities/{id}
func (rt *Router) handleActivityScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/internship/activities/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := rt.internship.Delete(userID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GET /api/internship/summary
func (rt *Router) handleInternshipSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, err := rt.internship.Summary(userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GET|PUT /api/profile
func (rt *Router) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := rt.profile.Get(userID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		var in services.UpdateProfileInput
		if !decodeBody(w, r, &in) {
			return
		}
		p, err := rt.profile.Update(userID(r), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// DELETE /api/account
func (rt *Router) handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uid := userID(r)
	report, err := rt.account.DeleteAccount(uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rt.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: uid, Action: "account.delete", Target: uid})
	writeJSON(w, http.StatusOK, report)
}
