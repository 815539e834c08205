//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("CARTABLE_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

// TestStudentJourneyIntegration walks the whole student flow against a
// running server: register, take the learning-style survey, manage tasks,
// read style-aware suggestions, then delete the account.
func TestStudentJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	doJSON(t, client, http.MethodPost, base+"/api/auth/register", "", map[string]any{
		"email":      userEmail,
		"password":   password,
		"first_name": "Léa",
		"filiere":    "Terminale STMG",
	}, &registerResp)
	if registerResp.Token == "" || registerResp.UserID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doJSON(t, client, http.MethodPost, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	var questionsResp struct {
		Questions []struct {
			ID      int      `json:"id"`
			Text    string   `json:"text"`
			Options []string `json:"options"`
		} `json:"questions"`
	}
	doJSON(t, client, http.MethodGet, base+"/api/survey/questions", "", nil, &questionsResp)
	if len(questionsResp.Questions) != 15 {
		t.Fatalf("expected 15 survey questions, got %d", len(questionsResp.Questions))
	}
	for _, q := range questionsResp.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %d has %d options", q.ID, len(q.Options))
		}
	}

	answers := make([]int, 15)
	for i := range answers {
		answers[i] = 0 // every answer visual
	}
	var surveyResp struct {
		LearningStyle string   `json:"learning_style"`
		Description   string   `json:"description"`
		Adaptations   []string `json:"adaptations"`
	}
	doJSON(t, client, http.MethodPost, base+"/api/survey/answers", token, map[string]any{
		"answers": answers,
	}, &surveyResp)
	if surveyResp.LearningStyle != "Visuel Structuré" {
		t.Fatalf("all-visual answers gave style %q", surveyResp.LearningStyle)
	}
	if surveyResp.Description == "" || len(surveyResp.Adaptations) == 0 {
		t.Fatalf("survey outcome missing result text: %+v", surveyResp)
	}

	var profileResp struct {
		LearningStyle string `json:"learning_style"`
		Preferences   *struct {
			CompletedTest bool `json:"completed_test"`
		} `json:"preferences"`
	}
	doJSON(t, client, http.MethodGet, base+"/api/profile", token, nil, &profileResp)
	if profileResp.LearningStyle != "Visuel Structuré" {
		t.Fatalf("profile style = %q", profileResp.LearningStyle)
	}
	if profileResp.Preferences == nil || !profileResp.Preferences.CompletedTest {
		t.Fatalf("profile preferences not updated: %+v", profileResp)
	}

	var taskResp struct {
		ID string `json:"id"`
	}
	doJSON(t, client, http.MethodPost, base+"/api/tasks", token, map[string]any{
		"title":    "Réviser le chapitre 3",
		"deadline": "2026-06-01",
		"priority": "high",
	}, &taskResp)
	if taskResp.ID == "" {
		t.Fatalf("expected task id")
	}

	var toggled struct {
		Completed bool `json:"completed"`
	}
	doJSON(t, client, http.MethodPost, base+"/api/tasks/"+taskResp.ID+"/toggle", token, nil, &toggled)
	if !toggled.Completed {
		t.Fatalf("toggle did not complete the task")
	}

	var suggestResp struct {
		Suggestions []string `json:"suggestions"`
	}
	doJSON(t, client, http.MethodGet, base+"/api/chat/suggestions", token, nil, &suggestResp)
	if len(suggestResp.Suggestions) == 0 {
		t.Fatalf("expected style suggestions")
	}

	var deleteResp struct {
		TasksDeleted int    `json:"tasks_deleted"`
		DeletedAt    string `json:"deleted_at"`
	}
	doJSON(t, client, http.MethodDelete, base+"/api/account", token, nil, &deleteResp)
	if deleteResp.TasksDeleted != 1 || deleteResp.DeletedAt == "" {
		t.Fatalf("unexpected deletion report: %+v", deleteResp)
	}

	// The account is gone; login must fail.
	req, err := http.NewRequest(http.MethodPost, base+"/api/auth/login", bytes.NewReader([]byte(
		fmt.Sprintf(`{"email":%q,"password":%q}`, userEmail, password))))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login after deletion: status %d body %s", resp.StatusCode, string(body))
	}
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, out any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s %s: %s", resp.StatusCode, method, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}
