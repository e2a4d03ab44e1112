package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/fatih/color"
)

// Walks a running server through onboarding, chat, quota and events.
// Usage: go run ./scripts [base-url]

var baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(client *http.Client, method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(client *http.Client, title, method, url string, body interface{}, wantStatus int) []byte {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(client, method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != wantStatus {
		color.Red("Status: %s (want %d)", resp.Status, wantStatus)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
	return respBody
}

func main() {
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	// the jar carries the visitor cookie between calls
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	color.Cyan("🚀 Portfolio chat smoke test against %s\n", baseURL)

	step(client, "1. Save onboarding preferences", "POST", "/preferences", map[string]string{
		"role":       "recruiter",
		"goal":       "view-resume",
		"from_where": "smoke test",
	}, http.StatusOK)

	body := step(client, "2. First chat message", "POST", "/chat", map[string]string{
		"message": "What projects has he built?",
	}, http.StatusOK)

	var first struct {
		SessionId string `json:"session_id"`
	}
	_ = json.Unmarshal(body, &first)

	step(client, "3. Continue the conversation", "POST", "/chat", map[string]string{
		"message":    "Which one was the hardest?",
		"session_id": first.SessionId,
	}, http.StatusOK)

	step(client, "4. Load history", "GET", "/chat/v1/history?session_id="+first.SessionId, nil, http.StatusOK)

	step(client, "5. Third message inside the burst window", "POST", "/chat", map[string]string{
		"message": "And his resume?",
	}, http.StatusOK)

	step(client, "6. Fourth message is burst limited", "POST", "/chat", map[string]string{
		"message": "Hello?",
	}, http.StatusTooManyRequests)

	step(client, "7. Track a resume click", "POST", "/events", map[string]interface{}{
		"event_name": "resume_clicked",
		"page_path":  "/about",
		"metadata":   map[string]string{"source": "smoke"},
	}, http.StatusOK)

	stranger := &http.Client{}
	step(stranger, "8. Another visitor cannot use the session", "POST", "/chat", map[string]string{
		"message":    "hi",
		"session_id": first.SessionId,
	}, http.StatusForbidden)

	color.Cyan("\n✅ Smoke test finished")
}
