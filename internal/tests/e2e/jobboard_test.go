//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/campushire/apiserver/config"
	"github.com/campushire/apiserver/internal/db"
	"github.com/campushire/apiserver/internal/logger"
	"github.com/campushire/apiserver/internal/server"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	serverPort = 18080
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

// TestHiringFlow exercises the full flow end to end: a recruiter posts
// a job, a student applies (once), the recruiter reviews the pending
// application and accepts it, and the student sees the decision.
func TestHiringFlow(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	suffix := time.Now().UnixNano()

	recruiterToken := register(t, baseURL, fmt.Sprintf("recruiter_%d@example.com", suffix), "Rita Recruiter", "recruiter")
	studentToken := register(t, baseURL, fmt.Sprintf("student_%d@example.com", suffix), "Sam Student", "student")

	jobID := createJob(t, baseURL, recruiterToken)

	appID := apply(t, baseURL, studentToken, jobID)

	status := applyExpectingStatus(t, baseURL, studentToken, jobID)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 on second apply, got %d", status)
	}

	apps := listForJob(t, baseURL, recruiterToken, jobID)
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].Status != "pending" {
		t.Fatalf("expected pending status, got %q", apps[0].Status)
	}
	if apps[0].Student == nil || apps[0].Student.FullName != "Sam Student" {
		t.Fatalf("expected applicant attached, got %+v", apps[0].Student)
	}

	updateStatus(t, baseURL, recruiterToken, appID, "accepted")

	mine := myApplications(t, baseURL, studentToken)
	if len(mine) != 1 {
		t.Fatalf("expected 1 application, got %d", len(mine))
	}
	if mine[0].Status != "accepted" {
		t.Fatalf("expected accepted status, got %q", mine[0].Status)
	}
	if mine[0].Job == nil || mine[0].Job.ID != jobID {
		t.Fatalf("expected job attached, got %+v", mine[0].Job)
	}
}

type authResponse struct {
	Token string `json:"token"`
}

type jobResponse struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

type applicationResponse struct {
	ID      int    `json:"id"`
	JobID   int    `json:"job_id"`
	Status  string `json:"status"`
	Job     *jobResponse `json:"job"`
	Student *struct {
		FullName string `json:"full_name"`
	} `json:"student"`
}

func register(t *testing.T, baseURL, email, fullName, role string) string {
	t.Helper()

	payload := map[string]string{
		"email":     email,
		"full_name": fullName,
		"password":  "testpass123!",
		"role":      role,
	}
	var parsed authResponse
	doJSON(t, http.MethodPost, baseURL+"/auth/register", "", payload, http.StatusCreated, &parsed)
	if parsed.Token == "" {
		t.Fatalf("missing token in register response")
	}
	return parsed.Token
}

func createJob(t *testing.T, baseURL, token string) int {
	t.Helper()

	payload := map[string]any{
		"title":       "Platform Engineer",
		"company":     "Acme",
		"location":    "Remote",
		"type":        "full-time",
		"description": "Keep the lights on.",
		"skills":      []string{"go", "postgres"},
	}
	var parsed jobResponse
	doJSON(t, http.MethodPost, baseURL+"/jobs", token, payload, http.StatusCreated, &parsed)
	if parsed.ID == 0 {
		t.Fatalf("expected job ID to be set")
	}
	if parsed.Status != "active" {
		t.Fatalf("expected active status, got %q", parsed.Status)
	}
	return parsed.ID
}

func apply(t *testing.T, baseURL, token string, jobID int) int {
	t.Helper()

	payload := map[string]any{
		"job_id":       jobID,
		"cover_letter": "I keep lights on professionally.",
	}
	var parsed applicationResponse
	doJSON(t, http.MethodPost, baseURL+"/applications", token, payload, http.StatusCreated, &parsed)
	if parsed.ID == 0 {
		t.Fatalf("expected application ID to be set")
	}
	return parsed.ID
}

func applyExpectingStatus(t *testing.T, baseURL, token string, jobID int) int {
	t.Helper()

	payload := map[string]any{"job_id": jobID}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/applications", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func listForJob(t *testing.T, baseURL, token string, jobID int) []applicationResponse {
	t.Helper()

	var parsed []applicationResponse
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/applications/job/%d", baseURL, jobID), token, nil, http.StatusOK, &parsed)
	return parsed
}

func updateStatus(t *testing.T, baseURL, token string, appID int, status string) {
	t.Helper()

	payload := map[string]string{"status": status}
	var parsed applicationResponse
	doJSON(t, http.MethodPut, fmt.Sprintf("%s/applications/%d/status", baseURL, appID), token, payload, http.StatusOK, &parsed)
	if parsed.Status != status {
		t.Fatalf("expected status %q, got %q", status, parsed.Status)
	}
}

func myApplications(t *testing.T, baseURL, token string) []applicationResponse {
	t.Helper()

	var parsed []applicationResponse
	doJSON(t, http.MethodGet, baseURL+"/applications/my-applications", token, nil, http.StatusOK, &parsed)
	return parsed
}

func doJSON(t *testing.T, method, url, token string, payload any, wantStatus int, out any) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s status %d, want %d: %s", method, url, resp.StatusCode, wantStatus, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	conn, err := sql.Open("postgres", db.PostgresURL(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := conn.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, db.PostgresURL(cfg))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func startServer() (*server.Server, error) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "campushire")
	_ = os.Setenv("DB_PASSWORD", "campushire")
	_ = os.Setenv("DB_NAME", "campushire")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	_ = os.Setenv("MINIO_SECRET_KEY", "minioadmin")
	_ = os.Setenv("MINIO_BUCKET", "campushire-resumes")

	cfg := config.LoadConfig()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
