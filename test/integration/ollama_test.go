package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
	"github.com/geminiproxy-dev/geminiproxy/pkg/provider/openaicompat"
)

func init() {
	// Configure testcontainers to use podman.
	// Detect the podman socket from `podman machine inspect`.
	if os.Getenv("DOCKER_HOST") == "" {
		out, err := exec.Command("podman", "machine", "inspect", "--format", "{{.ConnectionInfo.PodmanSocket.Path}}").Output()
		if err == nil {
			sock := strings.TrimSpace(string(out))
			if sock != "" {
				os.Setenv("DOCKER_HOST", "unix://"+sock)
			}
		}
	}
	// Ryuk needs privileged mode with podman.
	if os.Getenv("TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED") == "" {
		os.Setenv("TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED", "true")
	}
}

// setupOllama starts an Ollama container and returns it together with a
// bridge client wired to its OpenAI-compatible surface. Tests are skipped
// if no container runtime is available.
func setupOllama(t *testing.T) (testcontainers.Container, *openaicompat.Client) {
	t.Helper()

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("SKIP_INTEGRATION=true, skipping Ollama integration tests")
	}

	if _, err := exec.LookPath("podman"); err != nil {
		t.Skip("podman not found, skipping Ollama integration tests")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "ollama/ollama:latest",
			ExposedPorts: []string{"11434/tcp"},
			WaitingFor:   wait.ForListeningPort("11434/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("skipping: could not start Ollama container (is podman running?): %v", err)
	}

	t.Cleanup(func() {
		container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "11434/tcp")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	client := openaicompat.NewClient(openaicompat.Config{
		BaseURL:      fmt.Sprintf("http://%s:%s/v1", host, port.Port()),
		DefaultModel: "all-minilm",
		Timeout:      120 * time.Second,
	})
	t.Cleanup(func() {
		client.Close()
	})

	return container, client
}

func TestOllamaEndToEnd(t *testing.T) {
	container, client := setupOllama(t)
	ctx := context.Background()

	// A fresh daemon advertises no models yet; the call itself must work.
	if _, err := client.ListModels(ctx); err != nil {
		t.Fatalf("listing models on fresh daemon: %v", err)
	}

	// Pull a small embedding model. Needs network inside the container;
	// skip rather than fail when it is unavailable.
	pullCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	code, _, err := container.Exec(pullCtx, []string{"ollama", "pull", "all-minilm"})
	if err != nil || code != 0 {
		t.Skipf("skipping: could not pull all-minilm (exit %d, err %v)", code, err)
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		t.Fatalf("listing models after pull: %v", err)
	}
	if !slices.ContainsFunc(models, func(m string) bool { return strings.HasPrefix(m, "all-minilm") }) {
		t.Fatalf("pulled model missing from list: %v", models)
	}

	resp, err := client.EmbedContent(ctx, &api.EmbedContentRequest{
		Model: "all-minilm",
		Contents: []*genai.Content{
			genai.NewContentFromText("The quick brown fox", genai.RoleUser),
			genai.NewContentFromText("jumps over the lazy dog", genai.RoleUser),
		},
	})
	if err != nil {
		t.Fatalf("embedding against Ollama: %v", err)
	}
	if len(resp.Embeddings) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(resp.Embeddings))
	}
	for i, emb := range resp.Embeddings {
		if len(emb.Values) == 0 {
			t.Errorf("embedding %d has no values", i)
		}
	}
}
