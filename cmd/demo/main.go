// Command demo walks a running geminiproxy gateway through every public
// operation: health, model listing, generation, streaming generation,
// token counting, and embedding. It exits non-zero on the first failure,
// which makes it usable as a smoke test against a deployment.
//
// Flags:
//
//	-url    gateway base URL (default http://localhost:8080)
//	-model  model to request (default gemini-2.0-flash)
//	-prompt prompt for the generation steps
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/geminiproxy-dev/geminiproxy/pkg/api"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "gateway base URL")
	model := flag.String("model", "gemini-2.0-flash", "model to request")
	prompt := flag.String("prompt", "Count from 1 to 5.", "prompt for the generation steps")
	flag.Parse()

	if err := run(strings.TrimRight(*url, "/"), *model, *prompt); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(base, model, prompt string) error {
	client := &http.Client{}

	fmt.Println("=== geminiproxy gateway demo ===")
	fmt.Println()

	// 1. Liveness.
	resp, err := client.Get(base + "/healthz")
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: status %d", resp.StatusCode)
	}
	fmt.Println("[1] gateway is healthy")

	// 2. Model list.
	var models api.ModelList
	if err := getJSON(client, base+"/v1beta/models", &models); err != nil {
		return fmt.Errorf("listing models: %w", err)
	}
	fmt.Printf("[2] backend advertises %d model(s): %s\n", len(models.Models), strings.Join(models.Models, ", "))

	reqBody := &api.GenerateContentRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
	}

	// 3. Non-streaming generation.
	var genResp genai.GenerateContentResponse
	if err := postJSON(client, operationURL(base, model, "generateContent"), reqBody, &genResp); err != nil {
		return fmt.Errorf("generateContent: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return fmt.Errorf("generateContent: no candidates in response")
	}
	fmt.Printf("[3] generateContent (%s): %q\n", genResp.Candidates[0].FinishReason, candidateText(genResp.Candidates[0]))
	if usage := genResp.UsageMetadata; usage != nil {
		fmt.Printf("    tokens: %d in / %d out / %d total\n",
			usage.PromptTokenCount, usage.CandidatesTokenCount, usage.TotalTokenCount)
	}

	// 4. Streaming generation, printing deltas as they arrive.
	fmt.Print("[4] streamGenerateContent: ")
	if err := streamGenerate(client, operationURL(base, model, "streamGenerateContent"), reqBody); err != nil {
		fmt.Println()
		return fmt.Errorf("streamGenerateContent: %w", err)
	}
	fmt.Println()

	// 5. Token counting.
	var countResp genai.CountTokensResponse
	if err := postJSON(client, operationURL(base, model, "countTokens"), reqBody, &countResp); err != nil {
		return fmt.Errorf("countTokens: %w", err)
	}
	fmt.Printf("[5] countTokens: totalTokens=%d\n", countResp.TotalTokens)

	// 6. Embedding.
	var embedResp genai.EmbedContentResponse
	if err := postJSON(client, operationURL(base, model, "embedContent"), reqBody, &embedResp); err != nil {
		return fmt.Errorf("embedContent: %w", err)
	}
	dims := 0
	if len(embedResp.Embeddings) > 0 {
		dims = len(embedResp.Embeddings[0].Values)
	}
	fmt.Printf("[6] embedContent: %d embedding(s), %d dimension(s)\n", len(embedResp.Embeddings), dims)

	fmt.Println()
	fmt.Println("=== demo complete ===")
	return nil
}

func operationURL(base, model, op string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s", base, model, op)
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func postJSON(client *http.Client, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// streamGenerate consumes the SSE stream and prints each delta without
// buffering the whole response.
func streamGenerate(client *http.Client, url string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		payload, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "data: ")
		if !ok {
			continue
		}
		var frame genai.GenerateContentResponse
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			return fmt.Errorf("decoding frame: %w", err)
		}
		if len(frame.Candidates) > 0 {
			fmt.Print(candidateText(frame.Candidates[0]))
		}
	}
	return scanner.Err()
}

func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
