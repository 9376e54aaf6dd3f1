package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taller-go/internal/config"
)

// geminiClient speaks the Gemini generateContent API. The envelope differs
// from the OpenAI shape: turns are contents[].parts[], the assistant turn is
// nested under "candidates", tool calls are functionCall parts and tool
// results go back as functionResponse parts. The system instruction is a
// separate request field.
type geminiClient struct {
	cfg    config.LLMProviderConfig
	gen    config.LLMGenerationConfig
	client *http.Client
}

func newGeminiClient(cfg config.LLMProviderConfig, gen config.LLMGenerationConfig) *geminiClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	cfg.BaseURL = baseURL
	return &geminiClient{
		cfg:    cfg,
		gen:    gen,
		client: &http.Client{},
	}
}

type geminiPart struct {
	Text             string                  `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFunctionResponse `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiFunctionResponse struct {
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"` // "user" | "model"
	Parts []geminiPart `json:"parts"`
}

type geminiToolDecl struct {
	FunctionDeclarations []geminiFunctionSpec `json:"functionDeclarations"`
}

type geminiFunctionSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiToolDecl        `json:"tools,omitempty"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata,omitempty"`
}

// Complete sends one generateContent request and normalizes the response.
func (c *geminiClient) Complete(ctx context.Context, req *Request) (*Result, error) {
	apiReq := c.buildRequest(req)

	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, req.Model, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "gemini", Status: resp.StatusCode, Body: string(respBody)}
	}

	return parseGeminiResponse(respBody)
}

func (c *geminiClient) buildRequest(req *Request) *geminiRequest {
	apiReq := &geminiRequest{}

	temp := req.Temperature
	if temp == 0 {
		temp = c.gen.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.gen.MaxTokens
	}
	if temp != 0 || maxTokens != 0 {
		apiReq.GenerationConfig = &geminiGenerationConfig{
			Temperature:     temp,
			MaxOutputTokens: maxTokens,
		}
	}

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			// System turns collapse into the dedicated instruction field.
			if apiReq.SystemInstruction == nil {
				apiReq.SystemInstruction = &geminiContent{}
			}
			apiReq.SystemInstruction.Parts = append(apiReq.SystemInstruction.Parts, geminiPart{Text: m.Content})
		case "assistant":
			content := geminiContent{Role: "model"}
			if m.Content != "" {
				content.Parts = append(content.Parts, geminiPart{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				content.Parts = append(content.Parts, geminiPart{
					FunctionCall: &geminiFunctionCall{Name: tc.Name, Args: decodeArgs(tc.Arguments)},
				})
			}
			apiReq.Contents = append(apiReq.Contents, content)
		case "tool":
			apiReq.Contents = append(apiReq.Contents, geminiContent{
				Role: "user",
				Parts: []geminiPart{{
					FunctionResponse: &geminiFunctionResponse{
						Name:     toolNameFromCallID(m.ToolCallID),
						Response: map[string]interface{}{"content": m.Content},
					},
				}},
			})
		default:
			apiReq.Contents = append(apiReq.Contents, geminiContent{
				Role:  "user",
				Parts: []geminiPart{{Text: m.Content}},
			})
		}
	}

	if len(req.Tools) > 0 {
		decl := geminiToolDecl{}
		for _, t := range req.Tools {
			decl.FunctionDeclarations = append(decl.FunctionDeclarations, geminiFunctionSpec{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  ensureObjectSchema(t.Parameters),
			})
		}
		apiReq.Tools = []geminiToolDecl{decl}
	}
	return apiReq
}

func parseGeminiResponse(body []byte) (*Result, error) {
	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(apiResp.Candidates) == 0 {
		return nil, fmt.Errorf("chat response contained no candidates")
	}

	res := &Result{}
	if apiResp.UsageMetadata != nil {
		res.Usage = Usage{
			PromptTokens:     apiResp.UsageMetadata.PromptTokenCount,
			CompletionTokens: apiResp.UsageMetadata.CandidatesTokenCount,
		}
	}

	var text strings.Builder
	for i, part := range apiResp.Candidates[0].Content.Parts {
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				args = []byte("{}")
			}
			res.ToolCalls = append(res.ToolCalls, ToolCall{
				// Gemini does not assign invocation ids; synthesize one that
				// keeps the tool name recoverable for the functionResponse.
				ID:        fmt.Sprintf("%s:%d", part.FunctionCall.Name, i),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
			continue
		}
		text.WriteString(part.Text)
	}
	if len(res.ToolCalls) > 0 {
		return res, nil
	}
	res.Content = text.String()
	return res, nil
}

func decodeArgs(raw string) map[string]interface{} {
	args := map[string]interface{}{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &args)
	}
	return args
}

// toolNameFromCallID reverses the synthesized "name:index" invocation id.
func toolNameFromCallID(id string) string {
	if idx := strings.LastIndex(id, ":"); idx > 0 {
		return id[:idx]
	}
	return id
}
