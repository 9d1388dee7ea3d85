package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/config"
)

const (
	baseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// AdviceRequest describes a new study plan for the advisory prompt.
type AdviceRequest struct {
	Subject    string
	Category   string
	TotalPages int
	StartDate  string
	EndDate    string
}

// Advice is the structured advisory response. Difficulty is one of
// Easy, Moderate, Challenging, Intense.
type Advice struct {
	Advice        string `json:"advice"`
	Difficulty    string `json:"difficulty"`
	SuggestedPace string `json:"suggestedPace"`
}

// ExistingEvent is a committed timetable block passed to the scheduling
// prompt for conflict awareness.
type ExistingEvent struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ProposedEvent is one study block suggested by the model.
type ProposedEvent struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Client is the generative advisory collaborator. Both operations are total:
// any transport or parse failure is absorbed and replaced with fallback
// content (a fixed advice tuple, an empty proposal list), so callers never
// special-case failure.
type Client interface {
	StudyAdvice(ctx context.Context, req AdviceRequest) Advice
	ParseSchedule(ctx context.Context, text string, existing []ExistingEvent) []ProposedEvent
}

// FallbackAdvice is returned whenever the model cannot be reached or its
// response cannot be parsed.
var FallbackAdvice = Advice{
	Advice:        "Keep a steady rhythm. Showing up every scheduled day matters more than any single session.",
	Difficulty:    "Moderate",
	SuggestedPace: "Steady daily progress",
}

type ClientImpl struct {
	cfg        config.Gemini
	httpClient *http.Client
}

func NewClient(cfg config.Gemini) *ClientImpl {
	return &ClientImpl{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// generateContent request/response shapes, limited to the fields in use.
type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *ClientImpl) StudyAdvice(ctx context.Context, req AdviceRequest) Advice {
	prompt := fmt.Sprintf(
		"Analyze the following study plan and give concrete advice.\n"+
			"Subject: %s\nCategory: %s\nTotal pages: %d\nStart date: %s\nEnd date: %s\n\n"+
			"Respond with a JSON object with keys: "+
			"advice (concrete study strategy), "+
			"difficulty (one of Easy, Moderate, Challenging, Intense), "+
			"suggestedPace (short description of a daily rhythm).",
		req.Subject, req.Category, req.TotalPages, req.StartDate, req.EndDate,
	)
	system := "You are an experienced study coach. Assess the plan's difficulty and give a " +
		"specific, encouraging execution strategy."

	text, err := c.generate(ctx, system, prompt)
	if err != nil {
		log.Errorf("study advice request failed, using fallback: %v", err)
		return FallbackAdvice
	}

	var advice Advice
	if err := json.Unmarshal([]byte(text), &advice); err != nil {
		log.Errorf("could not parse study advice response, using fallback: %v", err)
		return FallbackAdvice
	}
	if advice.Advice == "" {
		return FallbackAdvice
	}
	return advice
}

func (c *ClientImpl) ParseSchedule(ctx context.Context, text string, existing []ExistingEvent) []ProposedEvent {
	existingJson, err := json.Marshal(existing)
	if err != nil {
		log.Errorf("could not serialize existing events: %v", err)
		return nil
	}

	prompt := fmt.Sprintf(
		"Place study blocks into a weekly timetable based on this request:\n%s\n\n"+
			"Already occupied blocks (avoid conflicts where possible):\n%s\n\n"+
			"Respond with a JSON array of objects with keys: "+
			"title, dayOfWeek (0=Sunday..6=Saturday), startTime (HH:mm), endTime (HH:mm).",
		text, existingJson,
	)
	system := "You are a scheduling assistant. Turn free-form requests into concrete weekly time blocks."

	responseText, err := c.generate(ctx, system, prompt)
	if err != nil {
		log.Errorf("schedule parse request failed, returning no proposals: %v", err)
		return nil
	}

	var proposed []ProposedEvent
	if err := json.Unmarshal([]byte(responseText), &proposed); err != nil {
		log.Errorf("could not parse schedule response, returning no proposals: %v", err)
		return nil
	}
	return proposed
}

// generate calls the generateContent endpoint and returns the first
// candidate's text.
func (c *ClientImpl) generate(ctx context.Context, system string, prompt string) (string, error) {
	if c.cfg.ApiKey == "" {
		return "", fmt.Errorf("gemini api key is not configured")
	}

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig:  generationConfig{ResponseMimeType: "application/json"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("could not serialize request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", baseURL, c.cfg.Model)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-goog-api-key", c.cfg.ApiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("request to gemini failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", response.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("could not decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contains no candidates")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
