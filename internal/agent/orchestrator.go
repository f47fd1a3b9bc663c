// Package agent implements the conversational orchestrator: a state machine
// over a tool-calling completion engine that classifies each query, runs the
// tool loop, optionally reflects on weak replies, and assembles a structured
// turn result.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/advisord/internal/agent/tools"
	"github.com/fyrsmithlabs/advisord/internal/retriever"
)

// Sentinel errors for orchestrator operations.
var (
	// ErrInvalidConfig indicates a misconfigured orchestrator.
	ErrInvalidConfig = errors.New("invalid agent configuration")

	// ErrCompletionFailed wraps completion engine failures. The turn is
	// aborted; the caller decides how to present the failure.
	ErrCompletionFailed = errors.New("completion engine failed")
)

// fallbackResponse is returned when the engine produces no usable reply.
const fallbackResponse = "I apologize, but I couldn't generate a response. Please try again."

// defaultSuggestions is the fixed follow-up set used when suggestion
// generation fails or returns something unparseable.
var defaultSuggestions = []string{
	"Show me more examples",
	"Help me build a similar agent",
	"Explain the framework used",
	"What are the key features?",
}

// Phrases that mark a reply as hedging rather than answering. A reply
// containing one triggers a single reflection pass.
var hedgingPhrases = []string{"let me", "i'll", "i can help"}

// defaultMaxSteps bounds the tool loop within one turn.
const defaultMaxSteps = 10

// Model is the completion engine contract. *openai.LLM satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Message is one prior conversation entry supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the structured result of one conversational turn.
type Reply struct {
	Response        string             `json:"response"`
	Recommendations []retriever.Result `json:"recommendations"`
	Suggestions     []string           `json:"suggestions"`
	Plan            PlanDecision       `json:"plan"`
}

// Config holds orchestrator settings.
type Config struct {
	// MaxSteps bounds the tool loop. Zero means the default of 10.
	MaxSteps int `koanf:"max_steps"`

	// Temperature for completions. Zero means the engine default.
	Temperature float64 `koanf:"temperature"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.MaxSteps <= 0 {
		c.MaxSteps = defaultMaxSteps
	}
}

// Orchestrator drives the plan, act, reflect cycle for each query.
type Orchestrator struct {
	model       Model
	registry    *tools.Registry
	logger      *zap.Logger
	tracer      trace.Tracer
	maxSteps    int
	temperature float64
}

// New creates an orchestrator over the given engine and tool registry.
func New(model Model, registry *tools.Registry, cfg Config, logger *zap.Logger) (*Orchestrator, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model required", ErrInvalidConfig)
	}
	if registry == nil {
		return nil, fmt.Errorf("%w: tool registry required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()

	return &Orchestrator{
		model:       model,
		registry:    registry,
		logger:      logger,
		tracer:      otel.Tracer("advisord.agent"),
		maxSteps:    cfg.MaxSteps,
		temperature: cfg.Temperature,
	}, nil
}

// Chat runs one conversational turn.
//
// The flow is plan, then the tool loop, then at most one reflection pass,
// then suggestion generation. Tool failures are reported back to the engine
// inside the transcript rather than aborting the turn; only engine failures
// abort it.
func (o *Orchestrator) Chat(ctx context.Context, query, threadID string, history []Message) (*Reply, error) {
	ctx, span := o.tracer.Start(ctx, "agent.chat",
		trace.WithAttributes(attribute.String("thread_id", threadID)))
	defer span.End()

	sink := tools.NewResultSink()
	ctx = tools.WithResultSink(ctx, sink)

	plan := o.plan(ctx, query)
	span.SetAttributes(attribute.String("plan", string(plan)))
	observeTurn(plan)

	messages := o.buildMessages(plan, query, history)

	response, err := o.act(ctx, &messages)
	if err != nil {
		observeTurnFailure()
		span.RecordError(err)
		return nil, err
	}
	if strings.TrimSpace(response) == "" {
		response = fallbackResponse
	}

	reply := &Reply{
		Response:        response,
		Recommendations: sink.Results(),
		Suggestions:     o.suggestions(ctx, query, response),
		Plan:            plan,
	}
	o.logger.Info("chat turn completed",
		zap.String("thread_id", threadID),
		zap.String("plan", string(plan)),
		zap.Int("recommendations", len(reply.Recommendations)))
	return reply, nil
}

// plan classifies the query. Engine failures and unparseable output both fall
// back to PlanDirect so a turn is never lost to classification.
func (o *Orchestrator) plan(ctx context.Context, query string) PlanDecision {
	ctx, span := o.tracer.Start(ctx, "agent.plan")
	defer span.End()

	resp, err := o.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, planPrompt(query)),
	})
	if err != nil || len(resp.Choices) == 0 {
		o.logger.Warn("query classification failed, using direct plan", zap.Error(err))
		return PlanDirect
	}
	return ParsePlanDecision(resp.Choices[0].Content)
}

func (o *Orchestrator) buildMessages(plan PlanDecision, query string, history []Message) []llms.MessageContent {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt(plan)),
	}
	for _, msg := range history {
		switch msg.Role {
		case "user":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case "assistant":
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
		}
	}
	return append(messages, llms.TextParts(llms.ChatMessageTypeHuman, query))
}

// act runs the tool loop until the engine stops requesting tools, with one
// optional reflection pass, bounded by maxSteps.
func (o *Orchestrator) act(ctx context.Context, messages *[]llms.MessageContent) (string, error) {
	reflected := false
	lastContent := ""

	opts := []llms.CallOption{llms.WithTools(o.registry.Definitions())}
	if o.temperature > 0 {
		opts = append(opts, llms.WithTemperature(o.temperature))
	}

	for step := 0; step < o.maxSteps; step++ {
		resp, err := o.model.GenerateContent(ctx, *messages, opts...)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: empty response", ErrCompletionFailed)
		}
		choice := resp.Choices[0]

		if len(choice.ToolCalls) > 0 {
			o.runTools(ctx, messages, choice)
			continue
		}

		lastContent = choice.Content
		if !reflected && needsReflection(choice.Content) {
			reflected = true
			if o.reflect(ctx, messages, choice.Content) {
				continue
			}
		}
		return choice.Content, nil
	}

	// Step budget exhausted; surface whatever the engine said last.
	o.logger.Warn("tool loop step budget exhausted", zap.Int("max_steps", o.maxSteps))
	return lastContent, nil
}

// runTools appends the assistant's tool calls and their outcomes to the
// transcript. A failed dispatch becomes an error payload the engine can react
// to on the next step; it never aborts the turn.
func (o *Orchestrator) runTools(ctx context.Context, messages *[]llms.MessageContent, choice *llms.ContentChoice) {
	assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	for _, call := range choice.ToolCalls {
		assistant.Parts = append(assistant.Parts, call)
	}
	*messages = append(*messages, assistant)

	for _, call := range choice.ToolCalls {
		observeToolCall(call.FunctionCall.Name)
		payload, err := o.registry.Dispatch(ctx, call.FunctionCall.Name, call.FunctionCall.Arguments)
		if err != nil {
			o.logger.Warn("tool dispatch failed",
				zap.String("tool", call.FunctionCall.Name),
				zap.Error(err))
			payload = fmt.Sprintf(`{"error":%q}`, err.Error())
		}
		*messages = append(*messages, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{llms.ToolCallResponse{
				ToolCallID: call.ID,
				Name:       call.FunctionCall.Name,
				Content:    payload,
			}},
		})
	}
}

// needsReflection reports whether the reply hedges instead of answering.
func needsReflection(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range hedgingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// reflect asks the engine to critique the draft reply and feeds the critique
// back into the transcript. Returns false when the critique call fails, in
// which case the draft stands.
func (o *Orchestrator) reflect(ctx context.Context, messages *[]llms.MessageContent, draft string) bool {
	ctx, span := o.tracer.Start(ctx, "agent.reflect")
	defer span.End()
	observeReflection()

	resp, err := o.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem,
			"You are a helpful assistant reviewing conversation quality."),
		llms.TextParts(llms.ChatMessageTypeAI, draft),
		llms.TextParts(llms.ChatMessageTypeHuman,
			"Review the conversation so far. Is the response complete and helpful?\n"+
				"If not, suggest improvements or additional information needed."),
	})
	if err != nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		o.logger.Warn("reflection failed, keeping draft reply", zap.Error(err))
		return false
	}

	*messages = append(*messages,
		llms.TextParts(llms.ChatMessageTypeAI, draft),
		llms.TextParts(llms.ChatMessageTypeHuman,
			"Revise your answer with this feedback in mind:\n"+resp.Choices[0].Content))
	return true
}
