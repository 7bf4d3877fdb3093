// Package chat runs one conversation turn end to end: model call, lenient
// parse, typed dispatch, reply assembly. The HTTP/UI layer above it and the
// conversation persistence below it are collaborators, not concerns.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	"github.com/Samilincoln/ai-customer-chat/agent/parser"
	promptx "github.com/Samilincoln/ai-customer-chat/agent/prompt"
	storex "github.com/Samilincoln/ai-customer-chat/agent/store"
)

type Config struct {
	BusinessType string `envconfig:"BUSINESS_TYPE" split_words:"true" default:"general_ecommerce_store"`
}

type Service struct {
	model      contractx.ModelClient
	dispatcher contractx.Dispatcher
	catalog    storex.Catalog
	memory     Memory

	businessType string
}

// TurnResult is what the caller renders: the merged reply plus the structured
// trace of what the turn did.
type TurnResult struct {
	Reply          string
	DetectedIntent string
	IntentCall     *contractx.IntentCall
	ToolResult     *contractx.ToolResult
}

func New(model contractx.ModelClient, dispatcher contractx.Dispatcher, catalog storex.Catalog, memory Memory, cfg Config) (*Service, error) {
	if model == nil {
		return nil, errors.New("model client is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if memory == nil {
		memory = noopMemory{}
	}

	businessType := strings.TrimSpace(cfg.BusinessType)
	if businessType == "" {
		businessType = "general_ecommerce_store"
	}

	return &Service{
		model:        model,
		dispatcher:   dispatcher,
		catalog:      catalog,
		memory:       memory,
		businessType: businessType,
	}, nil
}

// HandleTurn processes one customer message. Handlers are read-only, so an
// abandoned turn leaks nothing into the next one.
func (s *Service) HandleTurn(ctx context.Context, sessionID, userMessage string) (TurnResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return TurnResult{}, errors.New("user message is required")
	}

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("categories unavailable, prompting without them")
		categories = nil
	}
	systemPrompt := promptx.BuildSystemPrompt(s.businessType, categories)

	history, err := s.memory.Buffer(ctx, sessionID)
	if err != nil {
		return TurnResult{}, err
	}

	input := "Customer: " + userMessage + "\nZita:"
	if history != "" {
		input = history + "\n" + input
	}

	raw, err := s.model.Complete(ctx, systemPrompt, input)
	if err != nil {
		return TurnResult{}, err
	}

	parsed := parser.Parse(raw)
	result := TurnResult{
		Reply:      parsed.ResponseText,
		IntentCall: parsed.IntentCall,
	}

	if parsed.IntentCall != nil {
		result.DetectedIntent = parsed.IntentCall.Intent

		toolResult := s.dispatcher.Dispatch(ctx, *parsed.IntentCall)
		result.ToolResult = &toolResult
		if msg := toolResult.Message(); msg != "" {
			result.Reply += "\n\n" + msg
		}

		if followUp, ok := s.alternativesFollowUp(ctx, *parsed.IntentCall, toolResult); ok {
			result.Reply += "\n\n" + followUp
		}
	}

	if err := s.memory.Save(ctx, sessionID, userMessage, result.Reply); err != nil {
		return TurnResult{}, err
	}

	log.Debug().
		Str("session_id", sessionID).
		Str("intent", result.DetectedIntent).
		Msg("turn handled")

	return result, nil
}

// alternativesFollowUp dispatches recommend_alternatives when an availability
// check came back not-found, so the customer still leaves with options.
func (s *Service) alternativesFollowUp(ctx context.Context, call contractx.IntentCall, res contractx.ToolResult) (string, bool) {
	availability, ok := res.Result.(contractx.AvailabilityResult)
	if !ok || availability.Found {
		return "", false
	}

	query, _ := call.Parameters["product_name"].(string)
	if strings.TrimSpace(query) == "" {
		return "", false
	}

	followUp := s.dispatcher.Dispatch(ctx, contractx.IntentCall{
		Intent:     contractx.IntentRecommendAlternatives,
		Parameters: map[string]any{"product_name": query},
	})
	msg := followUp.Message()
	return msg, msg != ""
}
