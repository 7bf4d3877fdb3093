// Package dispatch routes a parsed IntentCall to exactly one handler. It is
// the single conversion point between the parser's untyped parameter bags and
// the handlers' typed parameter structs: decode, validate, invoke. Nothing a
// handler does — error or panic — escapes Dispatch as a Go failure; every
// outcome is a ToolResult.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
	toolx "github.com/Samilincoln/ai-customer-chat/agent/tool"
)

type Dispatcher struct {
	tools    *toolx.Suite
	validate *validator.Validate
}

var _ contractx.Dispatcher = (*Dispatcher)(nil)

func New(tools *toolx.Suite) (*Dispatcher, error) {
	if tools == nil {
		return nil, errors.New("tool suite is required")
	}
	return &Dispatcher{
		tools:    tools,
		validate: validator.New(),
	}, nil
}

// Dispatch validates the call against its intent's parameter contract and
// invokes the bound handler. Unknown intents fail before any collaborator is
// touched.
func (d *Dispatcher) Dispatch(ctx context.Context, call contractx.IntentCall) (result contractx.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("intent", call.Intent).Interface("panic", r).Msg("handler panicked")
			result = contractx.ToolResult{
				Intent: call.Intent,
				Error:  fmt.Sprintf("Error executing %s: %v", call.Intent, r),
			}
		}
	}()

	log.Debug().Str("intent", call.Intent).Msg("dispatching intent call")

	switch call.Intent {
	case contractx.IntentCheckProductAvailability:
		return run(ctx, d, call, d.tools.CheckAvailability)
	case contractx.IntentTrackOrder:
		return run(ctx, d, call, d.tools.TrackOrder)
	case contractx.IntentApplyDiscount:
		return run(ctx, d, call, d.tools.ApplyDiscount)
	case contractx.IntentRecommendAlternatives:
		return run(ctx, d, call, d.tools.RecommendAlternatives)
	case contractx.IntentHandleNegotiation:
		return run(ctx, d, call, d.tools.HandleNegotiation)
	case contractx.IntentConsultationService:
		return run(ctx, d, call, d.tools.Consultation)
	default:
		log.Warn().Err(contractx.ErrUnknownIntent).Str("intent", call.Intent).Msg("rejected intent call")
		return contractx.ToolResult{
			Intent: call.Intent,
			Error:  fmt.Sprintf("Unknown intent: %s", call.Intent),
		}
	}
}

// run decodes the untyped parameter map into the intent's typed parameter
// struct, validates it, and invokes the handler. Unknown extra fields are
// ignored; missing optional fields stay at their zero (absent) value.
func run[P any, R any](
	ctx context.Context,
	d *Dispatcher,
	call contractx.IntentCall,
	handler func(context.Context, P) (R, error),
) contractx.ToolResult {
	var params P
	if err := decodeParams(call.Parameters, &params); err != nil {
		return validationFailure(call.Intent, err)
	}
	if err := d.validate.Struct(&params); err != nil {
		return validationFailure(call.Intent, err)
	}

	out, err := handler(ctx, params)
	if err != nil {
		log.Warn().Err(fmt.Errorf("%w: %v", contractx.ErrExecution, err)).Str("intent", call.Intent).Msg("handler failed")
		return contractx.ToolResult{
			Intent: call.Intent,
			Error:  fmt.Sprintf("Error executing %s: %v", call.Intent, err),
		}
	}

	return contractx.ToolResult{
		Intent: call.Intent,
		Result: out,
	}
}

func decodeParams[P any](raw map[string]any, params *P) error {
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: encode parameters: %v", contractx.ErrValidation, err)
	}
	if err := json.Unmarshal(encoded, params); err != nil {
		return fmt.Errorf("%w: %v", contractx.ErrValidation, err)
	}
	return nil
}

func validationFailure(intent string, err error) contractx.ToolResult {
	log.Debug().Err(err).Str("intent", intent).Msg("parameter validation failed")
	return contractx.ToolResult{
		Intent: intent,
		Error:  fmt.Sprintf("Error validating parameters for %s: %v", intent, err),
	}
}
