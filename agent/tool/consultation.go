package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
)

// Consultation answers a consultation request by querying the external search
// collaborator. The single search call is the only network-bound step in a
// turn; the injected Searcher owns its timeout and retry policy, and a failed
// search comes back as a structured success:false result, never an error.
func (s *Suite) Consultation(ctx context.Context, p contractx.ConsultationParams) (contractx.ConsultationResult, error) {
	query := buildConsultationQuery(p)

	result := contractx.ConsultationResult{
		ConsultationType: p.ConsultationType,
		Subject:          p.Subject,
		SearchQueryUsed:  query,
		Timestamp:        s.now(),
		Metadata: map[string]any{
			"business_type": p.BusinessType,
			"location":      p.Location,
			"budget":        p.Budget,
			"currency":      p.Currency,
			"purpose":       p.Purpose,
			"description":   p.Description,
		},
	}

	if s.search == nil {
		result.ErrorDetail = "search collaborator is not configured"
		result.Response = consultationFailureMessage(p)
		return result, nil
	}

	text, err := s.search.Search(ctx, query)
	if err != nil {
		result.ErrorDetail = err.Error()
		result.Response = consultationFailureMessage(p)
		return result, nil
	}

	result.Success = true
	result.Response = consultationIntro(p) + "\n\n" + text
	return result, nil
}

// buildConsultationQuery joins the populated fields in a fixed order so the
// same request always produces the same query.
func buildConsultationQuery(p contractx.ConsultationParams) string {
	parts := []string{p.ConsultationType, p.Subject}
	for _, optional := range []string{p.BusinessType, p.Purpose, p.Location, p.Description} {
		if strings.TrimSpace(optional) != "" {
			parts = append(parts, optional)
		}
	}
	if p.Budget > 0 {
		parts = append(parts, strconv.FormatFloat(p.Budget, 'f', -1, 64))
	}
	if strings.TrimSpace(p.Currency) != "" {
		parts = append(parts, p.Currency)
	}
	return strings.Join(parts, " ")
}

func consultationIntro(p contractx.ConsultationParams) string {
	intro := fmt.Sprintf("Here's what I found about %s", p.Subject)
	if strings.TrimSpace(p.Location) != "" {
		intro += fmt.Sprintf(" in %s", p.Location)
	}
	if strings.TrimSpace(p.Purpose) != "" {
		intro += fmt.Sprintf(" for %s", p.Purpose)
	}
	return intro + ":"
}

func consultationFailureMessage(p contractx.ConsultationParams) string {
	return fmt.Sprintf("I couldn't find information about %s. Please try again or contact support.", p.Subject)
}
