// Package prompt builds the system prompt the chat service hands to the
// model: the persona template plus the business-type task catalog, the
// declared function contracts, and the live category list.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
)

//go:embed template/system.txt
var systemRaw string

// ToolSpec describes one callable intent to the model.
type ToolSpec struct {
	Intent      string
	Description string
	Parameters  []string
}

// Specs lists the dispatchable intents in registry order. The parameter
// names here must match the dispatcher's parameter contracts.
func Specs() []ToolSpec {
	return []ToolSpec{
		{
			Intent:      contractx.IntentCheckProductAvailability,
			Description: "Check if a product is available and get price information",
			Parameters:  []string{"product_name", "category (optional)"},
		},
		{
			Intent:      contractx.IntentTrackOrder,
			Description: "Track an order status and delivery information",
			Parameters:  []string{"order_id"},
		},
		{
			Intent:      contractx.IntentApplyDiscount,
			Description: "Apply a discount code to a product",
			Parameters:  []string{"product_name", "discount_code"},
		},
		{
			Intent:      contractx.IntentRecommendAlternatives,
			Description: "Recommend alternative products when a requested item is out of stock",
			Parameters:  []string{"product_name"},
		},
		{
			Intent:      contractx.IntentHandleNegotiation,
			Description: "Handle price negotiations for products",
			Parameters:  []string{"product_name", "offered_price", "max_price (optional)", "min_price (optional)"},
		},
		{
			Intent:      contractx.IntentConsultationService,
			Description: "Handle consultation with external information from the web",
			Parameters: []string{
				"consultation_type", "subject", "business_type (optional)", "description (optional)",
				"location (optional)", "budget (optional)", "currency (optional)", "purpose (optional)",
			},
		},
	}
}

// sectorTasks maps a business type to the task list woven into the persona.
// Unknown business types fall back to a generic task list.
var sectorTasks = map[string]string{
	"online_clothing_store":    "helping customers find clothing items, providing size guides, checking inventory, handling orders and returns, offering styling advice, processing payments, managing delivery tracking",
	"gadget_shop":              "advising on gadget features and specifications, checking product availability, providing pricing information, handling warranty inquiries, assisting with order tracking, offering technical support guidance",
	"general_ecommerce_store":  "answering product questions, checking availability, processing orders, handling returns and exchanges, providing shipping information, managing customer complaints, offering product recommendations",
	"wig_hair_vendor":          "helping customers choose hair types and textures, providing styling advice, checking availability, handling orders and returns, offering care instructions, managing custom orders",
	"skincare_brand":           "advising on skincare routines, explaining product ingredients, providing usage instructions, handling orders and returns, answering skin concern questions, managing subscription services",
	"pharmacy":                 "providing medication information, checking prescription status, explaining drug interactions, handling insurance inquiries, managing refill requests, offering health consultations",
	"restaurant":               "taking food orders, providing menu information, handling reservations, managing delivery requests, answering dietary questions, processing payments, handling complaints",
	"real_estate_agent":        "showing available properties, providing property details, scheduling viewings, explaining purchase processes, handling negotiations, offering market insights, managing documentation",
	"property_manager":         "handling tenant inquiries, managing maintenance requests, processing rent payments, scheduling inspections, handling lease renewals, managing property viewings",
	"tailor_fashion_designer":  "discussing design options, taking measurements, providing fabric choices, handling custom orders, scheduling fittings, managing alterations, processing payments",
	"private_clinic":           "scheduling appointments, providing medical information, handling insurance inquiries, managing patient records, explaining procedures, processing payments, handling referrals",
	"private_tutor":            "explaining subject expertise, scheduling lessons, providing learning materials, handling payment arrangements, tracking student progress, offering assessment services",
	"event_planner":            "discussing event requirements, providing venue options, handling vendor coordination, managing timelines, offering package deals, processing bookings and payments",
	"tax_consultant":           "explaining tax services, scheduling consultations, providing compliance guidance, handling document preparation, offering advisory services, managing filing deadlines",
	"web_development_agency":   "explaining development services, providing portfolio examples, handling project requirements, managing timelines, offering maintenance services, processing project payments",
	"travel_agency":            "providing travel packages, handling flight and accommodation bookings, offering travel insurance, managing itinerary planning, providing destination information, processing travel payments",
	"hotel":                    "handling room reservations, providing amenity information, managing check-in processes, offering concierge services, handling special requests, processing booking payments",
	"courier_dispatch_service": "handling pickup and delivery requests, providing tracking information, managing scheduling, offering pricing quotes, handling special delivery requirements, processing payments",
}

const defaultTasks = "assisting customers with general inquiries, sales, and complaints"

// BuildSystemPrompt renders the persona template for a business type and the
// current catalog categories.
func BuildSystemPrompt(businessType string, categories []string) string {
	tasks, ok := sectorTasks[strings.ToLower(strings.TrimSpace(businessType))]
	if !ok {
		tasks = defaultTasks
	}

	lines := make([]string, 0, len(Specs()))
	for _, spec := range Specs() {
		lines = append(lines, fmt.Sprintf("- %s: %s (Parameters: %s)",
			spec.Intent, spec.Description, strings.Join(spec.Parameters, ", ")))
	}

	out := strings.TrimSpace(systemRaw)
	out = strings.ReplaceAll(out, "{{business_type}}", businessType)
	out = strings.ReplaceAll(out, "{{tasks}}", tasks)
	out = strings.ReplaceAll(out, "{{tools}}", strings.Join(lines, "\n"))
	out = strings.ReplaceAll(out, "{{categories}}", strings.Join(categories, ", "))
	return out
}
