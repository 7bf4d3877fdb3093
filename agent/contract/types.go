package contract

import "time"

// Intent names recognized by the dispatcher. The set is closed: every intent
// here has a typed parameter struct below and exactly one bound handler.
const (
	IntentCheckProductAvailability = "check_product_availability"
	IntentTrackOrder               = "track_order"
	IntentApplyDiscount            = "apply_discount"
	IntentRecommendAlternatives    = "recommend_alternatives"
	IntentHandleNegotiation        = "handle_negotiation"
	IntentConsultationService      = "consultation_service"
)

// IntentCall is the structured action extracted from a model response.
// Parameters stay untyped here; the dispatcher is the single place where they
// are converted into a typed parameter struct.
type IntentCall struct {
	Intent     string         `json:"intent"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ParsedResponse is the parser's output. ResponseText is always populated,
// falling back to the raw model text when structure extraction fails.
type ParsedResponse struct {
	ResponseText string      `json:"response_to_user"`
	IntentCall   *IntentCall `json:"function_call,omitempty"`
}

// ToolResult is the normalized envelope every handler returns. Exactly one of
// Result or Error is populated; Result carries one of the typed *Result
// structs below.
type ToolResult struct {
	Intent string `json:"intent,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Messager is implemented by tool results that carry a user-facing message.
type Messager interface {
	UserMessage() string
}

// Message returns the user-facing message of the result, or "" when the
// result carries none (or is an error).
func (r ToolResult) Message() string {
	if m, ok := r.Result.(Messager); ok {
		return m.UserMessage()
	}
	return ""
}

/* --------------------------- intent parameters --------------------------- */

type CheckAvailabilityParams struct {
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category,omitempty"`
}

type TrackOrderParams struct {
	OrderID string `json:"order_id" validate:"required"`
}

type ApplyDiscountParams struct {
	ProductName  string `json:"product_name" validate:"required"`
	DiscountCode string `json:"discount_code" validate:"required"`
}

type RecommendAlternativesParams struct {
	ProductName string `json:"product_name" validate:"required"`
}

// OfferedPrice is a pointer so an omitted offer fails validation instead of
// defaulting to a zero-naira offer; an explicit 0 is still a valid offer.
type NegotiationParams struct {
	ProductName  string   `json:"product_name" validate:"required"`
	OfferedPrice *float64 `json:"offered_price" validate:"required,gte=0"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
}

type ConsultationParams struct {
	ConsultationType string  `json:"consultation_type" validate:"required"`
	Subject          string  `json:"subject" validate:"required"`
	BusinessType     string  `json:"business_type,omitempty"`
	Description      string  `json:"description,omitempty"`
	Location         string  `json:"location,omitempty"`
	Budget           float64 `json:"budget,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	Purpose          string  `json:"purpose,omitempty"`
}

/* ----------------------------- tool results ------------------------------ */

// AvailabilityResult reports a catalog lookup.
type AvailabilityResult struct {
	Found     bool   `json:"found"`
	Product   string `json:"product,omitempty"`
	Category  string `json:"category,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Stock     int    `json:"stock,omitempty"`
	Available bool   `json:"available,omitempty"`
	Message   string `json:"message"`
}

func (r AvailabilityResult) UserMessage() string { return r.Message }

// Alternative is one in-stock substitute offered to the customer.
type Alternative struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

type AlternativesResult struct {
	Success      bool          `json:"success"`
	Product      string        `json:"product,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
	Message      string        `json:"message"`
}

func (r AlternativesResult) UserMessage() string { return r.Message }

type OrderResult struct {
	Found        bool   `json:"found"`
	OrderID      string `json:"order_id,omitempty"`
	Status       string `json:"status,omitempty"`
	Tracking     string `json:"tracking,omitempty"`
	DeliveryDate string `json:"delivery_date,omitempty"`
	Message      string `json:"message"`
}

func (r OrderResult) UserMessage() string { return r.Message }

type DiscountResult struct {
	Success         bool    `json:"success"`
	Product         string  `json:"product,omitempty"`
	OriginalPrice   int64   `json:"original_price,omitempty"`
	DiscountRate    float64 `json:"discount_rate,omitempty"`
	DiscountedPrice float64 `json:"discounted_price,omitempty"`
	Message         string  `json:"message"`
}

func (r DiscountResult) UserMessage() string { return r.Message }

// NegotiationResult is the handler-level outcome: the pure resolver's verdict
// plus the catalog context it was computed against.
type NegotiationResult struct {
	Success         bool     `json:"success"`
	Product         string   `json:"product,omitempty"`
	OriginalPrice   float64  `json:"original_price,omitempty"`
	MaxPrice        float64  `json:"max_price,omitempty"`
	MinPrice        float64  `json:"min_price,omitempty"`
	OfferedPrice    float64  `json:"offered_price,omitempty"`
	FinalPrice      *float64 `json:"final_price,omitempty"`
	CounterOffer    *float64 `json:"counter_offer,omitempty"`
	DiscountPercent *float64 `json:"discount_percentage,omitempty"`
	Message         string   `json:"message"`
}

func (r NegotiationResult) UserMessage() string { return r.Message }

// NegotiationOutcome is the pure resolver's verdict, before any message
// formatting. Computed fresh per call and never reused across turns.
type NegotiationOutcome struct {
	Success         bool
	FinalPrice      *float64
	CounterOffer    *float64
	DiscountPercent *float64
}

type ConsultationResult struct {
	Success          bool           `json:"success"`
	ConsultationType string         `json:"consultation_type"`
	Subject          string         `json:"subject"`
	SearchQueryUsed  string         `json:"search_query_used"`
	Response         string         `json:"response"`
	Timestamp        time.Time      `json:"timestamp"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	ErrorDetail      string         `json:"error,omitempty"`
}

func (r ConsultationResult) UserMessage() string { return r.Response }
