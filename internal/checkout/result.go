package checkout

// Outcome buckets the provider's raw return code into one of the
// terminal presentations. The mapping is purely presentational; it
// never mutates cart or order state.
type Outcome string

const (
	// OutcomeAuthorized: authentication done, payment authorization pending.
	OutcomeAuthorized Outcome = "authorized"
	// OutcomeCancelled: the user backed out or the provider timed out.
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
	OutcomeCompleted Outcome = "completed"
	// OutcomeUnknown degrades gracefully instead of failing.
	OutcomeUnknown Outcome = "unknown"
)

type Result struct {
	Code    string  `json:"code"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
	// CanViewOrder exposes the order-viewing action, only on completion.
	CanViewOrder bool `json:"can_view_order"`
}

// mapReturnCode translates the provider's raw codes. Unrecognized codes
// degrade to a generic contact-support presentation.
func mapReturnCode(code string) Result {
	switch code {
	case "0110":
		return Result{Code: code, Outcome: OutcomeAuthorized, Message: "Payment authenticated, waiting for authorization."}
	case "0121":
		return Result{Code: code, Outcome: OutcomeCancelled, Message: "Payment was cancelled or timed out."}
	case "0122":
		return Result{Code: code, Outcome: OutcomeFailed, Message: "Payment failed, please try again later."}
	case "0123":
		return Result{Code: code, Outcome: OutcomeCompleted, Message: "Payment completed. Thank you for your purchase!", CanViewOrder: true}
	default:
		return Result{Code: code, Outcome: OutcomeUnknown, Message: "Unknown transaction status, please contact support."}
	}
}
