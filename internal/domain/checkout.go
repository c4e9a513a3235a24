package domain

// CheckoutPayload is the transient handoff between the cart step and the
// payment step. It lives in a single slot per user and is overwritten by
// the next checkout.
type CheckoutPayload struct {
	UserID        int64         `json:"user_id"`
	TotalPrice    int64         `json:"total_price"`
	Items         []PayloadItem `json:"item"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	Address       string        `json:"address,omitempty"`
}

type PayloadItem struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

type PaymentMethod string

const (
	MethodWallet       PaymentMethod = "linepay"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

type PaymentMethodMeta struct {
	Method      PaymentMethod `json:"method"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Supported   bool          `json:"supported"`
}

// PaymentMethods lists every displayed method in presentation order.
// Only the wallet method can currently be submitted.
func PaymentMethods() []PaymentMethodMeta {
	return []PaymentMethodMeta{
		{Method: MethodWallet, Label: "LINE Pay", Description: "Fast checkout with LINE Pay", Supported: true},
		{Method: MethodCreditCard, Label: "Credit card", Description: "VISA / MasterCard", Supported: false},
		{Method: MethodBankTransfer, Label: "Bank transfer", Description: "Transfer within 3 days of ordering", Supported: false},
	}
}

// MethodMeta looks up a method's display metadata. ok is false for
// methods this storefront does not know about.
func MethodMeta(m PaymentMethod) (PaymentMethodMeta, bool) {
	for _, meta := range PaymentMethods() {
		if meta.Method == m {
			return meta, true
		}
	}
	return PaymentMethodMeta{}, false
}
