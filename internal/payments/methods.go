package payments

import "fmt"

// Method is the checkout path the customer picked. The three methods are
// mutually exclusive within one checkout session.
type Method string

const (
	MethodUPI          Method = "upi"
	MethodBankTransfer Method = "bank"
	MethodRazorpay     Method = "razorpay"
)

func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodUPI, MethodBankTransfer, MethodRazorpay:
		return Method(raw), nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", raw)
	}
}
