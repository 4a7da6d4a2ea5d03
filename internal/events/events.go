package events

const (
	OrderCreatedExchange     = "order_created_exchange"
	PaymentConfirmedExchange = "payment_confirmed_exchange"
)

type OrderCreatedEvent struct {
	OrderID       string      `json:"orderId"`
	UserName      string      `json:"userName"`
	UserPhone     string      `json:"userPhone"`
	UserEmail     string      `json:"userEmail,omitempty"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Weight    string  `json:"weight"`
	Price     float64 `json:"price"`
	Quantity  int32   `json:"quantity"`
}

type PaymentConfirmedEvent struct {
	OrderID           string  `json:"orderId"`
	RazorpayOrderID   string  `json:"razorpayOrderId"`
	RazorpayPaymentID string  `json:"razorpayPaymentId"`
	TotalAmount       float64 `json:"totalAmount"`
}
