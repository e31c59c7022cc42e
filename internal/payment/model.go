package payment

// ProductPayload is the product as sent to the payment provider.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Images      string  `json:"images,omitempty"`
}

// Task asks the mirror to create ProductID at the provider.
type Task struct {
	ProductID int
	Payload   ProductPayload
}

type createProductResponse struct {
	Success         bool   `json:"success"`
	StripeProductID string `json:"stripeProductId"`
	Error           string `json:"error"`
}
