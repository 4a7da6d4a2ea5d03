package payments

import (
	"fmt"
	"net/url"
)

// UPIDetails renders into the standard upi://pay deep link scanned by any
// UPI app.
type UPIDetails struct {
	VPA          string
	MerchantName string
	Amount       float64
	Note         string
}

func (u UPIDetails) Link() string {
	query := url.Values{}
	query.Set("pa", u.VPA)
	query.Set("pn", u.MerchantName)
	query.Set("am", fmt.Sprintf("%.2f", u.Amount))
	query.Set("cu", "INR")
	if u.Note != "" {
		query.Set("tn", u.Note)
	}
	return "upi://pay?" + query.Encode()
}
