package payments

// BankTransferDetails are the static account details shown for the manual
// bank-transfer path.
type BankTransferDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bankName"`
}
