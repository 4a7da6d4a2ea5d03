package payments_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonuarjun3120/krishpafoods/internal/payments"
)

const testSecret = "test_key_secret"

func sign(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		signature := sign("order_N5Yqo2", "pay_M2xQz9")
		assert.True(t, payments.VerifySignature("order_N5Yqo2", "pay_M2xQz9", signature, testSecret))
	})

	t.Run("Tampered Payment ID", func(t *testing.T) {
		signature := sign("order_N5Yqo2", "pay_M2xQz9")
		assert.False(t, payments.VerifySignature("order_N5Yqo2", "pay_other", signature, testSecret))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		signature := sign("order_N5Yqo2", "pay_M2xQz9")
		assert.False(t, payments.VerifySignature("order_N5Yqo2", "pay_M2xQz9", signature, "other_secret"))
	})
}

func TestUPILink(t *testing.T) {
	details := payments.UPIDetails{
		VPA:          "krishpafoods@ybl",
		MerchantName: "Krishpa Foods",
		Amount:       548,
		Note:         "Order KF-1042",
	}

	link := details.Link()

	assert.Contains(t, link, "upi://pay?")
	assert.Contains(t, link, "pa=krishpafoods%40ybl")
	assert.Contains(t, link, "am=548.00")
	assert.Contains(t, link, "cu=INR")
}

type stubVerifier struct{ accept bool }

func (s stubVerifier) VerifyCallback(gatewayOrderID, paymentID, signature string) bool {
	return s.accept
}

func TestConfirmationSources(t *testing.T) {
	t.Run("Manual Acknowledgment Resolves", func(t *testing.T) {
		src := payments.NewManualAcknowledgment("order-1")
		src.Acknowledge()

		c, err := src.Await(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "order-1", c.OrderID)
		assert.Equal(t, "manual", c.Source)
	})

	t.Run("Closed Source Does Not Fire", func(t *testing.T) {
		src := payments.NewManualAcknowledgment("order-1")
		src.Close()

		_, err := src.Await(context.Background())

		assert.ErrorIs(t, err, payments.ErrConfirmationClosed)
	})

	t.Run("Gateway Callback Rejects Bad Signature", func(t *testing.T) {
		src := payments.NewGatewayCallback(stubVerifier{accept: false})

		accepted := src.Resolve(payments.Confirmation{OrderID: "order-1"})

		assert.False(t, accepted)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := src.Await(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Gateway Callback Accepts Verified Signature", func(t *testing.T) {
		src := payments.NewGatewayCallback(stubVerifier{accept: true})

		accepted := src.Resolve(payments.Confirmation{OrderID: "order-1", PaymentID: "pay-1"})
		require.True(t, accepted)

		c, err := src.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "gateway", c.Source)
	})
}

func TestSession(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		session := payments.NewSession()

		require.NoError(t, session.SelectMethod(payments.MethodRazorpay))
		require.NoError(t, session.BeginPayment(payments.NewManualAcknowledgment("order-1")))
		require.NoError(t, session.Confirm())

		assert.Equal(t, payments.StateConfirmed, session.State())
	})

	t.Run("Confirmed Is Terminal", func(t *testing.T) {
		session := payments.NewSession()
		require.NoError(t, session.SelectMethod(payments.MethodUPI))
		require.NoError(t, session.BeginPayment(payments.NewManualAcknowledgment("order-1")))
		require.NoError(t, session.Confirm())

		err := session.SelectMethod(payments.MethodBankTransfer)

		var transitionErr *payments.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})

	t.Run("Failed Returns To Method Selection", func(t *testing.T) {
		session := payments.NewSession()
		require.NoError(t, session.SelectMethod(payments.MethodRazorpay))
		require.NoError(t, session.BeginPayment(payments.NewManualAcknowledgment("order-1")))
		require.NoError(t, session.Fail())

		assert.Equal(t, payments.StateFailed, session.State())
		assert.NoError(t, session.SelectMethod(payments.MethodUPI))
		assert.Equal(t, payments.StateMethodSelected, session.State())
	})

	t.Run("Reselecting Method Discards Pending Source", func(t *testing.T) {
		session := payments.NewSession()
		src := payments.NewManualAcknowledgment("order-1")

		require.NoError(t, session.SelectMethod(payments.MethodUPI))
		require.NoError(t, session.BeginPayment(src))
		require.NoError(t, session.SelectMethod(payments.MethodBankTransfer))

		_, err := src.Await(context.Background())
		assert.ErrorIs(t, err, payments.ErrConfirmationClosed)
	})

	t.Run("Cannot Begin Payment Twice", func(t *testing.T) {
		session := payments.NewSession()
		require.NoError(t, session.SelectMethod(payments.MethodUPI))
		require.NoError(t, session.BeginPayment(payments.NewManualAcknowledgment("order-1")))

		err := session.BeginPayment(payments.NewManualAcknowledgment("order-1"))

		var transitionErr *payments.InvalidTransitionError
		assert.ErrorAs(t, err, &transitionErr)
	})
}
