package notification

import "fmt"

// Templates the engine dispatches. Each renders a title and body from the
// data map; unknown keys render empty.
const (
	TemplateVendorContacted   = "vendor_contacted"
	TemplateQuoteReceived     = "quote_received"
	TemplateContractReady     = "contract_ready"
	TemplateDepositRequested  = "deposit_requested"
	TemplateBookingConfirmed  = "booking_confirmed"
	TemplateServiceDelivered  = "service_delivered"
	TemplateBalanceRequested  = "balance_requested"
	TemplateWorkflowCompleted = "workflow_completed"
	TemplateWorkflowCancelled = "workflow_cancelled"
	TemplatePaymentFailed     = "payment_failed"
	TemplatePaymentRefunded   = "payment_refunded"
	TemplateWorkflowReminder  = "workflow_reminder"
)

// Render resolves a template name to a push title and body.
func Render(template string, data map[string]string) (title, body string) {
	date := data["serviceDate"]
	switch template {
	case TemplateVendorContacted:
		return "New booking inquiry", fmt.Sprintf("A couple wants to book you for %s. Respond with a quote within 24 hours.", date)
	case TemplateQuoteReceived:
		return "Quote received", fmt.Sprintf("Your vendor sent a quote of %s %s. Review it within 72 hours.", data["currency"], data["amount"])
	case TemplateContractReady:
		return "Contract ready to sign", "Your contract has been generated. Sign it within 48 hours to secure your date."
	case TemplateDepositRequested:
		return "Deposit requested", fmt.Sprintf("Pay your deposit of %s %s to confirm the booking.", data["currency"], data["amount"])
	case TemplateBookingConfirmed:
		return "Booking confirmed", fmt.Sprintf("Your booking for %s is confirmed. See you there!", date)
	case TemplateServiceDelivered:
		return "Service delivered", "The vendor marked your service as delivered. The balance payment is up next."
	case TemplateBalanceRequested:
		return "Balance due", fmt.Sprintf("Pay the remaining balance of %s %s to complete your booking.", data["currency"], data["amount"])
	case TemplateWorkflowCompleted:
		return "All done", "Your booking is complete. Thank you!"
	case TemplateWorkflowCancelled:
		return "Booking cancelled", fmt.Sprintf("The booking for %s was cancelled. %s", date, data["reason"])
	case TemplatePaymentFailed:
		return "Payment failed", fmt.Sprintf("Your %s payment did not go through. Please retry from your dashboard.", data["paymentType"])
	case TemplatePaymentRefunded:
		return "Payment refunded", fmt.Sprintf("Your %s payment of %s %s was made against a replaced invoice and has been refunded in full.", data["paymentType"], data["currency"], data["amount"])
	case TemplateWorkflowReminder:
		return data["title"], data["body"]
	default:
		return "Update on your booking", "Open the app for details."
	}
}
