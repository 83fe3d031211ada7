package checkoutadyen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/adyendemo/lib/myerrors"
	"github.com/MarcGrol/adyendemo/lib/mylog"
)

func parseWebhookNotification(body []byte) (WebhookNotification, error) {
	event := WebhookNotification{}
	err := json.Unmarshal(body, &event)
	if err != nil {
		return event, myerrors.NewParseError(fmt.Errorf("error parsing webhook notification: %w", err))
	}
	if event.NotificationItems == nil {
		return event, myerrors.NewParseError(fmt.Errorf("webhook notification without notificationItems"))
	}
	return event, nil
}

// webhookNotification logs every notification item. The sender is not authenticated and
// nothing is correlated with the shopper's checkout: the notification is informational only.
func (s *service) webhookNotification(c context.Context, event WebhookNotification) []WebhookEventKind {
	kinds := make([]WebhookEventKind, 0, len(event.NotificationItems))
	for _, item := range event.NotificationItems {
		kinds = append(kinds, s.processNotificationItem(c, item.NotificationRequestItem))
	}
	return kinds
}

func (s *service) processNotificationItem(c context.Context, item NotificationRequestItem) WebhookEventKind {
	kind := classifyEvent(item.EventCode, item.Success == "true")

	switch kind {
	case WebhookPaymentAuthorised:
		s.logger.Log(c, item.MerchantReference, mylog.SeverityInfo, "Webhook: payment authorized: %s", item.PspReference)
	case WebhookPaymentFailed:
		s.logger.Log(c, item.MerchantReference, mylog.SeverityWarn, "Webhook: payment failed: %s (%s)", item.PspReference, item.Reason)
	case WebhookPaymentCaptured:
		s.logger.Log(c, item.MerchantReference, mylog.SeverityInfo, "Webhook: payment captured: %s", item.PspReference)
	case WebhookPaymentRefunded:
		s.logger.Log(c, item.MerchantReference, mylog.SeverityInfo, "Webhook: payment refunded: %s", item.PspReference)
	default:
		s.logger.Log(c, item.MerchantReference, mylog.SeverityInfo, "Webhook: unhandled event %s: %s", item.EventCode, item.PspReference)
	}

	return kind
}

func classifyEvent(eventCode string, success bool) WebhookEventKind {
	// https://docs.adyen.com/development-resources/webhooks/webhook-types#standard-webhook
	switch eventCode {
	case "AUTHORISATION":
		if success {
			return WebhookPaymentAuthorised
		}
		return WebhookPaymentFailed
	case "CAPTURE":
		return WebhookPaymentCaptured
	case "REFUND":
		return WebhookPaymentRefunded
	default:
		return WebhookUnhandled
	}
}
