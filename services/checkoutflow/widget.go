package checkoutflow

import (
	"context"
	"encoding/json"
)

// Flow is resolved once per checkout attempt: either SessionsFlow or AdvancedFlow.
type Flow interface {
	Selection() FlowSelection
}

// SessionsFlow lets the drop-in handle submission itself with a server-issued session.
type SessionsFlow struct {
	Session SessionHandle
}

func (SessionsFlow) Selection() FlowSelection {
	return FlowSessions
}

// AdvancedFlow renders the fetched catalog and hands collected card data to OnSubmit.
type AdvancedFlow struct {
	Offer    PaymentMethodsOffer
	OnSubmit SubmitHandler
}

func (AdvancedFlow) Selection() FlowSelection {
	return FlowAdvanced
}

// SubmitActions settles the drop-in's own pending submission
type SubmitActions interface {
	Resolve(result json.RawMessage)
	Reject()
}

// SubmitHandler receives the encrypted state collected by the drop-in
type SubmitHandler func(ctx context.Context, stateData json.RawMessage, actions SubmitActions)

// Callbacks are invoked by the drop-in when the payment reaches a terminal state
type Callbacks struct {
	OnPaymentCompleted func(result json.RawMessage)
	OnPaymentFailed    func(result json.RawMessage)
	OnError            func(err error)
}

type WidgetConfig struct {
	Amount           MinorAmount
	Locale           string
	CountryCode      string
	ClientKey        string
	Environment      string
	AnalyticsEnabled bool
	Flow             Flow
	Callbacks        Callbacks
}

type DropinConfig struct {
	PaymentMethodComponents []string
	OnCardError             func(err error)
}

// WidgetFactory creates the gateway's checkout widget.
type WidgetFactory interface {
	NewCheckout(ctx context.Context, cfg WidgetConfig) (Checkout, error)
}

// Checkout is a configured widget that can be mounted as a drop-in
type Checkout interface {
	Mount(ctx context.Context, container string, cfg DropinConfig) error
}
