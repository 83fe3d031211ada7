package checkoutflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MarcGrol/adyendemo/lib/mylog"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration for Adyen Checkout")
	ErrCheckoutDiscarded = errors.New("checkout discarded: results were cleared during initialization")
)

const cardErrorMessage = "An error occurred in the card component"

// Session is the one checkout attempt that is active at a time
type Session struct {
	Reference  string
	Flow       Flow
	Checkout   Checkout
	generation uint64
	finished   bool
}

// initialization is shared by every caller that arrives while it runs: they all receive its result
type initialization struct {
	done       chan struct{}
	generation uint64
	waiters    int
	session    *Session
	err        error
}

// Orchestrator decides between the sessions and the advanced flow, sequences the endpoint calls
// and keeps the state the page renders.
type Orchestrator struct {
	client  *Client
	widgets WidgetFactory
	logger  mylog.Logger

	sync.Mutex
	flow FlowSelection
	// generation changes whenever results are cleared; writes of an older generation are dropped
	generation     uint64
	active         *Session
	pending        *initialization
	outcome        *PaymentOutcome
	sessionHandle  *SessionHandle
	offer          *PaymentMethodsOffer
	paymentDetails json.RawMessage
}

func NewOrchestrator(client *Client, widgets WidgetFactory) *Orchestrator {
	return &Orchestrator{
		client:  client,
		widgets: widgets,
		logger:  mylog.New("checkoutflow"),
		flow:    FlowSessions,
	}
}

// InitializeCheckout builds the widget for the configured flow.
// While a session is active the existing session is returned and no endpoint is called.
// Callers arriving during an initialization wait for it and get its result, failures included.
func (o *Orchestrator) InitializeCheckout(ctx context.Context, cfg PaymentConfig) (*Session, error) {
	if cfg.Amount.Value == 0 || cfg.Amount.Currency == "" || cfg.Reference == "" {
		o.recordError(ErrInvalidConfig)
		return nil, ErrInvalidConfig
	}

	if cfg.Flow == "" {
		cfg.Flow = o.Flow()
	}

	pending, owner, existing := o.acquire()
	if existing != nil {
		return existing, nil
	}
	if !owner {
		o.logger.Log(ctx, cfg.Reference, mylog.SeverityDebug, "Waiting for checkout initialization in progress")
		<-pending.done
		return pending.session, pending.err
	}

	session, err := o.initialize(ctx, cfg, pending.generation)
	o.settle(ctx, cfg.Reference, pending, session, err)

	return pending.session, pending.err
}

// acquire returns the active session, or the initialization in progress, or reserves a new initialization
func (o *Orchestrator) acquire() (*initialization, bool, *Session) {
	o.Lock()
	defer o.Unlock()

	if o.active != nil {
		return nil, false, o.active
	}
	if o.pending != nil {
		o.pending.waiters++
		return o.pending, false, nil
	}

	o.pending = &initialization{
		done:       make(chan struct{}),
		generation: o.generation,
	}
	return o.pending, true, nil
}

// settle publishes the result of an initialization to its waiters
func (o *Orchestrator) settle(ctx context.Context, reference string, pending *initialization, session *Session, err error) {
	o.Lock()
	defer o.Unlock()
	defer close(pending.done)

	if o.pending == pending {
		o.pending = nil
	}

	switch {
	case pending.generation != o.generation:
		o.logger.Log(ctx, reference, mylog.SeverityInfo, "Checkout initialization discarded")
		pending.err = ErrCheckoutDiscarded
	case err != nil:
		o.outcome = &PaymentOutcome{Type: OutcomeError, Error: err.Error()}
		o.logger.Log(ctx, reference, mylog.SeverityWarn, "Checkout initialization failed: %s", err)
		pending.err = err
	default:
		if !session.finished {
			o.active = session
		}
		pending.session = session
	}
}

func (o *Orchestrator) initialize(ctx context.Context, cfg PaymentConfig, generation uint64) (*Session, error) {
	amount := cfg.Amount.Minor()
	shopper := ShopperRequest{
		Amount:        amount,
		CountryCode:   cfg.countryCode(),
		ShopperLocale: cfg.shopperLocale(),
		Reference:     cfg.Reference,
	}

	session := &Session{
		Reference:  cfg.Reference,
		generation: generation,
	}

	widgetCfg := WidgetConfig{
		Amount:           amount,
		Locale:           cfg.shopperLocale(),
		CountryCode:      cfg.countryCode(),
		AnalyticsEnabled: true,
		Callbacks:        o.terminalCallbacks(session),
	}

	switch cfg.Flow {
	case FlowSessions:
		handle, err := o.client.CreateSession(ctx, shopper)
		if err != nil {
			return nil, err
		}
		o.Lock()
		if o.generation == generation {
			o.sessionHandle = &handle
		}
		o.Unlock()

		widgetCfg.ClientKey = handle.ClientKey
		widgetCfg.Environment = handle.Environment
		widgetCfg.Flow = SessionsFlow{Session: handle}

	case FlowAdvanced:
		offer, err := o.client.PaymentMethods(ctx, shopper)
		if err != nil {
			return nil, err
		}
		o.Lock()
		if o.generation == generation {
			o.offer = &offer
		}
		o.Unlock()

		widgetCfg.ClientKey = offer.ClientKey
		widgetCfg.Environment = offer.Environment
		widgetCfg.Flow = AdvancedFlow{
			Offer:    offer,
			OnSubmit: o.submitHandler(session, cfg, amount),
		}

	default:
		return nil, fmt.Errorf("unknown checkout flow %q", cfg.Flow)
	}

	o.logger.Log(ctx, cfg.Reference, mylog.SeverityInfo, "Creating %s checkout for %s %d", cfg.Flow, amount.Currency, amount.Value)

	checkout, err := o.widgets.NewCheckout(ctx, widgetCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating checkout: %w", err)
	}
	session.Flow = widgetCfg.Flow
	session.Checkout = checkout

	return session, nil
}

// terminalCallbacks record the outcome and release the session they belong to,
// so a new InitializeCheckout is needed to try again.
func (o *Orchestrator) terminalCallbacks(session *Session) Callbacks {
	finish := func(outcome PaymentOutcome) {
		o.finish(session, outcome)
	}

	return Callbacks{
		OnPaymentCompleted: func(result json.RawMessage) {
			finish(PaymentOutcome{Type: OutcomeCompleted, Data: result})
		},
		OnPaymentFailed: func(result json.RawMessage) {
			finish(PaymentOutcome{Type: OutcomeFailed, Data: result})
		},
		OnError: func(err error) {
			finish(PaymentOutcome{Type: OutcomeError, Error: errorMessage(err)})
		},
	}
}

// finish ignores sessions that were released or discarded, so a late callback cannot overwrite newer results
func (o *Orchestrator) finish(session *Session, outcome PaymentOutcome) {
	o.Lock()
	defer o.Unlock()

	if !o.current(session) {
		return
	}
	o.outcome = &outcome
	session.finished = true
	if o.active == session {
		o.active = nil
	}
}

// current tells whether the session is the active one, or the one still being initialized
func (o *Orchestrator) current(session *Session) bool {
	if session.finished {
		return false
	}
	return o.active == session || (o.active == nil && session.generation == o.generation)
}

// submitHandler forwards the drop-in state to the payments endpoint and settles the drop-in accordingly
func (o *Orchestrator) submitHandler(session *Session, cfg PaymentConfig, amount MinorAmount) SubmitHandler {
	return func(ctx context.Context, stateData json.RawMessage, actions SubmitActions) {
		result, err := o.client.SubmitPayment(ctx, PaymentSubmission{
			StateData:   stateData,
			CountryCode: cfg.countryCode(),
			Locale:      cfg.shopperLocale(),
			Amount:      amount,
			Reference:   cfg.Reference,
		})
		if err != nil {
			o.logger.Log(ctx, cfg.Reference, mylog.SeverityWarn, "Payment submission rejected: %s", err)
			actions.Reject()
			return
		}

		o.Lock()
		if o.current(session) {
			o.paymentDetails = result
		}
		o.Unlock()

		actions.Resolve(result)
	}
}

// CreateDropin mounts the drop-in of an initialized session into the container
func (o *Orchestrator) CreateDropin(ctx context.Context, session *Session, container string) error {
	if session == nil || session.Checkout == nil {
		return fmt.Errorf("no checkout to mount")
	}

	return session.Checkout.Mount(ctx, container, DropinConfig{
		PaymentMethodComponents: []string{"card"},
		OnCardError: func(err error) {
			o.finish(session, PaymentOutcome{Type: OutcomeError, Error: cardErrorMessage})
		},
	})
}

// SelectFlow switches flow. Results of the previous flow are cleared, an active session is released
// and an initialization in progress is discarded.
func (o *Orchestrator) SelectFlow(flow FlowSelection) {
	o.Lock()
	defer o.Unlock()

	if o.flow != flow {
		o.active = nil
	}
	o.flow = flow
	o.clearResults()
}

// ClearResults resets all transient state the page renders. An initialization in progress is discarded.
func (o *Orchestrator) ClearResults() {
	o.Lock()
	defer o.Unlock()

	o.clearResults()
}

func (o *Orchestrator) clearResults() {
	o.generation++
	// Later callers start afresh instead of waiting for the discarded initialization
	o.pending = nil

	o.outcome = nil
	o.sessionHandle = nil
	o.offer = nil
	o.paymentDetails = nil
}

func (o *Orchestrator) Flow() FlowSelection {
	o.Lock()
	defer o.Unlock()
	return o.flow
}

func (o *Orchestrator) Active() *Session {
	o.Lock()
	defer o.Unlock()
	return o.active
}

func (o *Orchestrator) Outcome() *PaymentOutcome {
	o.Lock()
	defer o.Unlock()
	if o.outcome == nil {
		return nil
	}
	outcome := *o.outcome
	return &outcome
}

func (o *Orchestrator) SessionHandle() *SessionHandle {
	o.Lock()
	defer o.Unlock()
	if o.sessionHandle == nil {
		return nil
	}
	handle := *o.sessionHandle
	return &handle
}

func (o *Orchestrator) PaymentMethods() *PaymentMethodsOffer {
	o.Lock()
	defer o.Unlock()
	if o.offer == nil {
		return nil
	}
	offer := *o.offer
	return &offer
}

func (o *Orchestrator) PaymentDetails() json.RawMessage {
	o.Lock()
	defer o.Unlock()
	return o.paymentDetails
}

func (o *Orchestrator) recordError(err error) {
	o.Lock()
	defer o.Unlock()
	o.outcome = &PaymentOutcome{Type: OutcomeError, Error: errorMessage(err)}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "Unknown error occurred"
	}
	return err.Error()
}
