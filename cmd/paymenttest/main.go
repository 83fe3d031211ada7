package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/adyendemo/lib/myhttpclient"
	"github.com/MarcGrol/adyendemo/lib/mytime"
	"github.com/MarcGrol/adyendemo/services/checkoutflow"
)

type options struct {
	server    string
	flow      string
	amount    float64
	currency  string
	country   string
	locale    string
	reference string
	card      string
	timeout   time.Duration
}

func main() {
	err := newRootCommand(os.Stdout).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:          "paymenttest",
		Short:        "Run a checkout against a running payment server from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.server, "server", "s", "http://localhost:8080", "Base url of the payment server")
	cmd.Flags().StringVarP(&opts.flow, "flow", "f", string(checkoutflow.FlowSessions), "Checkout flow (sessions, advanced)")
	cmd.Flags().Float64VarP(&opts.amount, "amount", "a", 1000, "Amount in major units")
	cmd.Flags().StringVarP(&opts.currency, "currency", "c", "MXN", "Currency (USD, EUR, GBP, MXN)")
	cmd.Flags().StringVar(&opts.country, "country", "MX", "Shopper country code")
	cmd.Flags().StringVar(&opts.locale, "locale", "es-MX", "Shopper locale")
	cmd.Flags().StringVarP(&opts.reference, "reference", "r", "", "Payment reference, generated when empty")
	cmd.Flags().StringVar(&opts.card, "card", "visa", "Test card used by the advanced flow ("+strings.Join(cardNames(), ", ")+")")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout per request")

	return cmd
}

func run(ctx context.Context, out io.Writer, opts options) error {
	card, found := testCards[opts.card]
	if !found {
		return fmt.Errorf("unknown test card %q", opts.card)
	}

	flow := checkoutflow.FlowSelection(opts.flow)
	if flow != checkoutflow.FlowSessions && flow != checkoutflow.FlowAdvanced {
		return fmt.Errorf("unknown flow %q", opts.flow)
	}

	reference := opts.reference
	if reference == "" {
		reference = fmt.Sprintf("payment-%d", mytime.RealNower{}.Now().UnixMilli())
	}

	server := strings.TrimSuffix(opts.server, "/")
	orchestrator := checkoutflow.NewOrchestrator(
		checkoutflow.NewClient(server, myhttpclient.New(opts.timeout)),
		consoleWidgets{out: out, card: card, pageURL: server + "/payment-test"})
	orchestrator.SelectFlow(flow)

	session, err := orchestrator.InitializeCheckout(ctx, checkoutflow.PaymentConfig{
		Amount:        checkoutflow.Amount{Value: opts.amount, Currency: opts.currency},
		CountryCode:   opts.country,
		ShopperLocale: opts.locale,
		Reference:     reference,
	})
	if err != nil {
		return fmt.Errorf("error initializing checkout %s: %w", reference, err)
	}

	if handle := orchestrator.SessionHandle(); handle != nil {
		printJSON(out, "Session Data", handle)
	}
	if offer := orchestrator.PaymentMethods(); offer != nil {
		printJSON(out, "Payment Methods Response", offer)
	}

	err = orchestrator.CreateDropin(ctx, session, "dropin-container")
	if err != nil {
		return fmt.Errorf("error mounting drop-in: %w", err)
	}

	if details := orchestrator.PaymentDetails(); details != nil {
		printJSON(out, "Payment Details", details)
	}

	outcome := orchestrator.Outcome()
	if outcome != nil {
		printJSON(out, "Payment Result", outcome)
		if outcome.Type == checkoutflow.OutcomeError {
			return fmt.Errorf("payment %s: %s", reference, outcome.Error)
		}
	}

	return nil
}

func printJSON(out io.Writer, title string, value any) {
	body, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "%s: %s\n", title, err)
		return
	}
	fmt.Fprintf(out, "%s:\n%s\n", title, body)
}

func cardNames() []string {
	names := []string{}
	for name := range testCards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
