package command

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// PaymentCommand returns the payment subcommand group.
func PaymentCommand() *cli.Command {
	return &cli.Command{
		Name:    "payment",
		Aliases: []string{"pay"},
		Usage:   "Record and edit payments",
		Subcommands: []*cli.Command{
			guarded(tripPage, &cli.Command{
				Name:      "add",
				Usage:     "Record a payment on a trip",
				ArgsUsage: "TRIP_ID",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "amount", Aliases: []string{"a"}, Usage: "Amount paid", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "What it was for", Required: true},
					&cli.StringFlag{Name: "currency", Usage: "ISO currency code", Value: domain.DefaultCurrency},
					&cli.StringFlag{Name: "date", Usage: "Payment date, YYYY-MM-DD"},
					&cli.Int64Flag{Name: "payer", Usage: "Trip member id of the payer (default: you)"},
					&cli.Int64SliceFlag{Name: "split", Usage: "Trip member ids sharing the cost", Required: true},
				},
				Action: paymentAdd,
			}),
			guarded(page("/trip"), &cli.Command{
				Name:      "get",
				Usage:     "Show a payment",
				ArgsUsage: "PAYMENT_ID",
				Action:    paymentGet,
			}),
			guarded(page("/trip"), &cli.Command{
				Name:      "update",
				Usage:     "Edit a payment you paid",
				ArgsUsage: "PAYMENT_ID",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "amount", Aliases: []string{"a"}, Usage: "New amount"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.StringFlag{Name: "currency", Usage: "New currency code"},
					&cli.StringFlag{Name: "date", Usage: "New date, YYYY-MM-DD"},
					&cli.Int64Flag{Name: "payer", Usage: "New payer trip member id"},
					&cli.Int64SliceFlag{Name: "split", Usage: "New split list (default: unchanged)"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation"},
				},
				Action: paymentUpdate,
			}),
		},
	}
}

func paymentAdd(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	tripID, err := argID(c, 0, "TRIP_ID")
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}

	in := &domain.PaymentInput{
		TripID:            tripID,
		Amount:            c.Float64("amount"),
		Currency:          c.String("currency"),
		Description:       c.String("description"),
		Date:              c.String("date"),
		PayerTripMemberID: c.Int64("payer"),
		SplitWith:         c.Int64Slice("split"),
	}
	msg, err := withLoading(c, rt, "Saving payment...", func(ctx context.Context) (*domain.Message, error) {
		return svc.Payment.AddPayment(ctx, in)
	})
	if err != nil {
		return err
	}
	rt.Console.Success(fmt.Sprintf("%s: %s %s", messageOr(msg, "Payment added"),
		in.Description, output.FormatCurrency(in.Amount, in.Currency)))
	return nil
}

func paymentGet(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	id, err := argID(c, 0, "PAYMENT_ID")
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}

	p, err := svc.Payment.GetPayment(c.Context, id)
	if err != nil {
		return err
	}
	return render(c, rt, p, func(w io.Writer) error {
		return paymentTable(w, p)
	})
}

func paymentTable(w io.Writer, p *domain.Payment) error {
	t := &output.Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("ID", strconv.FormatInt(p.ID, 10))
	t.AddRow("Description", p.Description)
	t.AddRow("Amount", output.FormatCurrency(p.Amount, p.Currency))
	t.AddRow("Date", output.FormatDate(p.Date))
	t.AddRow("Payer", strconv.FormatInt(p.PayerTripMemberID, 10))
	t.AddRow("Split with", joinIDs(p.SplitWith))
	return t.Render(w)
}

func paymentUpdate(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	id, err := argID(c, 0, "PAYMENT_ID")
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}

	u := &domain.PaymentUpdate{SplitWith: c.Int64Slice("split")}
	if c.IsSet("amount") {
		v := c.Float64("amount")
		u.Amount = &v
	}
	if c.IsSet("description") {
		v := c.String("description")
		u.Description = &v
	}
	if c.IsSet("currency") {
		v := strings.ToUpper(c.String("currency"))
		u.Currency = &v
	}
	if c.IsSet("date") {
		v := c.String("date")
		u.Date = &v
	}
	if c.IsSet("payer") {
		v := c.Int64("payer")
		u.PayerTripMemberID = &v
	}
	if len(u.SplitWith) == 0 {
		current, err := svc.Payment.GetPayment(c.Context, id)
		if err != nil {
			return err
		}
		u.SplitWith = current.SplitWith
	}

	if !c.Bool("yes") && !output.Confirm(rt.In, rt.Console, fmt.Sprintf("Update payment %d?", id)) {
		fmt.Fprintln(rt.Console, "Cancelled.")
		return nil
	}

	msg, err := svc.Payment.UpdatePayment(c.Context, id, u)
	if err != nil {
		return err
	}
	rt.Console.Success(messageOr(msg, "Payment updated"))
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
