package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/sharepay/sharepay-go/internal/cli/output"
	"github.com/sharepay/sharepay-go/internal/core/domain"
)

// DashboardCommand lists the user's trips.
func DashboardCommand() *cli.Command {
	return guarded(page("/dashboard"), &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Show your account and trips",
		Action:  dashboard,
	})
}

func dashboard(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}
	dash, err := withLoading(c, rt, "Loading trips...", svc.Trips.Dashboard)
	if err != nil {
		return err
	}

	wide := ParseGlobalFlags(c).Wide
	return render(c, rt, dash, func(w io.Writer) error {
		fmt.Fprintf(w, "%s <%s>\n\n", dash.User.Username, dash.User.Email)
		if len(dash.Trips) == 0 {
			fmt.Fprintln(w, "No trips yet. Create one with `sharepay-cli trip create --name NAME`.")
			return nil
		}
		headers := []string{"ID", "NAME", "CURRENCY", "CREATED"}
		if wide {
			headers = append(headers, "DESCRIPTION")
		}
		t := &output.Table{Headers: headers}
		for _, trip := range dash.Trips {
			row := []string{
				strconv.FormatInt(trip.ID, 10),
				trip.Name,
				trip.Currency,
				output.FormatDate(trip.CreatedAt),
			}
			if wide {
				row = append(row, trip.Description)
			}
			t.AddRow(row...)
		}
		return t.Render(w)
	})
}

// TripCommand returns the trip subcommand group.
func TripCommand() *cli.Command {
	return &cli.Command{
		Name:  "trip",
		Usage: "Manage trips",
		Subcommands: []*cli.Command{
			guarded(page("/dashboard"), &cli.Command{
				Name:  "create",
				Usage: "Create a trip",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Trip name", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description"},
					&cli.StringFlag{Name: "currency", Usage: "ISO currency code", Value: domain.DefaultCurrency},
				},
				Action: tripCreate,
			}),
			{
				Name:  "member",
				Usage: "Manage trip members",
				Subcommands: []*cli.Command{
					guarded(tripPage, &cli.Command{
						Name:      "add",
						Usage:     "Add a registered user or a guest to a trip",
						ArgsUsage: "TRIP_ID NAME",
						Action:    tripMemberAdd,
					}),
				},
			},
			guarded(tripPage, &cli.Command{
				Name:      "settlement",
				Aliases:   []string{"settle"},
				Usage:     "Show who owes whom",
				ArgsUsage: "TRIP_ID",
				Action:    tripSettlement,
			}),
		},
	}
}

func tripCreate(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}

	in := &domain.TripInput{
		Name:        c.String("name"),
		Description: c.String("description"),
		Currency:    c.String("currency"),
	}
	msg, err := withLoading(c, rt, "Creating trip...", func(ctx context.Context) (*domain.Message, error) {
		return svc.Trips.CreateTrip(ctx, in)
	})
	if err != nil {
		return err
	}

	rt.Console.Success(fmt.Sprintf("%s (trip %d)", messageOr(msg, "Trip created"), msg.TripID))
	rt.Nav.Redirect(fmt.Sprintf("/trip/%d", msg.TripID))
	return nil
}

func tripMemberAdd(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	tripID, err := argID(c, 0, "TRIP_ID")
	if err != nil {
		return err
	}
	name := c.Args().Get(1)
	if name == "" {
		return domain.ErrMissingArgument.WithDetails("NAME")
	}
	svc, err := rt.Services(c.Context)
	if err != nil {
		return err
	}

	msg, err := svc.Trips.AddMember(c.Context, tripID, &domain.MemberInput{Name: name})
	if err != nil {
		return err
	}
	rt.Console.Success(messageOr(msg, "Added "+name))
	return nil
}

func tripSettlement(c *cli.Context) error {
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

	st, err := withLoading(c, rt, "Calculating settlement...", func(ctx context.Context) (*domain.Settlement, error) {
		return svc.Trips.Settlement(ctx, tripID)
	})
	if err != nil {
		return err
	}

	return render(c, rt, st, func(w io.Writer) error {
		if len(st.Transactions) == 0 {
			fmt.Fprintln(w, "Everyone is settled up.")
			return nil
		}
		t := &output.Table{Headers: []string{"FROM", "TO", "AMOUNT"}}
		for _, tx := range st.Transactions {
			t.AddRow(tx.FromUser, tx.ToUser, output.FormatCurrency(tx.Amount, tx.Currency))
		}
		return t.Render(w)
	})
}
