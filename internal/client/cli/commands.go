package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/paytoken/internal/client/models"
	"github.com/dmitrijs2005/paytoken/internal/shared"
)

// Pay prompts for card details and submits them. The card number and CV2
// are read without echo and never printed.
func (a *App) Pay(ctx context.Context) error {

	pan, err := GetSecret("Card number: ", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(pan)

	expiration, err := GetSimpleText(a.reader, "Expiration (MM/YY)", a.out)
	if err != nil {
		return err
	}

	cv2, err := GetSecret("CV2: ", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(cv2)

	req := &models.PaymentRequest{CardNumber: string(pan), Expiration: expiration, CV2: string(cv2)}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.gateway.Pay(ctx, req)
	if err != nil {
		return fmt.Errorf("payment for card %s failed: %w", models.MaskCard(req.CardNumber), err)
	}

	fmt.Fprintf(a.out, "Payment accepted for card %s, transaction id %d\n", models.MaskCard(req.CardNumber), res.TransactionID)
	return nil
}

func (a *App) Orders(ctx context.Context) error {

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.gateway.Orders(ctx)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No orders")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTOKEN\tCREATED")
	for _, o := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", o.ID, o.Token, o.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

func (a *App) Order(ctx context.Context, id int64) error {

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	o, err := a.gateway.Order(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:      %d\nToken:   %s\nCreated: %s\nUpdated: %s\n",
		o.ID, o.Token, o.CreatedAt.Format(time.RFC3339), o.UpdatedAt.Format(time.RFC3339))
	return nil
}

func (a *App) Health(ctx context.Context, service string) error {

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	ok, err := a.health.Check(ctx, service)
	if err != nil {
		return err
	}

	name := service
	if name == "" {
		name = "gateway"
	}
	state := "NOT_SERVING"
	if ok {
		state = "SERVING"
	}
	fmt.Fprintf(a.out, "%s: %s\n", name, state)
	return nil
}
