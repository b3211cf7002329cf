package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/angelmondragon/storefront/internal/cartsync"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/notify"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/types"
)

var errUsage = errors.New("invalid arguments")

// orderHistory reads back orders placed by earlier checkouts.
type orderHistory interface {
	GetOrder(ctx context.Context, orderID string) (storefront.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]storefront.Order, error)
}

// app owns the cart session for the lifetime of one command.
type app struct {
	out      io.Writer
	cart     *cartsync.Session
	catalog  *catalog.Catalog
	orders   orderHistory
	notifier *notify.Notifier
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	command, rest := args[0], args[1:]

	if command == "session" {
		fmt.Fprintln(a.out, a.cart.ID())
		return nil
	}
	switch command {
	case "products":
		return a.products(ctx)
	case "order":
		if len(rest) != 1 {
			return fmt.Errorf("%w: order <id>", errUsage)
		}
		return a.order(ctx, rest[0])
	case "orders":
		return a.history(ctx)
	}

	a.cart.Fetch(ctx)

	switch command {
	case "cart":
		a.renderCart(a.cart.Snapshot())
		return nil
	case "add":
		return a.add(ctx, rest)
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("%w: remove <id>", errUsage)
		}
		id, err := a.lineID(rest[0])
		if err != nil {
			return err
		}
		return a.mutate(ctx, storefront.OpRemoveItem, func() (storefront.Cart, error) {
			return a.cart.Remove(ctx, id)
		})
	case "update":
		if len(rest) != 2 {
			return fmt.Errorf("%w: update <id> <qty>", errUsage)
		}
		id, err := a.lineID(rest[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("%w: quantity %q is not a number", errUsage, rest[1])
		}
		return a.mutate(ctx, storefront.OpUpdateQuantity, func() (storefront.Cart, error) {
			return a.cart.UpdateQuantity(ctx, id, qty)
		})
	case "clear":
		return a.mutate(ctx, storefront.OpClearCart, func() (storefront.Cart, error) {
			return a.cart.Clear(ctx)
		})
	case "checkout":
		return a.checkout(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func (a *app) products(ctx context.Context) error {
	if _, err := a.catalog.Load(ctx); err != nil {
		a.notifier.Failed(ctx, storefront.OpListProducts, err)
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, group := range a.catalog.Groups() {
		fmt.Fprintf(tw, "%s\n", group.Category)
		for _, p := range group.Products {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.ID, p.Name, p.Price.Display())
		}
	}
	return tw.Flush()
}

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: add <id> [qty]", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(args) == 2 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: quantity %q is not a number", errUsage, args[1])
		}
		qty = parsed
	}
	return a.mutate(ctx, storefront.OpAddItem, func() (storefront.Cart, error) {
		return a.cart.AddQuantity(ctx, id, qty)
	})
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var info storefront.CustomerInfo
	fs.StringVar(&info.Name, "name", "", "customer name")
	fs.StringVar(&info.Email, "email", "", "customer email")
	fs.StringVar(&info.Phone, "phone", "", "customer phone")
	fs.StringVar(&info.Address, "address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	order, err := a.cart.Checkout(ctx, info)
	if err != nil {
		a.notifier.Failed(ctx, storefront.OpCheckout, err)
		return err
	}
	a.notifier.OrderConfirmed(ctx, order)
	a.renderOrder(order)
	return nil
}

func (a *app) order(ctx context.Context, orderID string) error {
	order, err := a.orders.GetOrder(ctx, orderID)
	if err != nil {
		a.notifier.Failed(ctx, storefront.OpGetOrder, err)
		return err
	}
	a.renderOrder(order)
	return nil
}

func (a *app) history(ctx context.Context) error {
	placed, err := a.orders.ListOrders(ctx, a.cart.ID())
	if err != nil {
		a.notifier.Failed(ctx, storefront.OpListOrders, err)
		return err
	}
	if len(placed) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, order := range placed {
		fmt.Fprintf(tw, "%s\t%d items\t%s\n", order.ID, storefront.Cart{Items: order.Items}.ItemCount(), order.Total.Display())
	}
	return tw.Flush()
}

func (a *app) mutate(ctx context.Context, op string, call func() (storefront.Cart, error)) error {
	cart, err := call()
	if err != nil {
		a.notifier.Failed(ctx, op, err)
		return err
	}
	a.renderCart(cart)
	return nil
}

func (a *app) renderCart(cart storefront.Cart) {
	if len(cart.Items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\tx%d\t%s\n", item.ProductID, item.Product.Name, item.Quantity, item.LineTotal().Display())
	}
	fmt.Fprintf(tw, "\t%d items\t\t%s\n", cart.ItemCount(), cart.DisplayTotal().Display())
	_ = tw.Flush()
}

func (a *app) renderOrder(order storefront.Order) {
	fmt.Fprintf(a.out, "Order %s\n", order.ID)
	fmt.Fprintf(a.out, "Estimated time: %s\n", order.EstimatedTime)
	fmt.Fprintf(a.out, "Total: %s\n", order.Total.Display())
}

// lineID prefers the id of a cart line whose text matches raw, so a line the
// backend keyed as "12" is sent back as "12" rather than 12.
func (a *app) lineID(raw string) (types.ProductID, error) {
	for _, item := range a.cart.Items() {
		if item.ProductID.String() == raw {
			return item.ProductID, nil
		}
	}
	return parseID(raw)
}

func parseID(raw string) (types.ProductID, error) {
	id, err := types.ParseProductID(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	return id, nil
}
