package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dmitrijs2005/paytoken/internal/client/client"
	"github.com/dmitrijs2005/paytoken/internal/client/config"
	"github.com/dmitrijs2005/paytoken/internal/flagx"
)

var ErrUsage = errors.New("usage: cli [flags] pay | orders | order <id> | health [service]")

type App struct {
	config  *config.Config
	gateway client.Gateway
	health  client.Health
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	hc, err := client.NewGRPCHealthClient(c.HealthAddr)
	if err != nil {
		return nil, err
	}

	gw := client.NewGatewayClient(c.GatewayAddr, c.RequestTimeout)

	return &App{config: c, gateway: gw, health: hc, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run executes the command found among args, or starts the interactive
// prompt when there is none.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.health.Close()

	words := flagx.Positional(args, config.FlagsWithValue)
	if len(words) == 0 {
		runREPL(ctx, a, bufio.NewScanner(a.reader))
		return nil
	}

	return a.dispatch(ctx, words[0], words[1:])
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "pay":
		return a.Pay(ctx)
	case "orders", "list":
		return a.Orders(ctx)
	case "order", "show":
		if len(args) != 1 {
			return ErrUsage
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		return a.Order(ctx, id)
	case "health":
		service := ""
		if len(args) > 0 {
			service = args[0]
		}
		return a.Health(ctx, service)
	default:
		return ErrUsage
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
