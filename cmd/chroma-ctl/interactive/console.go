// Package interactive provides the interactive command-line interface
// for chroma-ctl.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/chroma-sdk/chroma-go/pkg/backend/rest"
	"github.com/chroma-sdk/chroma-go/pkg/device"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
)

// Console handles interactive mode for chroma-ctl.
type Console struct {
	backend *rest.Backend
	dir     *device.Directory
	rl      *readline.Instance
}

// New creates a new interactive console over an initialized backend.
func New(b *rest.Backend, dir *device.Directory) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "chroma> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{backend: b, dir: dir, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "s":
			c.cmdStatus()

		case "devices", "d":
			c.cmdDevices()

		case "static":
			c.cmdStatic(ctx, args)

		case "clear":
			c.cmdClear(ctx, args)

		case "link":
			c.cmdLink(ctx, args)

		case "generic", "g":
			c.cmdGeneric(ctx, args)

		case "exit", "quit", "q":
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `Commands:
  status, s                      Show session and keep-alive state
  devices, d                     List device categories and known generics
  static <category> <#RRGGBB>    Set one color on a whole device
  clear <category>               Remove the active effect from a device
  link <position> <#RRGGBB>      Set one LED on the link device
  generic <uuid> <#RRGGBB>       Set a static effect on a generic device
  help, ?                        Show this help
  exit, quit, q                  Tear the session down and leave`)
}

func (c *Console) cmdStatus() {
	out := c.rl.Stdout()
	fmt.Fprintf(out, "State: %s\n", c.backend.State())

	if session, ok := c.backend.Session(); ok {
		fmt.Fprintf(out, "Session: %d at %s\n", session.ID, session.BaseURL)
	} else {
		fmt.Fprintln(out, "Session: none")
	}

	stats := c.backend.HeartbeatStats()
	health := "healthy"
	if !stats.Healthy {
		health = "unhealthy"
	}
	fmt.Fprintf(out, "Keep-alive: %s, tick %d, last beat %s\n", health, stats.LastTick, stats.LastBeat.Format("15:04:05.000"))
}

func (c *Console) cmdDevices() {
	out := c.rl.Stdout()
	fmt.Fprintln(out, "Categories: keyboard, mouse, mousepad, headset, keypad, chromalink")

	catalog := device.DefaultCatalog()
	fmt.Fprintf(out, "Known generic devices (%d):\n", catalog.Len())
	for _, e := range catalog.Entries() {
		fmt.Fprintf(out, "  %s  %s (%d LEDs)\n", e.ID, e.Name, e.LEDs)
	}
}

func (c *Console) cmdStatic(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: static <category> <#RRGGBB>")
		return
	}

	color, err := parseColor(args[1])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Bad color: %v\n", err)
		return
	}

	id, err := c.setStatic(ctx, args[0], color)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Effect %s active on %s\n", id, args[0])
}

func (c *Console) setStatic(ctx context.Context, category string, color effect.Color) (effect.ID, error) {
	switch category {
	case "keyboard":
		return c.dir.Keyboard().SetStatic(ctx, color)
	case "mouse":
		return c.dir.Mouse().SetStatic(ctx, color)
	case "mousepad":
		return c.dir.Mousepad().SetStatic(ctx, color)
	case "headset":
		return c.dir.Headset().SetStatic(ctx, color)
	case "keypad":
		return c.dir.Keypad().SetStatic(ctx, color)
	case "chromalink", "link":
		return c.dir.Link().SetStatic(ctx, color)
	default:
		return effect.Nil, fmt.Errorf("unknown category %q", category)
	}
}

func (c *Console) cmdClear(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: clear <category>")
		return
	}

	var err error
	switch args[0] {
	case "keyboard":
		err = c.dir.Keyboard().Clear(ctx)
	case "mouse":
		err = c.dir.Mouse().Clear(ctx)
	case "mousepad":
		err = c.dir.Mousepad().Clear(ctx)
	case "headset":
		err = c.dir.Headset().Clear(ctx)
	case "keypad":
		err = c.dir.Keypad().Clear(ctx)
	case "chromalink", "link":
		err = c.dir.Link().Clear(ctx)
	default:
		err = fmt.Errorf("unknown category %q", args[0])
	}

	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Cleared %s\n", args[0])
}

func (c *Console) cmdLink(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: link <position> <#RRGGBB>")
		return
	}

	position, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Bad position: %v\n", err)
		return
	}
	color, err := parseColor(args[1])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Bad color: %v\n", err)
		return
	}

	if _, err := c.dir.Link().SetColor(ctx, position, color); err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "LED %d set to %s\n", position, color)
}

func (c *Console) cmdGeneric(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: generic <uuid> <#RRGGBB>")
		return
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Bad device id: %v\n", err)
		return
	}
	color, err := parseColor(args[1])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Bad color: %v\n", err)
		return
	}

	g, err := c.dir.Generic(id)
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed: %v\n", err)
		return
	}

	fxID, err := g.SetEffect(ctx, effect.KindStatic, effect.StaticParams{Color: color})
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.rl.Stdout(), "Effect %s active on %s\n", fxID, g.Name())
}

// parseColor parses a "#RRGGBB" or "RRGGBB" hex color.
func parseColor(s string) (effect.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("want RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return effect.NewColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
