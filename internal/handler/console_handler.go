package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-widget/internal/service"
)

const (
	prompt       = "> "
	cmdTheme     = ":theme"
	cmdQuit      = ":quit"
	cmdQuitShort = ":q"
	usage        = "Type a city and press enter. :theme toggles dark mode, :quit exits."
)

// ConsoleHandler feeds input lines to the controller and redraws the view.
type ConsoleHandler struct {
	Controller *service.AppController
	Renderer   *Renderer
	in         io.Reader
	out        io.Writer
	logger     *zap.SugaredLogger
}

func NewConsoleHandler(ctrl *service.AppController, renderer *Renderer, in io.Reader, out io.Writer, logger *zap.SugaredLogger) *ConsoleHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ConsoleHandler{
		Controller: ctrl,
		Renderer:   renderer,
		in:         in,
		out:        out,
		logger:     logger,
	}
}

// Run draws the current view and processes lines until :quit, end of input
// or ctx is done.
//
// Lines are read on a separate goroutine. A read cannot be interrupted, so
// when Run returns on :quit or ctx that goroutine stays blocked on in until
// the next line arrives or in is closed; lines read after Run returns are
// dropped. With os.Stdin it lives until the process exits. Callers that
// keep running after Run should pass a reader they can close.
func (h *ConsoleHandler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(h.out, usage)
	h.render()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(h.out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(h.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(h.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if !h.HandleLine(ctx, line) {
				return nil
			}
		}
	}
}

// HandleLine processes one input line and reports whether to keep going.
func (h *ConsoleHandler) HandleLine(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case cmdQuit, cmdQuitShort:
		return false
	case cmdTheme:
		if _, err := h.Controller.ToggleTheme(ctx); err != nil {
			h.logger.Warnw("Theme toggled but not saved", "error", err)
		}
		h.render()
		return true
	}

	if h.Controller.Submit(ctx, input) {
		h.render()
	}
	return true
}

func (h *ConsoleHandler) render() {
	fmt.Fprint(h.out, h.Renderer.Render(h.Controller.State(), h.Controller.Theme()))
}
