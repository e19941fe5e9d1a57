package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tickermind/tickermind/internal/api"
	"github.com/tickermind/tickermind/internal/chat"
	"github.com/tickermind/tickermind/internal/config"
	"github.com/tickermind/tickermind/internal/dashboard"
	"github.com/tickermind/tickermind/internal/format"
)

// InteractiveShell is the conversational chat loop.
type InteractiveShell struct {
	cfg        *config.Config
	client     *api.Client
	session    *chat.Session
	aggregator *dashboard.Aggregator
	reader     *bufio.Reader
}

// NewInteractiveShell wires a shell around one session and one aggregator.
func NewInteractiveShell(cfg *config.Config, client *api.Client) *InteractiveShell {
	return &InteractiveShell{
		cfg:        cfg,
		client:     client,
		session:    chat.NewSession(client, cfg.DefaultTicker),
		aggregator: dashboard.NewAggregator(client, cfg.NewsLimit, cfg.NewsDays),
		reader:     bufio.NewReader(os.Stdin),
	}
}

// Start runs the shell until the user quits or stdin closes.
func (s *InteractiveShell) Start(ctx context.Context) error {
	s.showWelcome()

	for {
		prompt := "› "
		if t := s.session.ActiveTicker(); t != "" {
			prompt = "[" + t + "] › "
		}
		fmt.Print(headerStyle.Render(prompt))

		input, err := s.reader.ReadString('\n')
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if done := s.handleCommand(ctx, input); done {
				return nil
			}
			continue
		}

		s.send(ctx, input)
	}
}

func (s *InteractiveShell) showWelcome() {
	fmt.Println(titleStyle.Render("TickerMind: AI stock market chat"))
	fmt.Println(dimStyle.Render("Ask about a stock, or use a command:"))
	fmt.Println(dimStyle.Render("  /ticker SYMBOL   set the active ticker"))
	fmt.Println(dimStyle.Render("  /suggest         pick an example question"))
	fmt.Println(dimStyle.Render("  /dashboard       show the market dashboard"))
	fmt.Println(dimStyle.Render("  /history         replay the conversation so far"))
	fmt.Println(dimStyle.Render("  /clear           reset the conversation"))
	fmt.Println(dimStyle.Render("  /help            show this message"))
	fmt.Println(dimStyle.Render("  /quit            exit"))
	fmt.Println()
}

// handleCommand dispatches a slash command; it reports whether the shell
// should exit.
func (s *InteractiveShell) handleCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	switch strings.ToLower(parts[0]) {
	case "/quit", "/exit", "/q":
		fmt.Println(dimStyle.Render("Bye."))
		return true

	case "/ticker":
		if len(parts) < 2 {
			ticker, err := PromptForTicker()
			if err != nil {
				fmt.Println(errorStyle.Render(err.Error()))
				return false
			}
			s.session.SetActiveTicker(ticker)
		} else {
			ticker := format.NormalizeTicker(parts[1])
			if !format.IsValidTicker(ticker) {
				fmt.Println(errorStyle.Render("Invalid ticker: " + parts[1]))
				return false
			}
			s.session.SetActiveTicker(ticker)
		}
		fmt.Println(dimStyle.Render("Active ticker set to " + s.session.ActiveTicker()))

	case "/clear":
		confirmed, err := ConfirmClear()
		if err == nil && confirmed {
			s.session.ClearMessages()
			fmt.Println(dimStyle.Render("Conversation cleared."))
		}

	case "/suggest":
		suggestions, err := s.client.Suggestions(ctx)
		if err != nil {
			fmt.Println(errorStyle.Render("Could not load suggestions: " + err.Error()))
			return false
		}
		query, err := PromptForSuggestion(suggestions)
		if err != nil {
			return false
		}
		s.send(ctx, query)

	case "/dashboard":
		snap, err := s.aggregator.Refresh(ctx, s.cfg.DashboardLimit, "")
		if err != nil {
			fmt.Println(errorStyle.Render("Dashboard unavailable: " + err.Error()))
			return false
		}
		fmt.Print(renderSnapshot(snap))

	case "/history":
		for _, m := range s.session.Messages() {
			fmt.Print(renderMessage(m))
		}

	case "/help", "/?":
		s.showWelcome()

	default:
		fmt.Println(errorStyle.Render("Unknown command: " + parts[0]))
	}
	return false
}

// send runs one conversational turn and renders what it appended.
func (s *InteractiveShell) send(ctx context.Context, text string) {
	fmt.Println(dimStyle.Render("thinking..."))

	err := s.session.SendMessage(ctx, text, "")
	switch err {
	case nil:
	case chat.ErrBusy:
		fmt.Println(errorStyle.Render("Still waiting on the previous question."))
		return
	case chat.ErrEmptyMessage:
		return
	default:
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}

	msgs := s.session.Messages()
	// Render the turn that was just appended: user message plus reply.
	for _, m := range msgs[len(msgs)-2:] {
		fmt.Print(renderMessage(m))
	}
	if detail := s.session.LastError(); detail != "" && s.cfg.Debug {
		fmt.Println(dimStyle.Render("detail: " + detail))
	}
	fmt.Println()
}
