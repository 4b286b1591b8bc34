package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/logger"
	"debate-bot/internal/usecase"
)

var (
	styleUser   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	styleBot    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleBanner = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func newChatCmd() *cobra.Command {
	var personality string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Debate in the terminal against the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			// Keep the terminal clean; only warnings reach stderr.
			cfg.Logger.Level = "warn"
			log, closeLog, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer closeLog()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			r := &repl{chat: a.chat, in: cmd.InOrStdin(), out: cmd.OutOrStdout(), personality: personality, log: log}
			return r.run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&personality, "personality", "p", "", "persona for new conversations (conspiracy_theorist, skeptical_scientist, populist)")
	return cmd
}

// chatter is the part of usecase.ChatService the REPL drives.
type chatter interface {
	Chat(ctx context.Context, req usecase.ChatRequest) (*usecase.ChatResponse, error)
	Conversation(ctx context.Context, id string) (*usecase.ConversationView, error)
	Personalities() []usecase.PersonalityInfo
}

// repl is a line-oriented debate session.
type repl struct {
	chat        chatter
	in          io.Reader
	out         io.Writer
	personality string
	log         *slog.Logger

	conversationID string
}

func (r *repl) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(r.out, styleBanner.Render("debatebot: state your opinion and defend it.\n/new  /personality <name>  /personas  /info  /quit"))

	sc := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, styleUser.Render("you> "))
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := r.command(ctx, line); quit {
				return nil
			}
			continue
		}
		r.turn(ctx, line)
	}
}

// command handles a slash command and reports whether to exit.
func (r *repl) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/quit", "/exit":
		return true
	case "/new":
		r.conversationID = ""
		fmt.Fprintln(r.out, styleDim.Render("new conversation"))
	case "/personality":
		if _, ok := domain.ParsePersonality(arg); !ok && arg != "" {
			fmt.Fprintln(r.out, styleError.Render("unknown personality: "+arg))
			return false
		}
		r.personality = arg
		fmt.Fprintln(r.out, styleDim.Render("personality for new conversations: "+orDefault(arg, "auto")))
	case "/personas":
		for _, p := range r.chat.Personalities() {
			fmt.Fprintf(r.out, "%s  %s\n", styleBot.Render(string(p.Name)), styleDim.Render(p.Stance))
		}
	case "/info":
		if r.conversationID == "" {
			fmt.Fprintln(r.out, styleDim.Render("no conversation yet"))
			return false
		}
		v, err := r.chat.Conversation(ctx, r.conversationID)
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Fprintf(r.out, "%s\n", styleDim.Render(fmt.Sprintf("id=%s topic=%q persona=%s exchanges=%d",
			v.ConversationID, v.Topic, v.Personality, v.ExchangeCount)))
	default:
		fmt.Fprintln(r.out, styleError.Render("unknown command: "+name))
	}
	return false
}

func (r *repl) turn(ctx context.Context, msg string) {
	req := usecase.ChatRequest{ConversationID: r.conversationID, Message: msg}
	if r.conversationID == "" {
		req.Personality = r.personality
	}
	resp, err := r.chat.Chat(ctx, req)
	if err != nil {
		r.printError(err)
		return
	}
	r.conversationID = resp.ConversationID
	if n := len(resp.Messages); n > 0 {
		last := resp.Messages[n-1]
		fmt.Fprintf(r.out, "%s %s\n", styleBot.Render("bot>"), last.Message)
	}
}

func (r *repl) printError(err error) {
	var de *domain.DomainError
	msg := "something went wrong"
	switch {
	case errors.Is(err, domain.ErrValidation) && errors.As(err, &de):
		msg = de.Detail
	case errors.Is(err, domain.ErrConversationNotFound):
		msg = "conversation no longer exists; starting over"
		r.conversationID = ""
	default:
		if r.log != nil {
			r.log.Warn("chat turn failed", "error", err)
		}
	}
	fmt.Fprintln(r.out, styleError.Render("error: ")+msg)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
