package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
)

var errOwnerRequired = errors.New("--owner is required")

const (
	cmdImage    = "/image"
	cmdLocation = "/location"

	// Una línea terminada en '\' continúa el mismo mensaje.
	lineContinuation = `\`
)

type turnHandler interface {
	Handle(ctx context.Context, t conversation.Turn) conversation.Reply
}

func newChatCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant from the terminal",
		Long: "Reads one message per line. End a line with \\ to continue the message on the next line.\n" +
			"Use \"/image <path>\" to send a photo and \"/location <lat> <lon>\" to share a location.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner = strings.TrimSpace(owner)
			if owner == "" {
				return errOwnerRequired
			}

			a, err := loadApp(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			return runChat(cmd.Context(), a.machine, owner, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id for the conversation")
	return cmd
}

func runChat(ctx context.Context, h turnHandler, owner string, in io.Reader, out io.Writer) error {
	interactive := isTerminal(in)
	prompt := func(p string) {
		if interactive {
			fmt.Fprint(out, p)
		}
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	var pending []string
	prompt("> ")
	for sc.Scan() {
		line := sc.Text()
		if strings.HasSuffix(line, lineContinuation) {
			pending = append(pending, strings.TrimSuffix(line, lineContinuation))
			prompt("... ")
			continue
		}
		msg := strings.Join(append(pending, line), "\n")
		pending = nil

		if strings.TrimSpace(msg) == "" {
			prompt("> ")
			continue
		}

		turn, err := chatTurn(owner, msg)
		if err != nil {
			fmt.Fprintln(out, err)
		} else {
			printReply(out, h.Handle(ctx, turn))
		}
		prompt("> ")
	}
	return sc.Err()
}

func chatTurn(owner, msg string) (conversation.Turn, error) {
	fields := strings.Fields(msg)
	switch {
	case fields[0] == cmdImage:
		if len(fields) != 2 {
			return conversation.Turn{}, fmt.Errorf("usage: %s <path>", cmdImage)
		}
		img, err := os.ReadFile(fields[1])
		if err != nil {
			return conversation.Turn{}, err
		}
		return conversation.ImageTurn(owner, img), nil

	case fields[0] == cmdLocation:
		if len(fields) != 3 {
			return conversation.Turn{}, fmt.Errorf("usage: %s <lat> <lon>", cmdLocation)
		}
		lat, errLat := strconv.ParseFloat(fields[1], 64)
		lon, errLon := strconv.ParseFloat(fields[2], 64)
		if errLat != nil || errLon != nil {
			return conversation.Turn{}, fmt.Errorf("usage: %s <lat> <lon>", cmdLocation)
		}
		t := conversation.TextTurn(owner, conversation.ChoiceCurrentLocation)
		t.Location = &conversation.Location{Lat: lat, Lon: lon}
		return t, nil

	default:
		return conversation.TextTurn(owner, msg), nil
	}
}

func printReply(out io.Writer, r conversation.Reply) {
	fmt.Fprintln(out, r.Text)
	for _, q := range r.QuickReplies {
		fmt.Fprintf(out, "  [%s]\n", q.Label)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
