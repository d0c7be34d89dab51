package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Topics(ctx context.Context, page int) error
	Topic(ctx context.Context, id int64) error
	Post(ctx context.Context) error
	Respond(ctx context.Context, topicID int64) error
	Responses(ctx context.Context, topicID int64) error
	Passwd(ctx context.Context) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  help
//	  topics [page]       list topics, oldest first
//	  topic <id>          show one topic
//	  post                open a new topic
//	  respond <id>        answer a topic
//	  responses <id>      list the answers to a topic
//	  passwd              change password (logs out)
//	  logout, exit | quit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "forohub [%s]> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(w, "Available commands: topics [page], topic <id>, post, respond <id>, responses <id>, passwd, logout, exit")
		} else {
			fmt.Fprintln(w, "Available commands: register, login, exit")
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		return fmt.Errorf("unknown command %q (log in first)", cmd)
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "topics":
		page := 0
		if len(args) > 0 {
			p, err := strconv.Atoi(args[0])
			if err != nil || p < 0 {
				return fmt.Errorf("page must be a non-negative number")
			}
			page = p
		}
		return a.Topics(ctx, page)
	case "topic", "respond", "responses":
		id, err := idArg(args)
		if err != nil {
			return err
		}
		switch cmd {
		case "topic":
			return a.Topic(ctx, id)
		case "respond":
			return a.Respond(ctx, id)
		default:
			return a.Responses(ctx, id)
		}
	case "post":
		return a.Post(ctx)
	case "passwd":
		return a.Passwd(ctx)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func idArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("topic id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("topic id must be a positive number")
	}
	return id, nil
}
