package io

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/tilewm/tilewm/command"
	"github.com/tilewm/tilewm/server/strcoll"
)

// ANSI color codes
const (
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	Grey    = "\x1b[37m"
)

// Prompt is shown by the interactive shell.
const Prompt = Cyan + ">>> " + Grey

func Reply(w io.Writer, msg ...string) bool {
	if strcoll.Nth(0, msg) != "" {
		w.Write([]byte(strings.Join(msg, "\n")))
		return true
	}
	return false
}

func ReplyNL(w io.Writer, msg ...string) bool {
	if Reply(w, msg...) {
		return Reply(w, "\n")
	}
	return false
}

// ReplyEither writes err if not nil, msg otherwise.
// Errors reported by the session are yellow, remote exceptions and anything else red.
func ReplyEither(w io.Writer, err error, msg ...string) bool {
	if err != nil {
		var cmdErr *command.CommandError
		if errors.As(err, &cmdErr) {
			return Reply(w, Yellow+strings.TrimSpace(cmdErr.Msg))
		}
		return Reply(w, Red+strings.TrimSpace(err.Error()))
	}
	return Reply(w, msg...)
}

func ReplyEitherNL(w io.Writer, err error, msg ...string) {
	if ReplyEither(w, err, msg...) {
		Reply(w, "\n")
	}
}
