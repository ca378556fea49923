package handler

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"carbot/internal/model"
	"carbot/internal/service"
)

// User-facing messages for the command surface.
const (
	UsageMessage = "Usage: /car <amount> [description]. Example: /car 20000 red bmw convertible"

	validationMessage = "Please provide a valid dollar amount. Usage: /car <amount> [description]"
	upstreamMessage   = "The car listings service is not responding right now. Please try again later."
	genericMessage    = "An error occurred. Please try again."
)

// Finder runs one search invocation end to end
type Finder interface {
	Find(ctx context.Context, amount int, description string) (*service.FindResult, error)
}

// CommandHandler handles the /car chat command
type CommandHandler struct {
	finder Finder
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(finder Finder) *CommandHandler {
	return &CommandHandler{
		finder: finder,
	}
}

// Handle parses the command arguments and produces a reply. It always
// returns a reply: validation problems are reported verbatim, upstream
// failures as a retry suggestion, and anything unexpected as a generic
// error so the transport never sees a crash.
func (h *CommandHandler) Handle(ctx context.Context, args []string) (reply model.Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic while handling command: %v", r)
			reply = model.Reply{Text: genericMessage}
		}
	}()

	if len(args) == 0 {
		return model.Reply{Text: UsageMessage}
	}

	amount, err := strconv.Atoi(args[0])
	if err != nil || amount < 0 {
		return model.Reply{Text: validationMessage}
	}

	description := strings.Join(args[1:], " ")

	result, err := h.finder.Find(ctx, amount, description)
	if err != nil {
		var upstreamErr *service.UpstreamError
		if errors.Is(err, service.ErrTimeout) || errors.As(err, &upstreamErr) {
			return model.Reply{Text: upstreamMessage}
		}
		log.Printf("Unexpected pipeline failure: %v", err)
		return model.Reply{Text: genericMessage}
	}

	return result.Reply
}
