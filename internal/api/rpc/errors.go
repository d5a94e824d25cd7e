package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

// connectError maps a service error onto a Connect code. The message is
// the client-safe text from api.Message.
func connectError(err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, service.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, service.ErrAuthenticationFailed):
		code = connect.CodeUnauthenticated
	case errors.Is(err, service.ErrAlreadyExists):
		code = connect.CodeAlreadyExists
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		slog.Error("RPC handler failed", "error", err)
		code = connect.CodeInternal
	}
	return connect.NewError(code, errors.New(api.Message(err)))
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func notChanged(id int) error {
	return fmt.Errorf("%s %d was not changed", service.EntityTransaction, id)
}
