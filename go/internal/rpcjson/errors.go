package rpcjson

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/cubedraft/go/internal/drafterr"
)

// CodeOf maps a domain error kind onto a connect code.
func CodeOf(err error) connect.Code {
	switch drafterr.KindOf(err) {
	case drafterr.KindInvalidArgument:
		return connect.CodeInvalidArgument
	case drafterr.KindNotFound:
		return connect.CodeNotFound
	case drafterr.KindConflict:
		return connect.CodeAlreadyExists
	case drafterr.KindUnavailable:
		return connect.CodeResourceExhausted
	case drafterr.KindInvalidState:
		return connect.CodeFailedPrecondition
	}
	switch {
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	}
	return connect.CodeInternal
}

// Error converts err into a connect error. Internal errors are logged and
// their detail is hidden from the caller.
func Error(procedure string, err error) error {
	if err == nil {
		return nil
	}
	code := CodeOf(err)
	if code == connect.CodeInternal {
		log.Error().Err(err).Str("procedure", procedure).Msg("internal error")
		return connect.NewError(code, errors.New("internal error"))
	}
	return connect.NewError(code, err)
}
