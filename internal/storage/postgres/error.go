package postgres

import "errors"

var ErrTxNotFoundInCtx = errors.New("no transaction found in ctx")
