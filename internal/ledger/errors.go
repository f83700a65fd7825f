package ledger

import "errors"

var (
	ErrUnknownHistoryScope = errors.New("unknown history scope")
	ErrEngineClosed        = errors.New("engine is closed")
)
