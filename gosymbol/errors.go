package gosymbol

import "errors"

var (
	ErrUndefinedSymbol = errors.New("gosymbol: symbol not present in expression")
	ErrUnboundSymbol   = errors.New("gosymbol: symbol has no value")
	ErrDivisionByZero  = errors.New("gosymbol: division by zero")
	ErrUnsupported     = errors.New("gosymbol: unsupported operation")
	ErrNotFinite       = errors.New("gosymbol: result is not finite")
	ErrNotExact        = errors.New("gosymbol: expression has no exact rational value")
	ErrSingularSystem  = errors.New("gosymbol: singular linear system")
	ErrNonlinear       = errors.New("gosymbol: equation is not linear in the unknowns")
	ErrInvalidSystem   = errors.New("gosymbol: invalid linear system")
	ErrUnsupportedODE  = errors.New("gosymbol: unsupported differential equation")
)
