package tx

import (
	"errors"
	"fmt"
	goerrors "github.com/go-errors/errors"
	"github.com/gagliardetto/solana-go"
)

type ErrorKind uint8

const (
	ErrKindCompile ErrorKind = iota + 1
	ErrKindSigning
	ErrKindSimulation
	ErrKindRpcClient
	ErrKindJitoClient
	ErrKindConfirmationTimeout
)

var (
	ErrCompile             = errors.New("CompileError")
	ErrSigning             = errors.New("SigningError")
	ErrSimulation          = errors.New("SimulationError")
	ErrRpcClient           = errors.New("RpcClientError")
	ErrJitoClient          = errors.New("JitoClientError")
	ErrConfirmationTimeout = errors.New("ConfirmationTimeout")
)

var errorKindSentinels = map[ErrorKind]error{
	ErrKindCompile:             ErrCompile,
	ErrKindSigning:             ErrSigning,
	ErrKindSimulation:          ErrSimulation,
	ErrKindRpcClient:           ErrRpcClient,
	ErrKindJitoClient:          ErrJitoClient,
	ErrKindConfirmationTimeout: ErrConfirmationTimeout,
}

func (p ErrorKind) String() string {
	if sentinel, exists := errorKindSentinels[p]; exists {
		return sentinel.Error()
	}
	return "UnknownError"
}

// SmartTxError is returned by every stage of the sender. errors.Is matches it against the
// sentinel of its kind and against the wrapped cause.
type SmartTxError struct {
	Kind  ErrorKind
	Err   error
	stack *goerrors.Error
}

func newSmartTxError(kind ErrorKind, err error) *SmartTxError {
	return &SmartTxError{
		Kind:  kind,
		Err:   err,
		stack: goerrors.Wrap(err, 1),
	}
}

func (p *SmartTxError) Error() string {
	return fmt.Sprintf("%s: %v", p.Kind, p.Err)
}

func (p *SmartTxError) Unwrap() error {
	return p.Err
}

func (p *SmartTxError) Is(target error) bool {
	return errorKindSentinels[p.Kind] == target
}

// ErrorStack returns the stack captured where the error was raised.
func (p *SmartTxError) ErrorStack() string {
	if p.stack == nil {
		return p.Error()
	}
	return p.stack.ErrorStack()
}

func IsErrorKind(err error, kind ErrorKind) bool {
	var smartTxErr *SmartTxError
	return errors.As(err, &smartTxErr) && smartTxErr.Kind == kind
}

var errEmptyBlockhash = errors.New("empty latest blockhash response")

const BLOCKHASH_NOT_FOUND = "BlockhashNotFound"

// TransactionError carries the error a simulation reported for a transaction.
type TransactionError struct {
	Err  interface{}
	Logs []string
}

func (p *TransactionError) Error() string {
	return fmt.Sprintf("transaction error: %v", p.Err)
}

// IsBlockhashNotFound reports whether the simulated blockhash was too old or unknown.
func (p *TransactionError) IsBlockhashNotFound() bool {
	value, isString := p.Err.(string)
	return isString && value == BLOCKHASH_NOT_FOUND
}

// TransactionFailedError is raised when a sent transaction is reported with an error.
type TransactionFailedError struct {
	Signature solana.Signature
	Err       interface{}
}

func (p *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", p.Signature, p.Err)
}
