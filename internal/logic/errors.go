package logic

import "errors"

// Kind 错误分类，由 handler 映射为 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidInput
	KindConflict
)

// Error 业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrInvalidAddress     = newError(KindInvalidInput, "Invalid Address")
	ErrMissingField       = newError(KindInvalidInput, "Missing required field")
	ErrNegativeAmount     = newError(KindInvalidInput, "Amount must not be negative")
	ErrZeroTarget         = newError(KindInvalidInput, "Project target amount is zero")
	ErrProjectExists      = newError(KindConflict, "Project already exists")
	ErrProjectNotFound    = newError(KindNotFound, "Project not found")
	ErrProjectNotOpen     = newError(KindNotFound, "Project doesn't exist")
	ErrInvestmentNotFound = newError(KindNotFound, "Investment not found")
	ErrNoInvestments      = newError(KindNotFound, "No investments found for the specified project")
	ErrNoStakesOnSale     = newError(KindNotFound, "No investments on sale for the specified project")
	ErrTokenNotFound      = newError(KindNotFound, "Token not found")
	ErrTokenAssigned      = newError(KindConflict, "Token already assigned to another project")
)

// KindOf 返回错误分类，非业务错误视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ProjectNotFoundLabel 投资记录引用的项目不存在时返回的项目名
const ProjectNotFoundLabel = "project not found"
