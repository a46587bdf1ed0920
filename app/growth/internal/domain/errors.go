package domain

import (
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
)

const (
	ReasonInvalidRequest      = "INVALID_REQUEST"
	ReasonInsufficientCredits = "INSUFFICIENT_CREDITS"
	ReasonHistoryNotFound     = "HISTORY_NOT_FOUND"
	ReasonInternal            = "INTERNAL"
)

// StatusPaymentRequired 积分不足
const StatusPaymentRequired = 402

func ErrInvalidRequest(msg string) *errors.Error {
	return errors.BadRequest(ReasonInvalidRequest, msg)
}

// ErrInsufficientCredits metadata 中携带 required/available/missing
func ErrInsufficientCredits(required, available int) *errors.Error {
	return errors.New(StatusPaymentRequired, ReasonInsufficientCredits, "insufficient credits").
		WithMetadata(map[string]string{
			"required":  strconv.Itoa(required),
			"available": strconv.Itoa(available),
			"missing":   strconv.Itoa(required - available),
		})
}

func ErrHistoryNotFound() *errors.Error {
	return errors.NotFound(ReasonHistoryNotFound, "history record not found")
}

// ErrInternal details 为诊断信息，原样返回给调用方
func ErrInternal(msg string, cause error) *errors.Error {
	e := errors.InternalServer(ReasonInternal, msg)
	if cause != nil {
		e = e.WithCause(cause).WithMetadata(map[string]string{"details": cause.Error()})
	}
	return e
}
