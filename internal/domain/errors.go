package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamUnavailable внешний астро-API недоступен, вернул ошибку или исчерпана квота
	ErrUpstreamUnavailable = errors.New("upstream astro API unavailable")
	// ErrInvalidChartData в карте нет обязательного положения или нарушены инварианты
	ErrInvalidChartData = errors.New("invalid chart data")
	ErrUserNotFound     = errors.New("user not found")
	ErrNatalChartNotSet = errors.New("natal chart is not set")
)

// BusinessError ошибка бизнес-логики, которая уже залогирована в UseCase
type BusinessError struct {
	Err error
}

func (e *BusinessError) Error() string {
	return e.Err.Error()
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func WrapBusinessError(err error) error {
	if err == nil {
		return nil
	}
	return &BusinessError{Err: err}
}

func IsBusinessError(err error) bool {
	var businessErr *BusinessError
	return errors.As(err, &businessErr)
}

// UpstreamError ошибка вызова внешнего провайдера.
// errors.Is(err, ErrUpstreamUnavailable) == true для любой UpstreamError.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s failed [status=%d]: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

func NewUpstreamError(op string, statusCode int, err error) error {
	return &UpstreamError{Op: op, StatusCode: statusCode, Err: err}
}

// ChartDataError не хватает обязательных положений для конкретного расчёта
type ChartDataError struct {
	Op      string
	Missing []Planet
}

func (e *ChartDataError) Error() string {
	names := make([]string, len(e.Missing))
	for i, p := range e.Missing {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s: %v: missing %s", e.Op, ErrInvalidChartData, strings.Join(names, ", "))
}

func (e *ChartDataError) Is(target error) bool {
	return target == ErrInvalidChartData
}
