package get_dashboard_summary

import "errors"

var (
	// ErrInvalidInput причина ошибок валидации входных данных
	ErrInvalidInput = errors.New("get_dashboard_summary: invalid input data")
)
