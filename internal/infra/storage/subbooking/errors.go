package subbooking

import "errors"

var (
	// ErrSubBookingNotFound возвращается, когда суб-бронирование не найдено
	ErrSubBookingNotFound = errors.New("subbooking.repository: sub-booking not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("subbooking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("subbooking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("subbooking.repository: failed to scan row")
)
