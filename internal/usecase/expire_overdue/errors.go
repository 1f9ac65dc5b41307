package expire_overdue

import "errors"

var (
	// ErrListOverdue возвращается, если не удалось получить список просроченных записей
	ErrListOverdue = errors.New("expire_overdue: failed to list overdue records")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expire_overdue: internal error")
)
