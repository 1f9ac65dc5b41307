package chunk

import "errors"

var (
	// ErrChunkNotFound возвращается, когда чанк не найден
	ErrChunkNotFound = errors.New("chunk.repository: chunk not found")

	// ErrCapacityExceeded возвращается, когда атомарное изменение used_spots
	// вывело бы счетчик за пределы [0, total_spots]
	ErrCapacityExceeded = errors.New("chunk.repository: capacity exceeded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("chunk.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("chunk.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("chunk.repository: failed to scan row")
)
