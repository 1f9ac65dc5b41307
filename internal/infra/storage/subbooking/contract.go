package subbooking

import (
	"github.com/m04kA/SMC-ParkingAllocationService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
