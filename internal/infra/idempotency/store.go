package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "idem"
	pendingValue = "pending"
	pendingTTL   = 2 * time.Minute
)

// Store хранилище ключей идемпотентности поверх Redis
//
// Жизненный цикл ключа: Begin (pending) -> Complete (id результата) или Abort (ключ удален).
// Если Redis не настроен (client == nil), хранилище выключено: Begin всегда разрешает выполнение.
type Store struct {
	client RedisClient
	ttl    time.Duration
}

// NewStore создает хранилище; ttl - время жизни завершенного ключа
func NewStore(client RedisClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Enabled сообщает, подключено ли хранилище к Redis
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Begin резервирует ключ
// Возвращает (id, false, nil), если ключ уже завершен - вызывающий должен вернуть сохраненный результат.
// Возвращает (0, true, nil), если ключ зарезервирован и можно выполнять операцию.
// Возвращает ErrInProgress, если другой запрос с этим ключом еще выполняется.
func (s *Store) Begin(ctx context.Context, scope string, ownerID int64, key string) (int64, bool, error) {
	if !s.Enabled() {
		return 0, true, nil
	}

	redisKey := buildKey(scope, ownerID, key)

	acquired, err := s.client.SetNX(ctx, redisKey, pendingValue, pendingTTL).Result()
	if err != nil {
		return 0, false, fmt.Errorf("%w: setnx %s: %v", ErrStore, redisKey, err)
	}
	if acquired {
		return 0, true, nil
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// Ключ истек между SETNX и GET - пробуем еще раз один раз
		acquired, err = s.client.SetNX(ctx, redisKey, pendingValue, pendingTTL).Result()
		if err != nil {
			return 0, false, fmt.Errorf("%w: setnx %s: %v", ErrStore, redisKey, err)
		}
		if acquired {
			return 0, true, nil
		}
		return 0, false, ErrInProgress
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: get %s: %v", ErrStore, redisKey, err)
	}

	if value == pendingValue {
		return 0, false, ErrInProgress
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: corrupted value for %s: %q", ErrStore, redisKey, value)
	}

	return id, false, nil
}

// Complete сохраняет id результата под ключом
func (s *Store) Complete(ctx context.Context, scope string, ownerID int64, key string, resultID int64) error {
	if !s.Enabled() {
		return nil
	}

	redisKey := buildKey(scope, ownerID, key)
	if err := s.client.Set(ctx, redisKey, strconv.FormatInt(resultID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, redisKey, err)
	}
	return nil
}

// Abort освобождает ключ после неуспешной операции, чтобы клиент мог повторить запрос
func (s *Store) Abort(ctx context.Context, scope string, ownerID int64, key string) error {
	if !s.Enabled() {
		return nil
	}

	redisKey := buildKey(scope, ownerID, key)
	if err := s.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStore, redisKey, err)
	}
	return nil
}

func buildKey(scope string, ownerID int64, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", keyPrefix, scope, ownerID, key)
}
