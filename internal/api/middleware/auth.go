package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// HeaderUserID заголовок с ID координатора, проставляемый шлюзом
const HeaderUserID = "X-User-ID"

type sessionKey struct{}

// Auth создает сессию координатора на время запроса и закрывает ее по завершении.
// Запрос без валидного X-User-ID отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		coordinatorID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil {
			unauthorized(w)
			return
		}

		session, err := domain.NewSession(coordinatorID, GetRequestID(r.Context()), time.Now())
		if err != nil {
			unauthorized(w)
			return
		}
		defer session.Close()

		ctx := WithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession возвращает активную сессию из контекста
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*domain.Session)
	if !ok || !session.IsActive() {
		return nil, false
	}
	return session, true
}

// GetCoordinatorID возвращает ID координатора активной сессии
func GetCoordinatorID(ctx context.Context) (int64, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return 0, false
	}
	return session.CoordinatorID, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": "отсутствует или некорректен заголовок X-User-ID",
	})
}
