// Package middleware HTTP middleware: аутентификация клиента и персонала,
// сбор метрик запросов
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/equiclub/EQC-BookingService/internal/api/handlers"
	"github.com/equiclub/EQC-BookingService/pkg/metrics"
)

const (
	// HeaderClientEmail заголовок идентификации клиента
	// Платформа проксирует запросы и проставляет email после своей аутентификации
	HeaderClientEmail = "X-Client-Email"

	// HeaderStaffID заголовок идентификации сотрудника
	HeaderStaffID = "X-Staff-ID"
)

const (
	msgClientEmailRequired = "требуется заголовок X-Client-Email"
	msgStaffIDRequired     = "требуется заголовок X-Staff-ID"
)

type contextKey string

const (
	clientEmailKey contextKey = "clientEmail"
	staffIDKey     contextKey = "staffID"
)

// ClientEmailFromContext возвращает email клиента из контекста запроса
func ClientEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(clientEmailKey).(string)
	return email, ok
}

// StaffIDFromContext возвращает ID сотрудника из контекста запроса
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}

// Auth требует заголовок X-Client-Email и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderClientEmail))
		if email == "" || !strings.Contains(email, "@") {
			handlers.RespondError(w, http.StatusUnauthorized, msgClientEmailRequired)
			return
		}

		ctx := context.WithValue(r.Context(), clientEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Staff требует заголовок X-Staff-ID и кладет его в контекст
func Staff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderStaffID)), 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgStaffIDRequired)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics собирает метрики HTTP запросов
// Путь берется из шаблона роута, чтобы не раздувать кардинальность метрик
func Metrics(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.RecordHTTPRequest(r.Method, path, recorder.status, time.Since(start))
		})
	}
}
