package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// DefaultIdempotencyTTL is how long a completed response is replayed.
	DefaultIdempotencyTTL = 24 * time.Hour

	processingMarker = "processing"
	maxKeyPeekBytes  = 1 << 20
)

// IdempotencyMiddleware replays completed responses from Redis before they
// reach the ledger. The ledger's own idempotency check stays authoritative,
// so a Redis outage only disables the fast path.
type IdempotencyMiddleware struct {
	store  usecase.IdempotencyStore
	ttl    time.Duration
	logger zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key, err := m.resolveKey(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, usecase.ErrorKind(err), err.Error())
			return
		}
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		exists, cachedResponse, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			m.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency store unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if exists {
			if len(cachedResponse) == 0 || string(cachedResponse) == processingMarker {
				writeJSONError(w, http.StatusConflict, usecase.ErrorKindConflictInFlight, "transaction is already being processed")
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.WriteHeader(http.StatusOK)
			w.Write(replayBody(cachedResponse))
			return
		}

		// A panic rolls the unit of work back, so the claim must go too.
		defer func() {
			if p := recover(); p != nil {
				m.release(r, key)
				panic(p)
			}
		}()

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Only successes are replayed; anything else frees the key for a retry.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			if err := m.store.Update(r.Context(), key, recorder.body.Bytes(), m.ttl); err != nil {
				m.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
			}
			return
		}

		m.release(r, key)
	})
}

// resolveKey returns the key the handler will run the request under. The
// body is read up front and put back for the handler.
func (m *IdempotencyMiddleware) resolveKey(r *http.Request) (string, error) {
	headerKey := r.Header.Get(IdempotencyKeyHeader)
	if r.Body == nil {
		return headerKey, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxKeyPeekBytes))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), r.Body))
	if err != nil {
		return headerKey, nil
	}

	var peek struct {
		IdempotencyKey string `json:"idempotencyKey"`
	}
	// Malformed bodies are left for the handler to reject.
	if err := json.Unmarshal(raw, &peek); err != nil {
		return headerKey, nil
	}

	return dto.ResolveIdempotencyKey(headerKey, peek.IdempotencyKey)
}

func (m *IdempotencyMiddleware) release(r *http.Request, key string) {
	if err := m.store.Release(r.Context(), key); err != nil {
		m.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// replayBody marks a stored success as a replay by swapping its message.
func replayBody(cached []byte) []byte {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(cached, &body); err != nil {
		return cached
	}
	if _, ok := body["message"]; !ok {
		return cached
	}

	body["message"], _ = json.Marshal(usecase.MessageAlreadyCompleted)
	out, err := json.Marshal(body)
	if err != nil {
		return cached
	}
	return out
}

func writeJSONError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Error: kind, Message: message})
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
