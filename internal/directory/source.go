// Package directory fetches the user directory from its remote endpoint.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"userexplorer/internal/domain"
)

// DefaultEndpoint is the public JSONPlaceholder users collection
const DefaultEndpoint = "https://jsonplaceholder.typicode.com/users"

// RequestIDHeader carries the per-attempt request id
const RequestIDHeader = "X-Request-ID"

// Source supplies the ordered user sequence on demand. Fetch must return
// promptly with ctx.Err() once ctx is cancelled.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Record, error)
}

type requestIDKey struct{}

// WithRequestID attaches the id sent as X-Request-ID
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// wireUser is the subset of the JSON user object we read.
// Extra fields in the payload are ignored.
type wireUser struct {
	ID      int    `json:"id" validate:"required"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

// HTTPSource fetches the directory with a single GET
type HTTPSource struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHTTPSource creates a source for endpoint
func NewHTTPSource(endpoint string, opts ...Option) *HTTPSource {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &HTTPSource{
		endpoint: endpoint,
		client:   o.client,
		validate: validator.New(),
		logger:   o.logger.Named("directory"),
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: o.timeout}
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "directory",
		MaxRequests: 1,
		Timeout:     o.breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return o.breakerMaxFailures > 0 && counts.ConsecutiveFailures >= o.breakerMaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			s.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// Abandoned requests say nothing about the directory's health
		IsSuccessful: func(err error) bool {
			return err == nil || IsCanceled(err)
		},
	})

	return s
}

// Fetch performs the GET and decodes the user array
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Record, error) {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := s.logger.With(zap.String("request_id", requestID))

	start := time.Now()
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx, requestID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &NetworkError{Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
		}
		if IsCanceled(err) {
			logger.Debug("fetch canceled", zap.Duration("elapsed", time.Since(start)))
		} else {
			logger.Warn("fetch failed",
				zap.String("kind", Kind(err)),
				zap.Error(err),
				zap.NamedError("cause", errors.Unwrap(err)),
				zap.Duration("elapsed", time.Since(start)))
		}
		return nil, err
	}

	records := result.([]domain.Record)
	logger.Info("fetched directory",
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return records, nil
}

func (s *HTTPSource) fetch(ctx context.Context, requestID string) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := s.client.Do(req)
	if err != nil {
		// Report cancellation as such, not as a transport failure
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, &NetworkError{Err: err}
	}
	defer func() {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProtocolError{StatusCode: resp.StatusCode}
	}

	var users []wireUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, &DecodeError{Err: fmt.Errorf("decode users: %w", err)}
	}

	return s.toRecords(users)
}

// toRecords validates the decoded payload and maps it to domain records
func (s *HTTPSource) toRecords(users []wireUser) ([]domain.Record, error) {
	if users == nil {
		return nil, &DecodeError{Err: errors.New("expected a JSON array of users")}
	}

	seen := make(map[int]struct{}, len(users))
	records := make([]domain.Record, 0, len(users))
	for i, u := range users {
		if err := s.validate.Struct(u); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("user at index %d: %w", i, err)}
		}
		if _, dup := seen[u.ID]; dup {
			return nil, &DecodeError{Err: fmt.Errorf("duplicate user id %d", u.ID)}
		}
		seen[u.ID] = struct{}{}

		records = append(records, domain.Record{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Company: domain.Company{Name: u.Company.Name},
		})
	}
	return records, nil
}
