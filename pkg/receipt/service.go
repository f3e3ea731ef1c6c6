package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// Service is a thin client for the external receipt render collaborator.
// Calls go through a circuit breaker: when the remote keeps failing, the
// breaker opens and calls fail fast until it recovers.
type Service struct {
	apiURL     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

func (s *Service) LoggerComponent() string {
	return "Receipt.Service"
}

func NewService(apiURL string, opts ...ServiceOption) (*Service, error) {
	c := &Service{
		apiURL:     apiURL,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}

	for _, o := range opts {
		o(c)
	}

	if c.breaker == nil {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "receipt-render",
		})
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()

	return c, nil
}

type ServiceOption func(*Service)

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

func WithBreaker(cb *gobreaker.CircuitBreaker) ServiceOption {
	return func(s *Service) {
		s.breaker = cb
	}
}

// Render asks the remote service to produce a printable document for the
// transaction.
func (s *Service) Render(ctx context.Context, in *RenderRequest, out *RenderResponse) error {
	l := s.logger.With().
		Str("method", "Render").
		Str("transaction_id", in.TransactionID).
		Logger()
	ctx = l.WithContext(ctx)

	err := s.genericCall(ctx, http.MethodPost, "/api/receipts/render", in, out)
	if err != nil {
		return err
	}

	l.Debug().
		Str("document_url", out.DocumentURL).
		Msg("Render success")

	return nil
}

type RemoteError struct {
	ResponseBody string
	StatusCode   int
}

func NewRemoteError(responseBody string, statusCode int) *RemoteError {
	return &RemoteError{ResponseBody: responseBody, StatusCode: statusCode}
}

func (e *RemoteError) Error() string {
	return e.ResponseBody
}

func (s *Service) genericCall(ctx context.Context, method, endpoint string, in interface{}, out interface{}) error {
	l := zerolog.Ctx(ctx).With().Str("http_method", method).Str("endpoint", endpoint).Logger()
	ctx = l.WithContext(ctx)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		res, err := s.request(ctx, method, endpoint, in)
		if err != nil {
			l.Error().Err(err).Msg("Service request failed")
			return nil, errors.Wrap(err, "request")
		}
		defer func() {
			_ = res.Body.Close()
		}()

		if res.StatusCode >= 400 {
			resBody := readString(res.Body)
			l.Error().
				Str("http_body", resBody).
				Msg("Service responded with error")
			return nil, NewRemoteError(resBody, res.StatusCode)
		}

		if err := readJSON(res.Body, out); err != nil {
			return nil, errors.Wrap(err, "body read")
		}

		return nil, nil
	})

	return err
}

func (s *Service) request(
	ctx context.Context,
	method string,
	endpoint string,
	bodyParams interface{},
) (*http.Response, error) {
	fullURL := s.apiURL + endpoint
	l := zerolog.Ctx(ctx).With().
		Str("http_method", method).
		Str("url", fullURL).
		Logger()

	rawJSON, err := json.Marshal(bodyParams)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	l.Debug().Str("request_body", string(rawJSON)).Msg("Doing request")

	res, err := s.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).Msg("Call failed")
		return nil, fmt.Errorf("do request: %w", err)
	}

	return res, nil
}
