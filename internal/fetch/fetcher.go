// internal/fetch/fetcher.go
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	DefaultRetries   = 3
	DefaultBaseDelay = time.Second
	DefaultTimeout   = 15 * time.Second
)

// Options задаёт политику повторов
type Options struct {
	// Retries - общее число попыток, включая первую
	Retries int
	// BaseDelay - пауза после первой неудачи, далее удваивается
	BaseDelay time.Duration
}

// Fetcher выполняет HTTP запросы с ограниченным экспоненциальным повтором.
// Безопасен для конкурентного использования.
type Fetcher struct {
	client *http.Client
	opts   Options
	logger *zap.Logger
}

// New создаёт Fetcher. Нулевые значения опций заменяются значениями по умолчанию.
func New(client *http.Client, opts Options, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.Retries <= 0 {
		opts.Retries = DefaultRetries
	}
	if opts.BaseDelay < 0 {
		opts.BaseDelay = 0
	}
	return &Fetcher{
		client: client,
		opts:   opts,
		logger: logger.Named("fetch"),
	}
}

// GetJSON выполняет GET и декодирует JSON ответ в dst
func (f *Fetcher) GetJSON(ctx context.Context, url string, dst interface{}) error {
	return f.Do(ctx, http.MethodGet, url, nil, dst)
}

// PostJSON сериализует body в JSON, выполняет POST и декодирует ответ в dst
func (f *Fetcher) PostJSON(ctx context.Context, url string, body interface{}, dst interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return f.Do(ctx, http.MethodPost, url, payload, dst)
}

// Do выполняет запрос до Retries раз с паузой BaseDelay*2^attempt между попытками.
// Неуспешный статус, сетевая ошибка и ошибка декодирования обрабатываются одинаково.
func (f *Fetcher) Do(ctx context.Context, method, url string, body []byte, dst interface{}) error {
	attempt := 0
	op := func() (struct{}, error) {
		attempt++
		return struct{}{}, f.once(ctx, method, url, body, dst)
	}

	notify := func(err error, next time.Duration) {
		f.logger.Debug("Request failed, will retry",
			zap.String("method", method),
			zap.String("url", RedactURL(url)),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", next),
			zap.Error(err))
	}

	_, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(f.newBackOff()),
		backoff.WithMaxTries(uint(f.opts.Retries)),
		backoff.WithNotify(notify),
	)
	if err != nil {
		return fmt.Errorf("%s %s failed after %d attempt(s): %w", method, RedactURL(url), attempt, err)
	}
	return nil
}

// newBackOff создаёт расписание без случайного разброса: 1x, 2x, 4x ...
// ExponentialBackOff не потокобезопасен, поэтому на каждый вызов свой экземпляр.
func (f *Fetcher) newBackOff() backoff.BackOff {
	if f.opts.BaseDelay == 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.opts.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = f.opts.BaseDelay << uint(f.opts.Retries)
	return b
}

func (f *Fetcher) once(ctx context.Context, method, url string, body []byte, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Дочитываем тело, чтобы соединение вернулось в пул
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Method: method, URL: RedactURL(url)}
	}

	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return decodeInto(resp.Body, dst)
}

// decodeInto декодирует тело в новое значение и копирует его в dst только
// при успехе: частично заполненный ответ не должен пережить повтор.
func decodeInto(body io.Reader, dst interface{}) error {
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		if err := json.NewDecoder(body).Decode(dst); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return nil
	}

	fresh := reflect.New(target.Elem().Type())
	if err := json.NewDecoder(body).Decode(fresh.Interface()); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	target.Elem().Set(fresh.Elem())
	return nil
}
