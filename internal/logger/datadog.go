package logger

import (
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultDataDogTimeout = 5 * time.Second

// ErrDataDogAPIKeyEmpty is returned if DataDog shipping is enabled without an api key.
var ErrDataDogAPIKeyEmpty = errors.New("config Log.DataDog.APIKey can not be empty")

// DataDogWriter ships log events at or above MinLevel to the DataDog logs intake.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	ctx      context.Context //nolint:containedctx
	minLevel zerolog.Level
	timeout  time.Duration
	service  string
	source   string
	hostname string
}

// NewDataDogWriter creates a zerolog.LevelWriter for the DataDog logs API v2.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	if cfg.DataDog.APIKey == "" {
		return nil, ErrDataDogAPIKeyEmpty
	}

	minLevel := zerolog.WarnLevel
	if cfg.DataDog.MinLevel != "" {
		l, err := zerolog.ParseLevel(cfg.DataDog.MinLevel)
		if err != nil {
			return nil, errors.Wrap(err, "invalid Log.DataDog.MinLevel")
		}

		minLevel = l
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: cfg.DataDog.APIKey},
		},
	)

	if cfg.DataDog.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
			"site": cfg.DataDog.Site,
		})
	}

	service := cfg.DataDog.ServiceName
	if service == "" {
		service = cfg.ServiceName
	}

	timeout := cfg.DataDog.Timeout
	if timeout == 0 {
		timeout = defaultDataDogTimeout
	}

	hostname, _ := os.Hostname()

	return &DataDogWriter{
		api:      datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration())),
		ctx:      ctx,
		minLevel: minLevel,
		timeout:  timeout,
		service:  service,
		source:   cfg.AppName,
		hostname: hostname,
	}, nil
}

// Write ships p unconditionally.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	item := datadogV2.HTTPLogItem{
		Message:  string(p),
		Service:  datadog.PtrString(w.service),
		Ddsource: datadog.PtrString(w.source),
		Hostname: datadog.PtrString(w.hostname),
	}

	if _, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item}); err != nil {
		return 0, errors.Wrap(err, "datadog submit log")
	}

	return len(p), nil
}

// WriteLevel drops events below the configured minimum level.
func (w *DataDogWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < w.minLevel || l == zerolog.NoLevel {
		return len(p), nil
	}

	return w.Write(p)
}
