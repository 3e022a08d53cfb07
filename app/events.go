// app/events.go
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/salihkiraz/lumen-theme/config"
	"github.com/salihkiraz/lumen-theme/events"
	"github.com/salihkiraz/lumen-theme/health"
	"github.com/salihkiraz/lumen-theme/live"
)

// eventsConnectTimeout bounds broker connections at startup.
const eventsConnectTimeout = 10 * time.Second

// buildPublisher assembles the event fan-out from config: the websocket
// hub when live reload is on, plus the configured broker. The returned
// hub is nil when live reload is disabled.
func buildPublisher(ctx context.Context, cfg *config.Config, checks map[string]health.Check, logger *zap.Logger) (events.Publisher, *live.Hub, func(), error) {
	var pubs []events.Publisher

	var hub *live.Hub
	if cfg.Events.EnableLiveReload {
		hub = live.NewHub(logger)
		pubs = append(pubs, hub)
	}

	switch cfg.Events.Backend {
	case "", "none":

	case "rabbitmq":
		rp, err := events.NewRabbitPublisher(
			cfg.Events.RabbitURL, cfg.Events.RabbitExchange, eventsConnectTimeout)
		if err != nil {
			return nil, nil, nil, err
		}
		checks["rabbitmq"] = rp.HealthCheck()
		pubs = append(pubs, rp)
		logger.Info("rabbitmq publisher connected",
			zap.String("exchange", cfg.Events.RabbitExchange))

	case "sqs":
		sp, err := events.NewSQSPublisher(ctx,
			cfg.Events.SQSRegion, cfg.Events.SQSQueueURL, cfg.Events.SQSEndpoint, eventsConnectTimeout)
		if err != nil {
			return nil, nil, nil, err
		}
		pubs = append(pubs, sp)
		logger.Info("sqs publisher ready", zap.String("queue", cfg.Events.SQSQueueURL))

	default:
		return nil, nil, nil, fmt.Errorf("unknown events_backend %q", cfg.Events.Backend)
	}

	multi := events.NewMulti(pubs...)
	closeFn := func() {
		if err := multi.Close(); err != nil {
			logger.Warn("event publisher close", zap.Error(err))
		}
	}
	return multi, hub, closeFn, nil
}
