package observability

import (
	log "github.com/sirupsen/logrus"

	"github.com/safelabs/sentinel-node/internal/ports"
)

// LogObs is a log-only observability backend for deployments that do
// not expose metrics, and for tests.
type LogObs struct {
	logger *log.Logger
}

func NewLogObs(logger *log.Logger) *LogObs {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogObs{logger: logger}
}

func (o *LogObs) LogInfo(msg string, fields ...ports.Field) {
	o.logger.WithFields(toLogrus(fields)).Info(msg)
}

func (o *LogObs) LogError(msg string, err error, fields ...ports.Field) {
	entry := o.logger.WithFields(toLogrus(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

func (o *LogObs) IncCounter(string, float64) {}

func (o *LogObs) SetGauge(string, float64) {}

func (o *LogObs) ObserveLatency(string, float64) {}

var _ ports.Observability = (*LogObs)(nil)
