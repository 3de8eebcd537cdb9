package cmd

import (
	"context"
	"log/slog"

	"github.com/fondationhn/dossier-management/internal/core/events"
	"github.com/fondationhn/dossier-management/internal/metrics"
)

// registerEventHandlers wires the audit trail and domain counters onto
// the event bus.
func registerEventHandlers(bus *events.EventBus, log *slog.Logger) {
	audit := log.With("component", "audit")

	bus.Subscribe(events.EventDossierCreated, func(ctx context.Context, event events.Event) error {
		metrics.DossiersCreated.Inc()
		audit.Info("audit: dossier created", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventDossierStatusChanged, func(ctx context.Context, event events.Event) error {
		if data, ok := event.Payload().(map[string]interface{}); ok {
			from, _ := data["from_status"].(string)
			to, _ := data["to_status"].(string)
			metrics.DossierStatusChanged.WithLabelValues(from, to).Inc()
		}
		audit.Info("audit: dossier status changed", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventDossierDeleted, func(ctx context.Context, event events.Event) error {
		audit.Info("audit: dossier deleted", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})

	bus.Subscribe(events.EventFormulaireSubmitted, func(ctx context.Context, event events.Event) error {
		if data, ok := event.Payload().(map[string]interface{}); ok {
			formType, _ := data["form_type"].(string)
			metrics.FormulaireSubmissions.WithLabelValues(formType).Inc()
		}
		audit.Info("audit: formulaire submitted", "event_id", event.EventID(), "payload", event.Payload())
		return nil
	})
}
