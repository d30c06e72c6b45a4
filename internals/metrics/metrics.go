// Package metrics holds the Prometheus collectors of the certificate engine.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// outcome: created | existing
	CertificatesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "certificates",
		Name:      "generated_total",
		Help:      "Certificate generation requests by language and outcome.",
	}, []string{"language", "outcome"})

	// reason: not_found | not_eligible | template_missing | error
	CertificateGenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "certificates",
		Name:      "generation_failures_total",
		Help:      "Certificate generation failures by reason.",
	}, []string{"reason"})

	// result: valid | not_found
	CertificateVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "certificates",
		Name:      "verifications_total",
		Help:      "Public certificate verification lookups by result.",
	}, []string{"result"})

	TemplateDefaultChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academy",
		Subsystem: "certificate_templates",
		Name:      "default_changes_total",
		Help:      "Times a template was promoted to default, by language.",
	}, []string{"language"})
)

// Handler exposes the default registry on a Fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
