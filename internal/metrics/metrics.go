// Package metrics define las métricas Prometheus del servicio.
// Paquete standalone para evitar ciclos de import entre http y services.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Las métricas se crean al cargar el paquete para que services y
// middlewares puedan incrementarlas sin importar si Register corrió
// (tests unitarios incluidos). Register solo las ata a un registry.
var (
	// HTTP
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Número total de requests procesadas",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latencia de los requests HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_inflight_requests",
		Help: "Requests en vuelo",
	})

	// Dominio
	SignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Usuarios registrados",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Intentos de login por resultado",
	}, []string{"result"}) // result: ok|failed

	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "onboarding_submissions_total",
		Help: "Submissions de pasos de onboarding por resultado",
	}, []string{"step", "result"}) // result: ok|invalid

	CatalogCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "component_catalog_cache_total",
		Help: "Accesos al cache del catálogo de componentes",
	}, []string{"result"}) // result: hit|miss
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register registra las métricas en el registry y devuelve el handler
// para /metrics. Idempotente: registros duplicados se ignoran.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	registerOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			HTTPRequestsTotal, HTTPRequestDuration, HTTPInflight,
			SignupsTotal, LoginsTotal, SubmissionsTotal, CatalogCacheTotal,
		} {
			if err := registerCollector(reg, c); err != nil {
				registerErr = err
				return
			}
		}
	})
	if registerErr != nil {
		return nil, registerErr
	}

	return promhttp.Handler(), nil
}

// registerCollector registra el collector ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

var uuidSegmentRE = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F-]{4}-[0-9a-fA-F-]{4,}$`)

// NormalizePath colapsa segmentos dinámicos (IDs, números de página) a
// :param para acotar la cardinalidad de los labels.
func NormalizePath(p string) string {
	clean := strings.SplitN(p, "?", 2)[0]
	segments := strings.Split(clean, "/")
	var out []string
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			out = append(out, ":param")
		} else {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if len(seg) > 48 {
		return true
	}
	if uuidSegmentRE.MatchString(seg) {
		return true
	}
	if _, err := strconv.Atoi(seg); err == nil {
		return true
	}
	return false
}
