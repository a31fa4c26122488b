package transport

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// MetricsHandler exposes the Prometheus registry's collectors for
// scraping via the standard promhttp handler rather than a hand-rolled
// text exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
