package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	cr := resource("jet-recording-rules",
		rate5m("requests", `jet_requests_total`),
		rate5m("server_errors", `jet_requests_total{class="server_error"}`),
		rate5m("transport_errors", `jet_transport_errors_total`),
		rate5m("login_failures", `jet_logins_total{result!="success"}`),
	)
	cr.Spec.Groups[0].Name = "jet-recording"
	return cr
}
