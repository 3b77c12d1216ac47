package rules

// AlertRules returns a PrometheusRule CR containing alert rules for the
// Jet merchant client.
func AlertRules() PrometheusRule {
	return resource("jet-alerts",
		alert("JetClientDown",
			`absent(up{job="jetctl"})`, "5m", warning,
			"jetctl metrics endpoint is not being scraped",
			"The jetctl job has been absent for more than 5 minutes."),
		alert("JetLoginFailing",
			`jet:login_failures:rate5m > 0 and on() sum(rate(jet_logins_total{result="success"}[5m])) == 0`, "10m", critical,
			"Jet logins keep failing",
			"No login has succeeded for 10 minutes while attempts keep failing. Check the merchant credentials."),
		alert("JetAuthTestFailing",
			`increase(jet_logins_total{result="auth_test_failed"}[15m]) > 0`, "0m", warning,
			"Jet issued tokens that failed the live auth test",
			"A token returned by the login endpoint was not accepted by the auth-test endpoint."),
		alert("JetHighServerErrorRate",
			`jet:server_errors:rate5m / jet:requests:rate5m > 0.05`, "5m", warning,
			"High 5xx rate from the Jet API",
			"More than 5% of Jet API requests are returning 5xx responses over the last 5 minutes."),
		alert("JetTransportErrors",
			`jet:transport_errors:rate5m > 0.1`, "5m", warning,
			"Requests to the Jet API are failing below HTTP",
			"Transport errors are occurring at more than 0.1/s for the last 5 minutes."),
	)
}
