package consent

import (
	"html/template"
	"net/url"

	"github.com/opendataloader-project/odlsite/internal/config"
)

// Script is a third-party tag mounted in the page head.
type Script struct {
	Name   string
	Src    string
	Inline template.JS
	Defer  bool
}

// Scripts returns the analytics tags allowed for state. Nothing is returned
// unless the visitor accepted.
func Scripts(cfg config.AnalyticsConfig, state State) []Script {
	if !state.CanUseCookies() {
		return nil
	}
	var out []Script
	if cfg.GoogleAnalyticsID != "" {
		id := cfg.GoogleAnalyticsID
		out = append(out,
			Script{Name: "google-analytics", Src: "https://www.googletagmanager.com/gtag/js?id=" + url.QueryEscape(id)},
			Script{Name: "google-analytics-init", Inline: template.JS(
				"window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}" +
					"gtag('js',new Date());gtag('config'," + jsString(id) + ");")},
		)
	}
	if cfg.SpeedInsights {
		out = append(out, Script{Name: "speed-insights", Src: "/_vercel/speed-insights/script.js", Defer: true})
	}
	if cfg.VercelAnalytics {
		out = append(out, Script{Name: "vercel-analytics", Src: "/_vercel/insights/script.js", Defer: true})
	}
	return out
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	return "'" + template.JSEscapeString(s) + "'"
}
