// Package handlers contains the HTTP handlers behind the site router:
//   - Page handlers rendering the marketing pages, demo viewer and docs
//   - The samples JSON API
//   - SEO outputs (sitemap.xml, llms.txt, llms-full.txt)
//   - Health and readiness probes for the admin port
//
// Handlers report failures as classified errors through the
// foundation/errors HTTPErrorAdapter, or as the 404 page for page routes.
package handlers
