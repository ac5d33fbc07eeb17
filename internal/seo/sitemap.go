// Package seo generates machine-readable site metadata: sitemap.xml and the
// llms.txt summaries.
package seo

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/opendataloader-project/odlsite/internal/docs"
)

// ChangeFrequency is a sitemap changefreq value.
type ChangeFrequency string

const (
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
)

// Entry is one sitemap URL.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        float64
}

// Sitemap lists the static routes followed by one entry per docs page.
// Pages without a known modification time use now.
func Sitemap(baseURL string, pages []*docs.Page, now time.Time) []Entry {
	base := strings.TrimRight(baseURL, "/")
	entries := []Entry{
		{URL: base, LastModified: now, ChangeFrequency: ChangeWeekly, Priority: 1.0},
		{URL: base + "/demo", LastModified: now, ChangeFrequency: ChangeMonthly, Priority: 0.7},
		{URL: base + docs.URLPrefix, LastModified: now, ChangeFrequency: ChangeWeekly, Priority: 0.9},
	}
	for _, p := range pages {
		// The root index is already listed as the docs landing page.
		if len(p.Slugs) == 0 {
			continue
		}
		mod := p.LastModified
		if mod.IsZero() {
			mod = now
		}
		entries = append(entries, Entry{
			URL:             base + docs.URLPrefix + "/" + strings.Join(p.Slugs, "/"),
			LastModified:    mod,
			ChangeFrequency: ChangeWeekly,
			Priority:        0.8,
		})
	}
	return entries
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// WriteSitemap encodes entries in the sitemaps.org format.
func WriteSitemap(w io.Writer, entries []Entry) error {
	set := urlset{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, e := range entries {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        e.URL,
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Flush()
}
