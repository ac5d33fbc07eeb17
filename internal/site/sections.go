package site

// Link is a navigation or call-to-action link.
type Link struct {
	Label    string
	Href     string
	External bool
	Track    string // analytics event name sent on click
}

// Badge is a hero eyebrow label.
type Badge struct {
	Label string
}

// Hero is the top of the home page.
type Hero struct {
	Badges      []Badge
	Headline    string
	Highlight   string
	Subheadline []string
	CTAs        []Link
}

// Metric is a benchmark figure group.
type Metric struct {
	Key      string
	Title    string
	Subtitle string
}

// Figure is a benchmark chart.
type Figure struct {
	Title       string
	Description string
	Image       string
	Alt         string
}

// Benchmark summarizes extraction quality and energy figures.
type Benchmark struct {
	Subtitle string
	Metrics  []Metric
	Figures  []Figure
	Links    []Link
}

// CodeExample is one quick start tab.
type CodeExample struct {
	Key       string
	Label     string
	Language  string
	Install   string
	Code      string
	GuideLink string
	GuideText string
}

// Feature is a selling point.
type Feature struct {
	Title       string
	Description string
}

// Sections is the static copy composed into the home page.
type Sections struct {
	Hero       Hero
	Features   []Feature
	Benchmark  Benchmark
	QuickStart []CodeExample
	ContactCTA Link
	Footer     []Link
}

// DefaultSections returns the marketing copy.
func DefaultSections() Sections {
	return Sections{
		Hero: Hero{
			Badges:    []Badge{{"Fast"}, {"Accurate"}, {"100% Local"}},
			Headline:  "Best Open-Source PDF Parser",
			Highlight: "for RAG & LLM Pipelines",
			Subheadline: []string{
				"No GPU required, 100% local processing with bounding boxes.",
				"Convert PDFs to LLM-ready Markdown and JSON with accurate reading order and table extraction.",
			},
			CTAs: []Link{
				{Label: "Get Started", Href: "/docs/quick-start-python", Track: "get_started"},
				{Label: "GitHub", Href: "https://github.com/opendataloader-project/opendataloader-pdf", External: true, Track: "github"},
			},
		},
		Features: []Feature{
			{"Accurate reading order", "XY-Cut++ keeps multi-column layouts in the order a person reads them."},
			{"Tables and headings", "Table structure and heading levels survive the conversion."},
			{"Bounding boxes", "Every element carries its page coordinates for citations."},
			{"100% local", "No network calls and no GPU. Output is deterministic."},
		},
		Benchmark: Benchmark{
			Subtitle: "OpenDataLoader PDF is continuously researched to deliver high-quality extraction with low energy use.",
			Metrics: []Metric{
				{"average", "Average Score", "(NID + TEDS + MHS) / 3"},
				{"readingOrder", "Reading Order (NID)", "Text sequence accuracy"},
				{"table", "Table Score (TEDS)", "Table extraction accuracy"},
				{"heading", "Heading Score (MHS)", "Heading detection accuracy"},
			},
			Figures: []Figure{
				{"Overall Data Quality", "High-fidelity extraction across layouts.", "/static/figures/benchmark_overall.png", "Overall benchmark comparison across engines"},
				{"Energy Consumption", "Low power per document.", "/static/figures/benchmark_energy-consumption.png", "Energy consumption benchmark comparison across engines"},
			},
			Links: []Link{
				{Label: "Learn More", Href: "/docs/benchmark"},
				{Label: "Benchmark (GitHub)", Href: "https://github.com/opendataloader-project/opendataloader-bench", External: true},
			},
		},
		QuickStart: []CodeExample{
			{
				Key: "python", Label: "Python", Language: "python",
				Install: "pip install -U opendataloader-pdf",
				Code: "import opendataloader_pdf\n\nopendataloader_pdf.convert(\n    input_path=[\"document.pdf\"],\n" +
					"    output_dir=\"output/\",\n    format=\"json,html,pdf,markdown\"\n)",
				GuideLink: "/docs/quick-start-python", GuideText: "View Python Guide",
			},
			{
				Key: "nodejs", Label: "Node.js", Language: "typescript",
				Install: "npm install @opendataloader/pdf",
				Code: "import { convert } from \"@opendataloader/pdf\";\n\nawait convert([\"document.pdf\"], {\n" +
					"  outputDir: \"output/\",\n  format: \"json,html,pdf,markdown\"\n});",
				GuideLink: "/docs/quick-start-nodejs", GuideText: "View Node.js Guide",
			},
			{
				Key: "docker", Label: "Docker", Language: "bash",
				Code: "docker run --rm -v \"$PWD\":/work \\\n  ghcr.io/opendataloader-project/opendataloader-pdf-cli:latest \\\n" +
					"  /work/document.pdf -f json,html,pdf,markdown",
				GuideLink: "/docs/quick-start-docker", GuideText: "View Docker Guide",
			},
			{
				Key: "java", Label: "Java", Language: "java",
				Install: "<dependency>\n  <groupId>org.opendataloader</groupId>\n  <artifactId>opendataloader-pdf-core</artifactId>\n" +
					"  <version>1.4.1</version>\n</dependency>",
				Code: "Config config = new Config();\nconfig.setOutputFolder(\"output/\");\n\n" +
					"OpenDataLoaderPDF.processFile(\"document.pdf\", config);",
				GuideLink: "/docs/quick-start-java", GuideText: "View Java Guide",
			},
		},
		ContactCTA: Link{Label: "Contact Us", Href: "/contact", Track: "contact"},
		Footer: []Link{
			{Label: "Documentation", Href: "/docs", Track: "docs"},
			{Label: "Javadocs", Href: "https://javadoc.io/doc/org.opendataloader/opendataloader-pdf-core/latest", External: true, Track: "javadocs"},
			{Label: "Privacy Policy", Href: "/privacy-policy", Track: "privacy-policy"},
		},
	}
}

// Nav is the header navigation.
func Nav() []Link {
	return []Link{
		{Label: "Docs", Href: "/docs"},
		{Label: "Demo", Href: "/demo"},
		{Label: "Showcase", Href: "/showcase"},
		{Label: "Contact", Href: "/contact"},
	}
}

// Showcase describes the Data Loader Studio page.
type Showcase struct {
	Title      string
	Intro      string
	Image      string
	Highlights []Feature
	Story      []string
	Snapshot   []Feature
	Email      string
}

// DefaultShowcase returns the showcase copy.
func DefaultShowcase() Showcase {
	return Showcase{
		Title: "Data Loader Studio",
		Intro: "Data Loader Studio is a commercial product developed by HANCOM using OpenDataLoader PDF, " +
			"pairing the extraction engine with an operator-ready workspace.",
		Image: "/static/figures/hnc-studio-preview.webp",
		Highlights: []Feature{
			{"Viewing Mode Preview", "Review teams compare rendered pages with extracted JSON so that every token, table, and annotation stays trustworthy."},
			{"Studio workflow controls", "Operators can flag corrections, leave guidance, and push documents through approval without leaving the browser."},
			{"OpenDataLoader engine", "HANCOM ships the OpenDataLoader PDF extraction core with commercial support, localization, and deployment tooling."},
		},
		Story: []string{
			"HANCOM teams needed a multilingual pipeline that preserves tables, annotations, and page context for regulated industries. " +
				"Instead of rebuilding a parser, they started with OpenDataLoader PDF to get high-fidelity JSON, Markdown, and HTML exports out of unstructured PDF archives.",
			"Inside Data Loader Studio, operators can audit every extraction in Viewing Mode Preview, leave inline feedback, and re-run jobs with tuned settings.",
		},
		Snapshot: []Feature{
			{"Tech stack", "OpenDataLoader PDF + HANCOM automation layer"},
			{"Core focus", "Regulated document review, localization, and approvals."},
			{"Availability", "Commercial product offered directly by HANCOM."},
		},
		Email: "open.dataloader@hancom.com",
	}
}
