package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/opendataloader-project/odlsite/internal/samples"
)

// SamplesCmd groups the catalog subcommands.
type SamplesCmd struct {
	List SamplesListCmd `cmd:"" help:"List samples, optionally filtered by name"`
	Show SamplesShowCmd `cmd:"" help:"Show one sample and its payload URLs"`
}

type SamplesListCmd struct {
	Query string `short:"q" help:"Case-insensitive substring of the file name"`
}

func (l *SamplesListCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPDF")
	for _, d := range catalog.FilterByName(l.Query) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.PDFURL)
	}
	return tw.Flush()
}

type SamplesShowCmd struct {
	ID    string `arg:"" help:"14 digit sample id"`
	Fetch string `help:"Print the md, html or json payload instead"`
}

type sampleDetail struct {
	samples.Doc
	Data map[samples.DataType]string `json:"data"`
}

func (s *SamplesShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	doc, err := catalog.Get(s.ID)
	if err != nil {
		return err
	}

	if s.Fetch != "" {
		dt, err := samples.ParseDataType(s.Fetch)
		if err != nil {
			return err
		}
		ctx := context.Background()
		src, closeSrc, err := newBlobSource(ctx, cfg, &http.Client{Timeout: cfg.Server.ClientTimeout})
		if err != nil {
			return err
		}
		if closeSrc != nil {
			defer func() { _ = closeSrc() }()
		}
		data, err := src.Fetch(ctx, samples.DataKey(doc.ID, dt))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	detail := sampleDetail{Doc: doc, Data: map[samples.DataType]string{}}
	for _, dt := range samples.DataTypes {
		detail.Data[dt] = catalog.DataURL(doc.ID, dt)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(detail)
}
