package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/illumination-k/interproscan-reader/internal/gff"
	"github.com/illumination-k/interproscan-reader/internal/pkg/tagexpr"
	"github.com/illumination-k/interproscan-reader/internal/render"
	"github.com/illumination-k/interproscan-reader/internal/storage"
)

func main() {
	app := &cli.App{
		Name:  "interproscan-reader",
		Usage: "filter and re-project gene annotations from an InterProScan GFF3 file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "input GFF3 file generated by InterProScan (plain or .gz)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "outformat",
				Value: "id",
				Usage: "output format: id, all, tsv or json",
			},
			&cli.StringFlag{
				Name:  "id-expr",
				Usage: "select records by transcript (or gene) ID",
			},
			&cli.StringFlag{
				Name:  "domain-expr",
				Usage: "select records by domain name",
			},
			&cli.StringFlag{
				Name:  "source-expr",
				Usage: "filter output by source name",
			},
			&cli.StringFlag{
				Name:  "comment",
				Value: gff.DefaultComment,
				Usage: "comment prefix",
			},
			&cli.Uint64Flag{
				Name:  "min-length",
				Usage: "exclude genes shorter than this",
			},
			&cli.Uint64Flag{
				Name:  "max-length",
				Usage: "exclude genes longer than this",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "debug, info, warn or error",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
	}
	logrus.SetLevel(level)

	idExpr, err := parseExprFlag(c, "id-expr")
	if err != nil {
		return err
	}
	domainExpr, err := parseExprFlag(c, "domain-expr")
	if err != nil {
		return err
	}
	sourceExpr, err := parseExprFlag(c, "source-expr")
	if err != nil {
		return err
	}

	if err := gff.ValidateSourceExpr(sourceExpr); err != nil {
		return err
	}

	input := c.String("input")
	in, err := storage.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer in.Close()

	logrus.Debugf("reading %s", input)

	reader := gff.NewReader(in).
		WithComment(c.String("comment")).
		WithIDExpr(idExpr).
		WithDomainExpr(domainExpr).
		WithSourceExpr(sourceExpr)

	if c.IsSet("min-length") {
		reader = reader.WithMinLength(c.Uint64("min-length"))
	}
	if c.IsSet("max-length") {
		reader = reader.WithMaxLength(c.Uint64("max-length"))
	}

	records, err := reader.Finish()
	if err != nil {
		return err
	}
	logrus.Infof("%d records after filtering", len(records))

	switch format := c.String("outformat"); format {
	case "id":
		return render.IDs(os.Stdout, records)
	case "all":
		return render.Table(os.Stdout, records)
	case "tsv":
		return render.TSV(os.Stdout, records)
	case "json":
		return render.JSON(os.Stdout, records)
	default:
		return fmt.Errorf("unknown outformat %q (expected id, all, tsv or json)", format)
	}
}

func parseExprFlag(c *cli.Context, name string) (*tagexpr.Expr, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	expr, err := tagexpr.Parse(c.String(name))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return expr, nil
}
