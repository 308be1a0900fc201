// Package render writes filtered gene records in the supported output
// formats. All writers are pure projections of already-validated
// records.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/valyala/fastjson"

	"github.com/illumination-k/interproscan-reader/internal/gff"
)

var tableHeaders = []string{"id", "source", "term_id", "term_desc", "start", "end"}

// IDs writes one gene identifier per line.
func IDs(w io.Writer, records []*gff.GeneRecord) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, rec.ID); err != nil {
			return err
		}
	}
	return nil
}

// TSV writes each record's tab-separated projection.
func TSV(w io.Writer, records []*gff.GeneRecord) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, rec.TSVRecord()); err != nil {
			return err
		}
	}
	return nil
}

// Table writes all records as one bordered table.
func Table(w io.Writer, records []*gff.GeneRecord) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...)

	for _, rec := range records {
		t.Rows(rec.TableRows()...)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// JSON writes all records as a JSON array of objects, each carrying
// the gene id, its length and its domains.
func JSON(w io.Writer, records []*gff.GeneRecord) error {
	var arena fastjson.Arena

	arr := arena.NewArray()
	for i, rec := range records {
		obj := arena.NewObject()
		obj.Set("id", arena.NewString(rec.ID))
		obj.Set("length", arena.NewNumberString(strconv.FormatUint(rec.Length, 10)))

		domains := arena.NewArray()
		for j, d := range rec.Domains() {
			dom := arena.NewObject()
			dom.Set("source", arena.NewString(d.Source))
			dom.Set("name", arena.NewString(d.Name))
			dom.Set("description", arena.NewString(d.Description))
			dom.Set("start", arena.NewNumberString(strconv.FormatUint(d.Start, 10)))
			dom.Set("end", arena.NewNumberString(strconv.FormatUint(d.End, 10)))
			domains.SetArrayItem(j, dom)
		}
		obj.Set("domains", domains)

		arr.SetArrayItem(i, obj)
	}

	buf := arr.MarshalTo(nil)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
