package gff

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/illumination-k/interproscan-reader/internal/pkg/tagexpr"
)

const (
	// geneMarker in the source column marks a line that defines the
	// gene itself rather than an annotation hit within it.
	geneMarker = "."

	defaultName        = "No Name"
	defaultDescription = "No Description"
)

// DomainRecord is one annotation hit within a gene's span.
type DomainRecord struct {
	Source      string // member database that produced the hit, e.g. Pfam
	Start       uint64 // 1-based, inclusive
	End         uint64 // 1-based, inclusive
	Name        string
	Description string
}

// IsGeneMarker reports whether this record is a gene-defining line
// carrying the gene's span instead of annotation data.
func (d DomainRecord) IsGeneMarker() bool {
	return d.Source == geneMarker
}

func (d DomainRecord) String() string {
	return fmt.Sprintf("%d-%d %s %s", d.Start, d.End, d.Name, d.Description)
}

// GeneRecord is one annotated sequence: an identifier, its span length
// and the domains found within it, in input order. A GeneRecord with
// no domains is valid and represents an annotation-free gene.
type GeneRecord struct {
	ID      string
	Length  uint64
	domains []DomainRecord
}

// NewGeneRecord derives the length from the gene-defining span. The
// length is computed once here and never recomputed. A span with end
// before start would underflow, so it is rejected outright.
func NewGeneRecord(id string, start, end uint64) (*GeneRecord, error) {
	if end < start {
		return nil, &LineError{Msg: fmt.Sprintf("gene %s: end %d before start %d", id, end, start)}
	}
	return &GeneRecord{ID: id, Length: end - start + 1}, nil
}

// AppendDomain adds a domain at the end of the record's domain list.
func (g *GeneRecord) AppendDomain(d DomainRecord) {
	g.domains = append(g.domains, d)
}

// Domains returns a copy of the domain list in input order.
func (g *GeneRecord) Domains() []DomainRecord {
	return slices.Clone(g.domains)
}

// DomainNames returns the names of all domains, duplicates included.
// This is the tag set the domain filter expression is evaluated over.
func (g *GeneRecord) DomainNames() []string {
	names := make([]string, len(g.domains))
	for i, d := range g.domains {
		names[i] = d.Name
	}
	return names
}

// MatchesDomains evaluates expr over the record's domain names. Used
// for the record-level keep/drop decision, as opposed to the per-domain
// source filter.
func (g *GeneRecord) MatchesDomains(expr *tagexpr.Expr) (bool, error) {
	return expr.Matches(g.DomainNames())
}

// FilterBySource returns a copy keeping only domains whose source name
// satisfies expr. A nil expr is the identity.
func (g *GeneRecord) FilterBySource(expr *tagexpr.Expr) (*GeneRecord, error) {
	if expr == nil {
		return g, nil
	}

	out := &GeneRecord{ID: g.ID, Length: g.Length}
	for _, d := range g.domains {
		ok, err := expr.Matches([]string{d.Source})
		if err != nil {
			return nil, err
		}
		if ok {
			out.domains = append(out.domains, d)
		}
	}
	return out, nil
}

// TSVRecord renders the record as tab-separated lines: a summary line
// for the gene followed by one line per domain.
// Columns: gene_id, source, term_id, term_desc, start, end.
func (g *GeneRecord) TSVRecord() string {
	lines := make([]string, 0, len(g.domains)+1)
	lines = append(lines, fmt.Sprintf("%s\t.\t.\t.\t0\t%d", g.ID, g.Length))

	for _, d := range g.domains {
		lines = append(lines, fmt.Sprintf(
			"%s\t%s\t%s\t%s\t%d\t%d",
			g.ID, d.Source, d.Name, d.Description, d.Start, d.End,
		))
	}

	return strings.Join(lines, "\n")
}

// TableRows renders the same fields as TSVRecord, structured as rows
// for tabular display.
func (g *GeneRecord) TableRows() [][]string {
	rows := make([][]string, 0, len(g.domains)+1)
	rows = append(rows, []string{g.ID, ".", ".", ".", "0", strconv.FormatUint(g.Length, 10)})

	for _, d := range g.domains {
		rows = append(rows, []string{
			g.ID,
			d.Source,
			d.Name,
			d.Description,
			strconv.FormatUint(d.Start, 10),
			strconv.FormatUint(d.End, 10),
		})
	}

	return rows
}

func (g *GeneRecord) String() string {
	lines := make([]string, 0, len(g.domains))
	for _, d := range g.domains {
		lines = append(lines, d.String())
	}
	return fmt.Sprintf("--- id: %s, length %d ---\n%s", g.ID, g.Length, strings.Join(lines, "\n"))
}
