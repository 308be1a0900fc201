package gff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/illumination-k/interproscan-reader/internal/pkg/tagexpr"
)

const (
	// DefaultFinishLine marks the end of the tabular records in an
	// InterProScan GFF3 file; the embedded FASTA section follows it.
	DefaultFinishLine = "## FASTA ##"

	// DefaultComment prefixes directive and comment lines.
	DefaultComment = "#"
)

// Reader aggregates a line source into GeneRecords in a single forward
// pass, applying the identifier filter and length bounds inline and the
// domain/source filters after the pass.
type Reader struct {
	scanner *bufio.Scanner

	comment    string
	finishLine string

	idExpr     *tagexpr.Expr
	domainExpr *tagexpr.Expr
	sourceExpr *tagexpr.Expr

	minLength *uint64
	maxLength *uint64
}

// NewReader wraps r with default comment and finish-line markers.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// attribute columns can get long; default 64KiB is tight
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Reader{
		scanner:    sc,
		comment:    DefaultComment,
		finishLine: DefaultFinishLine,
	}
}

// WithComment sets the comment prefix.
func (r *Reader) WithComment(comment string) *Reader {
	r.comment = comment
	return r
}

// WithFinishLine sets the sentinel prefix that ends the record section.
func (r *Reader) WithFinishLine(finishLine string) *Reader {
	r.finishLine = finishLine
	return r
}

// WithIDExpr filters lines by gene (or transcript) identifier.
func (r *Reader) WithIDExpr(expr *tagexpr.Expr) *Reader {
	r.idExpr = expr
	return r
}

// WithDomainExpr drops finished records whose domain-name set does not
// satisfy expr.
func (r *Reader) WithDomainExpr(expr *tagexpr.Expr) *Reader {
	r.domainExpr = expr
	return r
}

// WithSourceExpr prunes each surviving record's domains by source name.
func (r *Reader) WithSourceExpr(expr *tagexpr.Expr) *Reader {
	r.sourceExpr = expr
	return r
}

// WithMinLength excludes genes shorter than n, checked at creation.
func (r *Reader) WithMinLength(n uint64) *Reader {
	r.minLength = &n
	return r
}

// WithMaxLength excludes genes longer than n, checked at creation.
func (r *Reader) WithMaxLength(n uint64) *Reader {
	r.maxLength = &n
	return r
}

// Finish consumes the whole line source and returns the filtered
// records in first-seen order. Malformed lines are fatal; filter and
// length-bound mismatches are per-record skips.
//
// Gene-defining lines must precede their domain lines: a domain line
// whose gene has not been seen yet is dropped, and a duplicate
// gene-defining line for the same identifier is ignored (first wins).
func (r *Reader) Finish() ([]*GeneRecord, error) {
	byID := make(map[string]*GeneRecord)
	var order []string

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if strings.HasPrefix(line, r.finishLine) {
			break
		}
		if r.comment != "" && strings.HasPrefix(line, r.comment) {
			continue
		}
		if len(line) == 1 {
			continue
		}

		id, domain, err := parseLine(line)
		if err != nil {
			return nil, err
		}

		if r.idExpr != nil {
			ok, err := r.idExpr.Matches([]string{id})
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		if domain.IsGeneMarker() {
			if _, exists := byID[id]; exists {
				continue
			}
			gene, err := NewGeneRecord(id, domain.Start, domain.End)
			if err != nil {
				return nil, err
			}
			if r.maxLength != nil && gene.Length > *r.maxLength {
				continue
			}
			if r.minLength != nil && gene.Length < *r.minLength {
				continue
			}
			byID[id] = gene
			order = append(order, id)
		} else if gene, ok := byID[id]; ok {
			gene.AppendDomain(domain)
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	records := make([]*GeneRecord, 0, len(order))
	for _, id := range order {
		gene := byID[id]

		if r.domainExpr != nil {
			ok, err := gene.MatchesDomains(r.domainExpr)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		gene, err := gene.FilterBySource(r.sourceExpr)
		if err != nil {
			return nil, err
		}
		records = append(records, gene)
	}

	return records, nil
}

// parseLine splits a nine-column GFF3 line into its identifier and a
// DomainRecord. Field layout: id, source, type, start, end, score,
// strand, phase, attributes. Name and signature_desc are pulled out of
// the ';'-joined key=value attributes.
func parseLine(line string) (string, DomainRecord, error) {
	line = strings.TrimSpace(line)

	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return "", DomainRecord{}, &LineError{Msg: "invalid line: " + line}
	}

	start, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return "", DomainRecord{}, &LineError{Msg: fmt.Sprintf("invalid start %q: %v", fields[3], err)}
	}
	end, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return "", DomainRecord{}, &LineError{Msg: fmt.Sprintf("invalid end %q: %v", fields[4], err)}
	}

	name, desc := defaultName, defaultDescription
	for _, attr := range strings.Split(fields[8], ";") {
		kv := strings.Split(attr, "=")
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "Name":
			name = kv[1]
		case "signature_desc":
			desc = kv[1]
		}
	}

	return fields[0], DomainRecord{
		Source:      fields[1],
		Start:       start,
		End:         end,
		Name:        name,
		Description: desc,
	}, nil
}
