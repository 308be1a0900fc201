package gff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illumination-k/interproscan-reader/internal/pkg/tagexpr"
)

func mustExpr(t *testing.T, input string) *tagexpr.Expr {
	t.Helper()
	expr, err := tagexpr.Parse(input)
	require.NoError(t, err)
	return expr
}

func TestNewGeneRecordLength(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint64
		expected   uint64
	}{
		{name: "inclusive span", start: 10, end: 20, expected: 11},
		{name: "single base", start: 5, end: 5, expected: 1},
		{name: "from one", start: 1, end: 1000, expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gene, err := NewGeneRecord("gene1", tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, gene.Length)
		})
	}
}

func TestNewGeneRecordEndBeforeStart(t *testing.T) {
	_, err := NewGeneRecord("gene1", 20, 10)
	require.Error(t, err)

	var lineErr *LineError
	assert.True(t, errors.As(err, &lineErr), "expected *LineError, got %T", err)
}

func TestDomainRecordIsGeneMarker(t *testing.T) {
	assert.True(t, DomainRecord{Source: "."}.IsGeneMarker())
	assert.False(t, DomainRecord{Source: "Pfam"}.IsGeneMarker())
}

func testGene(t *testing.T) *GeneRecord {
	t.Helper()
	gene, err := NewGeneRecord("gene1", 1, 100)
	require.NoError(t, err)
	gene.AppendDomain(DomainRecord{Source: "Pfam", Start: 10, End: 30, Name: "PF1", Description: "kinase"})
	gene.AppendDomain(DomainRecord{Source: "Gene3D", Start: 40, End: 60, Name: "G3D1", Description: "fold"})
	gene.AppendDomain(DomainRecord{Source: "Pfam", Start: 70, End: 90, Name: "PF2", Description: "binding"})
	return gene
}

func TestDomainNames(t *testing.T) {
	gene := testGene(t)
	assert.Equal(t, []string{"PF1", "G3D1", "PF2"}, gene.DomainNames())
}

func TestMatchesDomains(t *testing.T) {
	gene := testGene(t)

	tests := []struct {
		expr     string
		expected bool
	}{
		{expr: "PF1", expected: true},
		{expr: "PF1 & G3D1", expected: true},
		{expr: "PF9", expected: false},
		{expr: "!PF9", expected: true},
		{expr: "PF1$1", expected: true},
		{expr: "PF1$2", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ok, err := gene.MatchesDomains(mustExpr(t, tt.expr))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestFilterBySource(t *testing.T) {
	gene := testGene(t)

	filtered, err := gene.FilterBySource(mustExpr(t, "Pfam"))
	require.NoError(t, err)

	assert.Equal(t, "gene1", filtered.ID)
	assert.Equal(t, uint64(100), filtered.Length)
	require.Len(t, filtered.Domains(), 2)
	assert.Equal(t, "PF1", filtered.Domains()[0].Name)
	assert.Equal(t, "PF2", filtered.Domains()[1].Name)

	// the original record is untouched
	assert.Len(t, gene.Domains(), 3)
}

func TestFilterBySourceIdentity(t *testing.T) {
	gene := testGene(t)

	filtered, err := gene.FilterBySource(nil)
	require.NoError(t, err)
	assert.Equal(t, gene, filtered)
}

func TestFilterBySourceEvalError(t *testing.T) {
	gene := testGene(t)

	_, err := gene.FilterBySource(mustExpr(t, "Pfam$x"))
	require.Error(t, err)

	var evalErr *tagexpr.EvalError
	assert.True(t, errors.As(err, &evalErr))
}

func TestTSVRecord(t *testing.T) {
	gene, err := NewGeneRecord("gene1", 10, 20)
	require.NoError(t, err)
	gene.AppendDomain(DomainRecord{Source: "Pfam", Start: 12, End: 15, Name: "X", Description: "Y"})

	expected := "gene1\t.\t.\t.\t0\t11\n" +
		"gene1\tPfam\tX\tY\t12\t15"
	assert.Equal(t, expected, gene.TSVRecord())
}

func TestTableRows(t *testing.T) {
	gene, err := NewGeneRecord("gene1", 10, 20)
	require.NoError(t, err)
	gene.AppendDomain(DomainRecord{Source: "Pfam", Start: 12, End: 15, Name: "X", Description: "Y"})

	expected := [][]string{
		{"gene1", ".", ".", ".", "0", "11"},
		{"gene1", "Pfam", "X", "Y", "12", "15"},
	}
	assert.Equal(t, expected, gene.TableRows())
}

func TestGeneRecordString(t *testing.T) {
	gene, err := NewGeneRecord("gene1", 10, 20)
	require.NoError(t, err)
	gene.AppendDomain(DomainRecord{Source: "Pfam", Start: 12, End: 15, Name: "X", Description: "Y"})

	assert.Equal(t, "--- id: gene1, length 11 ---\n12-15 X Y", gene.String())
}
