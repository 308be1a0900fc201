package gff

import (
	"fmt"
	"strings"

	"github.com/illumination-k/interproscan-reader/internal/pkg/tagexpr"
)

// SourceNames lists the InterProScan member databases that can appear
// in the source column.
var SourceNames = []string{
	"MobiDBLite",
	"Gene3D",
	"ProSitePatterns",
	"PANTHER",
	"CDD",
	"Pfam",
	"SUPERFAMILY",
	"ProSiteProfiles",
	"PRINTS",
	"PIRSF",
	"TIGRFAM",
	"SMART",
	"Coils",
	"PIRSR",
	"SFLD",
}

// ValidateSourceExpr rejects a source expression that cannot match any
// recognized source name, before a read begins. A nil expression is
// always valid.
func ValidateSourceExpr(expr *tagexpr.Expr) error {
	if expr == nil {
		return nil
	}

	ok, err := expr.Matches(SourceNames)
	if err != nil {
		return err
	}
	if !ok {
		return &ConfigError{Msg: fmt.Sprintf(
			"invalid source expression, select from [%s]", strings.Join(SourceNames, " "),
		)}
	}
	return nil
}
