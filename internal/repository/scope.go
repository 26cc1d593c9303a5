package repository

import (
	"context"

	"github.com/resolvedesk/quote-api/internal/auth"
	"gorm.io/gorm"
)

// ApplyOrganizationScope pushes the actor's organization filter into a GORM
// query. The column name is qualified by the caller so the filter works on
// joined queries. If no filter is set (actor can read all organizations),
// the query is returned unchanged.
func ApplyOrganizationScope(ctx context.Context, query *gorm.DB, columnName string) *gorm.DB {
	orgID := auth.GetEffectiveOrgFilter(ctx)
	if orgID != nil {
		return query.Where(columnName+" = ?", *orgID)
	}
	return query
}
