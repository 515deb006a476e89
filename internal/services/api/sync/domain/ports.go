package domain

import "context"

// ServicePort is the interface implemented by the sync service
type ServicePort interface {
	// Upsert converges the external record for Fields.CaseID to exactly one row
	// repeated calls for the same case id update in place, never duplicate
	Upsert(ctx context.Context, f Fields) (Receipt, error)
}
