// Package service contains the record sync workflows
package service

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"resumeranker/internal/adapters/gateway/servicenow"
	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/services/api/sync/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// TableClient is the external record-table surface the service needs
type TableClient interface {
	Query(ctx context.Context, table, query string, limit int) ([]servicenow.Record, error)
	Create(ctx context.Context, table string, fields map[string]string) (servicenow.WriteResult, error)
	Update(ctx context.Context, table, sysID string, fields map[string]string) (servicenow.WriteResult, error)
}

// Options control service behavior
type Options struct {
	// Table is the target table name
	Table string

	// Client is required when MissingConfig is empty
	Client TableClient

	// MissingConfig lists absent required settings
	// a non empty list turns every Upsert into a configuration error
	MissingConfig []string
}

const lockStripes = 64

// Svc implements the service port
// a striped per-case-id lock closes the lookup/create window so two
// concurrent syncs for the same case can never both observe "no match"
type Svc struct {
	table   string
	client  TableClient
	missing []string
	locks   [lockStripes]sync.Mutex
}

// New constructs the service
func New(opt Options) *Svc {
	if len(opt.MissingConfig) == 0 && opt.Client == nil {
		panic("sync.Service requires a non nil TableClient when configured")
	}
	return &Svc{
		table:   opt.Table,
		client:  opt.Client,
		missing: opt.MissingConfig,
	}
}

// Upsert looks the case up first and either updates the matched record in
// place or creates a new one, writing the identical field set either way
func (s *Svc) Upsert(ctx context.Context, f domain.Fields) (domain.Receipt, error) {
	if len(s.missing) > 0 {
		return domain.Receipt{}, perr.Configf(
			"record sync is not configured, missing %s", strings.Join(s.missing, ", "),
		)
	}
	caseID := strings.TrimSpace(f.CaseID)
	if caseID == "" {
		return domain.Receipt{}, perr.WithField(perr.Validationf("case id must not be empty"), "case_id")
	}

	mu := s.lockFor(caseID)
	mu.Lock()
	defer mu.Unlock()

	// lookup must be observed before the branch, a failed lookup aborts
	// rather than risking a blind create and a duplicate record
	matches, err := s.client.Query(ctx, s.table, "u_case_id="+caseID, 1)
	if err != nil {
		return domain.Receipt{}, err
	}

	fields := wireFields(caseID, f)

	if len(matches) > 0 {
		sysID, _ := matches[0]["sys_id"].(string)
		if sysID == "" {
			return domain.Receipt{}, perr.Syncf(0, "matched record for case %s has no sys_id", caseID)
		}
		res, err := s.client.Update(ctx, s.table, sysID, fields)
		if err != nil {
			return domain.Receipt{}, err
		}
		return domain.Receipt{Action: domain.ActionUpdated, SysID: sysID, Number: res.Number}, nil
	}

	res, err := s.client.Create(ctx, s.table, fields)
	if err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{Action: domain.ActionCreated, SysID: res.SysID, Number: res.Number}, nil
}

// wireFields maps the payload to table columns
// every column is present on every write, optional values as ""
func wireFields(caseID string, f domain.Fields) map[string]string {
	return map[string]string{
		"u_case_id":             caseID,
		"u_job_title":           f.JobTitle,
		"u_job_type":            f.JobType,
		"u_years_of_experience": f.YearsOfExperience,
		"u_industry":            f.Industry,
		"u_email":               f.Email,
		"u_required_skills":     f.RequiredSkills,
		"u_job_description":     f.JobDescription,
		"u_ai_results":          string(f.AIResults),
	}
}

func (s *Svc) lockFor(caseID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(caseID))
	return &s.locks[h.Sum32()%lockStripes]
}
