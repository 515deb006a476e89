// Package service contains the submission orchestrator
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"resumeranker/internal/core/htmltext"
	perr "resumeranker/internal/platform/errors"
	"resumeranker/internal/platform/logger"
	pstrings "resumeranker/internal/platform/strings"
	qdom "resumeranker/internal/services/api/quota/domain"
	"resumeranker/internal/services/api/screening/domain"
	sdom "resumeranker/internal/services/api/sync/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// defaultExeName labels a scoring run when no required skills are given
const defaultExeName = "run 1"

// Options control service behavior
type Options struct {
	// Validator, Scorer and Quota are required
	Validator domain.ValidatorPort
	Scorer    domain.ScorerPort
	Quota     qdom.ServicePort

	// Records is required, sync runs only for servicenow-sourced requests
	Records sdom.ServicePort

	Tiers domain.TierTable

	// RefundOnScoringFailure restores debited credits when scoring fails
	RefundOnScoringFailure bool
}

// Svc implements the service port
type Svc struct {
	validator domain.ValidatorPort
	scorer    domain.ScorerPort
	quota     qdom.ServicePort
	records   sdom.ServicePort
	tiers     domain.TierTable
	refund    bool
	log       logger.Logger
}

// New constructs the service
func New(opt Options) *Svc {
	if opt.Validator == nil {
		panic("screening.Service requires a non nil ValidatorPort")
	}
	if opt.Scorer == nil {
		panic("screening.Service requires a non nil ScorerPort")
	}
	if opt.Quota == nil {
		panic("screening.Service requires a non nil quota port")
	}
	if opt.Records == nil {
		panic("screening.Service requires a non nil records port")
	}
	return &Svc{
		validator: opt.Validator,
		scorer:    opt.Scorer,
		quota:     opt.Quota,
		records:   opt.Records,
		tiers:     opt.Tiers,
		refund:    opt.RefundOnScoringFailure,
		log:       *logger.Named("screening"),
	}
}

// Submit runs the pipeline in strict sequence, each stage gating the next
// the returned Outcome is always terminal
func (s *Svc) Submit(ctx context.Context, req domain.SubmissionRequest) domain.Outcome {
	out := domain.Outcome{SubmissionID: uuid.NewString()}
	log := s.log.With().Str("submission_id", out.SubmissionID).Logger()

	// intake gate, nothing leaves the process before this passes
	if reason := gate(req); reason != "" {
		log.Info().Str("reason", reason).Msg("submission rejected at intake")
		return rejected(out, domain.StageReceived, reason)
	}

	emailDomain := pstrings.EmailDomain(req.Email)

	// authorize the submitting domain
	dec, err := s.validator.Validate(ctx, req.Email)
	if err != nil {
		log.Warn().Err(err).Msg("domain validation unavailable")
		return rejected(out, domain.StageValidated, "domain validation unavailable: "+perr.WireFrom(err).Message)
	}
	if !dec.Authorized {
		log.Info().Str("domain", emailDomain).Str("reason", dec.Reason).Msg("domain not authorized")
		return rejected(out, domain.StageValidated, dec.Reason)
	}

	// reserve one credit per resume, atomically
	amount := len(req.Resumes)
	grant, err := s.quota.Reserve(ctx, emailDomain, amount)
	if err != nil {
		log.Error().Err(err).Msg("quota reservation errored")
		return failed(out, domain.StageQuota, perr.WireFrom(err).Message)
	}
	out.CreditsRemaining = grant.Remaining
	if !grant.OK {
		log.Info().Int("requested", amount).Int("balance", grant.Remaining).Msg("insufficient credits")
		return rejected(out, domain.StageQuota, "insufficient submission credits")
	}

	// score
	tier := s.tiers.For(emailDomain)
	res, err := s.scorer.Score(ctx, domain.ScorePayload{
		OrgID:          tier.OrgID,
		JobTitle:       req.JobTitle,
		ExeName:        pstrings.OrDefault(req.RequiredSkills, defaultExeName),
		JobDescription: htmltext.Strip(req.JobDescription),
	}, req.Resumes)
	if err != nil {
		log.Warn().Err(err).Msg("scoring failed")
		if s.refund {
			if remaining, rerr := s.quota.Refund(ctx, emailDomain, amount); rerr == nil {
				out.CreditsRemaining = remaining
			} else {
				log.Error().Err(rerr).Msg("refund after scoring failure errored")
			}
		}
		return failed(out, domain.StageScored, perr.WireFrom(err).Message)
	}

	out.CaseID = pstrings.OrDefault(req.CaseID, res.CaseID)
	out.Results = res.Raw

	// sync only when the routing hint asks for it
	// a failed sync degrades the outcome, scoring results are never discarded
	if strings.EqualFold(strings.TrimSpace(req.Source), domain.SourceServiceNow) {
		receipt, serr := s.records.Upsert(ctx, sdom.Fields{
			CaseID:            out.CaseID,
			JobTitle:          req.JobTitle,
			JobType:           req.JobType,
			YearsOfExperience: req.YearsOfExperience,
			Industry:          req.Industry,
			Email:             req.Email,
			RequiredSkills:    req.RequiredSkills,
			JobDescription:    req.JobDescription,
			AIResults:         res.Raw,
		})
		if serr != nil {
			log.Warn().Err(serr).Str("case_id", out.CaseID).Msg("record sync failed, completing anyway")
			out.Sync = &domain.SyncOutcome{Error: perr.WireFrom(serr).Message}
		} else {
			out.Sync = &domain.SyncOutcome{
				Action: string(receipt.Action),
				SysID:  receipt.SysID,
				Number: receipt.Number,
			}
		}
	}

	out.Status = domain.StatusCompleted
	log.Info().Str("case_id", out.CaseID).Int("resumes", amount).Msg("submission completed")
	return out
}

// ValidateEmail proxies the domain check for UI preflight
func (s *Svc) ValidateEmail(ctx context.Context, email string) (domain.ValidateRow, error) {
	if !strings.Contains(email, "@") {
		return domain.ValidateRow{}, perr.WithField(perr.Validationf("email must contain @"), "email")
	}
	dec, err := s.validator.Validate(ctx, email)
	if err != nil {
		return domain.ValidateRow{}, err
	}
	return domain.ValidateRow{Authorized: dec.Authorized, Reason: dec.Reason}, nil
}

// gate returns a rejection reason when required input is missing
func gate(req domain.SubmissionRequest) string {
	switch {
	case strings.TrimSpace(req.JobTitle) == "":
		return "job title is required"
	case strings.TrimSpace(req.JobType) == "":
		return "job type is required"
	case strings.TrimSpace(req.JobDescription) == "":
		return "job description is required"
	case strings.TrimSpace(req.Email) == "":
		return "email is required"
	case !strings.Contains(req.Email, "@"):
		return "email must contain @"
	case len(req.Resumes) == 0:
		return "at least one resume is required"
	}
	return ""
}

func rejected(out domain.Outcome, stage, reason string) domain.Outcome {
	out.Status = domain.StatusRejected
	out.Stage = stage
	out.Reason = reason
	return out
}

func failed(out domain.Outcome, stage, reason string) domain.Outcome {
	out.Status = domain.StatusFailed
	out.Stage = stage
	out.Reason = reason
	return out
}
