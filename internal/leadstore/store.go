// Package leadstore holds the in-memory state of loan applications being
// worked by one intake session: the reconciled leads list, the lead
// currently open in the wizard, and the dashboard summary counts. It is an
// explicit, injectable container (construct as many independent instances
// as you need) and the only component that mutates this state.
package leadstore

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"origo/internal/mapper"
	"origo/internal/models"
	"origo/internal/origination"

	"github.com/google/uuid"
)

// Service errors
var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrCoApplicantNotFound = errors.New("co-applicant not found")
	ErrPaymentNotFound     = errors.New("payment session not found")
	ErrInvalidTransition   = errors.New("status transition not allowed")
)

// Client is the slice of the origination API the store reads from.
type Client interface {
	GetApplicationSummary(ctx context.Context) (*origination.SummaryResponse, error)
	GetApplicationDetails(ctx context.Context, appID string) (*origination.DetailResponse, error)
}

// DraftPersister receives write-through snapshots of locally-held leads.
// Persistence is best-effort: the store stays authoritative and logs
// snapshot failures instead of propagating them.
type DraftPersister interface {
	SaveSnapshot(lead *models.Lead) error
	DeleteSnapshot(leadID string) error
}

// Store is the application state aggregator.
type Store struct {
	mu      sync.RWMutex
	client  Client
	drafts  DraftPersister
	leads   []models.Lead
	current *models.Lead
	stats   models.SummaryStats
	lastErr string
	loading bool

	now   func() time.Time
	newID func() string
}

// NewStore creates a lead store backed by the given origination client.
// drafts may be nil to disable snapshot persistence.
func NewStore(client Client, drafts DraftPersister) *Store {
	if client == nil {
		panic("origination client is required")
	}
	return &Store{
		client: client,
		drafts: drafts,
		leads:  []models.Lead{},
		now:    time.Now,
		newID: func() string {
			return strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
	}
}

// RefreshLeads fetches the summary list and reconciles it against the
// in-memory leads. Entries known on both sides keep all local enrichment
// and only refresh the cheap display fields; backend-only ids come in as
// skeletons; local-only drafts (not yet OTP-verified) survive at the end.
// On failure the last known leads and stats are left untouched and the
// error is recorded for the dashboard to surface.
func (s *Store) RefreshLeads(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	summary, err := s.client.GetApplicationSummary(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return err
	}

	byAppID := make(map[string]int, len(s.leads))
	for i := range s.leads {
		if s.leads[i].AppID != "" {
			byAppID[s.leads[i].AppID] = i
		}
	}

	merged := make([]models.Lead, 0, len(summary.Applications)+len(s.leads))
	seen := make(map[string]bool, len(summary.Applications))
	for _, item := range summary.Applications {
		seen[item.ApplicationID] = true
		if idx, ok := byAppID[item.ApplicationID]; ok {
			existing := s.leads[idx]
			existing.CustomerFirstName = item.FirstName
			existing.CustomerLastName = item.LastName
			existing.CustomerName = mapper.ComposeCustomerName(item.FirstName, item.LastName, existing.CustomerName)
			existing.CustomerMobile = item.MobileNumber
			if t, ok := parseSummaryTime(item.CreatedOn); ok {
				existing.CreatedAt = t
			}
			merged = append(merged, existing)
			continue
		}
		merged = append(merged, mapper.SummaryItemToLead(item))
	}
	for _, l := range s.leads {
		if l.AppID == "" || !seen[l.AppID] {
			merged = append(merged, l)
		}
	}

	s.leads = merged
	s.stats = models.SummaryStats{
		Total:     summary.TotalApplications,
		Draft:     summary.DraftApplications,
		Completed: summary.CompletedApplications,
	}
	s.lastErr = ""
	s.syncCurrentLocked()
	return nil
}

// FetchLeadDetails returns the locally-held lead straight away when its
// detail payload is already present and force is false; this cache hit is
// the store's only redundant-fetch protection. Otherwise the detail
// endpoint is called: a structured API error is returned for the caller
// to surface, while a success response with no usable data yields a bare
// skeleton rather than an error.
func (s *Store) FetchLeadDetails(ctx context.Context, applicationID string, force bool) (*models.Lead, error) {
	s.mu.RLock()
	var base models.Lead
	haveBase := false
	for i := range s.leads {
		if leadMatches(&s.leads[i], applicationID) {
			base = s.leads[i]
			haveBase = true
			break
		}
	}
	s.mu.RUnlock()

	if haveBase && base.HasDetails && !force {
		cp := base
		return &cp, nil
	}

	detail, err := s.client.GetApplicationDetails(ctx, applicationID)
	if err != nil {
		// The cached copy, if any, stays untouched on failure.
		return nil, err
	}

	if !haveBase {
		base = models.Lead{
			ID:     applicationID,
			AppID:  applicationID,
			Status: models.StatusDraft,
		}
	}

	var lead models.Lead
	if emptyDetail(detail) {
		// Bare skeleton; HasDetails stays false so a later open retries.
		lead = base
	} else {
		lead = mapper.DetailedInfoToLead(base, detail)
	}

	s.mu.Lock()
	s.spliceLocked(lead)
	s.mu.Unlock()
	s.persist(&lead)

	cp := lead
	return &cp, nil
}

// CreateLead synthesizes a new empty draft and makes it the current lead.
// It is deliberately NOT added to the leads list: a lead only becomes
// "real" once mobile OTP verification promotes it via AddLeadToArray.
func (s *Store) CreateLead() *models.Lead {
	now := s.now()
	lead := models.Lead{
		ID:        s.newID(),
		Status:    models.StatusDraft,
		FormData:  models.FormData{CoApplicants: []models.CoApplicant{}},
		Payments:  []models.PaymentSession{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	cp := lead
	s.current = &cp
	s.mu.Unlock()
	s.persist(&lead)

	out := lead
	return &out
}

// AddLeadToArray upserts a lead into the list by id or AppID, merging when
// a match exists. It is called once OTP verification has produced a real
// AppID, and kicks off a background refresh to reconcile with the backend.
func (s *Store) AddLeadToArray(lead models.Lead) *models.Lead {
	s.mu.Lock()
	var result models.Lead
	found := false
	for i := range s.leads {
		if s.leads[i].ID == lead.ID || (lead.AppID != "" && s.leads[i].AppID == lead.AppID) {
			s.leads[i] = MergeLead(s.leads[i], leadAsUpdate(lead), s.now())
			result = s.leads[i]
			found = true
			break
		}
	}
	if !found {
		s.leads = append(s.leads, lead)
		result = lead
	}
	if s.current != nil && (s.current.ID == lead.ID || (lead.AppID != "" && s.current.AppID == lead.AppID)) {
		cp := result
		s.current = &cp
	}
	s.mu.Unlock()
	s.persist(&result)

	go func() {
		if err := s.RefreshLeads(context.Background()); err != nil {
			log.Printf("background refresh after lead promotion failed: %v", err)
		}
	}()

	out := result
	return &out
}

// UpdateLead runs the merge engine against the matching list entry and the
// current lead, keeping the two views consistent without a round-trip.
// Concurrent saves of different steps commute; same-step saves are
// last-write-wins, which the single-operator-per-application usage accepts.
func (s *Store) UpdateLead(leadID string, update models.LeadUpdate) (*models.Lead, error) {
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		return MergeLead(l, update, s.now())
	})
}

// SubmitLead is the local status transition to Submitted; the backend
// submission call is expected to have already happened on the calling
// page.
func (s *Store) SubmitLead(leadID string) (*models.Lead, error) {
	s.mu.RLock()
	lead, err := s.findLocked(leadID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !CanTransition(lead.Status, models.StatusSubmitted) {
		return nil, ErrInvalidTransition
	}
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		l.Status = models.StatusSubmitted
		l.UpdatedAt = s.now()
		return l
	})
}

// UpdateLeadStatus sets the status directly, bypassing the merge engine,
// but still refuses transitions outside the lifecycle table.
func (s *Store) UpdateLeadStatus(leadID string, status models.LeadStatus) (*models.Lead, error) {
	s.mu.RLock()
	lead, err := s.findLocked(leadID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !CanTransition(lead.Status, status) {
		return nil, ErrInvalidTransition
	}
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		l.Status = status
		return l
	})
}

// DeleteLead removes the lead and clears the current view if it was the
// one deleted.
func (s *Store) DeleteLead(leadID string) error {
	s.mu.Lock()
	found := false
	out := s.leads[:0]
	for _, l := range s.leads {
		if leadMatches(&l, leadID) {
			found = true
			continue
		}
		out = append(out, l)
	}
	s.leads = out
	if s.current != nil && leadMatches(s.current, leadID) {
		s.current = nil
		found = true
	}
	s.mu.Unlock()

	if !found {
		return ErrLeadNotFound
	}
	if s.drafts != nil {
		if err := s.drafts.DeleteSnapshot(leadID); err != nil {
			log.Printf("failed to delete draft snapshot for %s: %v", leadID, err)
		}
	}
	return nil
}

// AddPayment appends a payment session, symmetric to both views.
func (s *Store) AddPayment(leadID string, payment models.PaymentSession) (*models.Lead, error) {
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		l.Payments = append(append([]models.PaymentSession{}, l.Payments...), payment)
		return l
	})
}

// UpdatePayment patches a payment session by id.
func (s *Store) UpdatePayment(leadID, paymentID string, patch models.PaymentPatch) (*models.Lead, error) {
	s.mu.RLock()
	lead, err := s.findLocked(leadID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !hasPayment(lead, paymentID) {
		return nil, ErrPaymentNotFound
	}
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		out := make([]models.PaymentSession, len(l.Payments))
		for i, p := range l.Payments {
			if p.ID == paymentID {
				p = applyPaymentPatch(p, patch)
			}
			out[i] = p
		}
		l.Payments = out
		return l
	})
}

// DeletePayment filters a payment session out by id.
func (s *Store) DeletePayment(leadID, paymentID string) (*models.Lead, error) {
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		out := make([]models.PaymentSession, 0, len(l.Payments))
		for _, p := range l.Payments {
			if p.ID != paymentID {
				out = append(out, p)
			}
		}
		l.Payments = out
		return l
	})
}

// CreateCoApplicant appends a fresh co-applicant to the lead and returns
// it so the caller can navigate straight into its sub-wizard.
func (s *Store) CreateCoApplicant(leadID, relationship string) (*models.CoApplicant, error) {
	co := models.CoApplicant{
		ID:           uuid.NewString(),
		Relationship: relationship,
		CurrentStep:  0,
		IsComplete:   false,
	}
	_, err := s.mutate(leadID, func(l models.Lead) models.Lead {
		l.FormData.CoApplicants = append(append([]models.CoApplicant{}, l.FormData.CoApplicants...), co)
		return l
	})
	if err != nil {
		return nil, err
	}
	out := co
	return &out, nil
}

// UpdateCoApplicant shallow-merges the patch into the matching
// co-applicant. Data is replaced wholesale when set; callers wanting
// additive semantics spread the prior data themselves.
func (s *Store) UpdateCoApplicant(leadID, coApplicantID string, patch models.CoApplicantUpdate) (*models.Lead, error) {
	s.mu.RLock()
	lead, err := s.findLocked(leadID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if !hasCoApplicant(lead, coApplicantID) {
		return nil, ErrCoApplicantNotFound
	}
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		out := make([]models.CoApplicant, len(l.FormData.CoApplicants))
		for i, co := range l.FormData.CoApplicants {
			if co.ID == coApplicantID {
				if patch.Relationship != nil {
					co.Relationship = *patch.Relationship
				}
				if patch.CurrentStep != nil {
					co.CurrentStep = *patch.CurrentStep
				}
				if patch.IsComplete != nil {
					co.IsComplete = *patch.IsComplete
				}
				if patch.Data != nil {
					co.Data = *patch.Data
				}
			}
			out[i] = co
		}
		l.FormData.CoApplicants = out
		return l
	})
}

// DeleteCoApplicant filters the co-applicant out.
func (s *Store) DeleteCoApplicant(leadID, coApplicantID string) (*models.Lead, error) {
	return s.mutate(leadID, func(l models.Lead) models.Lead {
		out := make([]models.CoApplicant, 0, len(l.FormData.CoApplicants))
		for _, co := range l.FormData.CoApplicants {
			if co.ID != coApplicantID {
				out = append(out, co)
			}
		}
		l.FormData.CoApplicants = out
		return l
	})
}

// StartCoApplicantFlow creates a co-applicant and returns just its id, for
// pages that redirect immediately with a query parameter.
func (s *Store) StartCoApplicantFlow(leadID, defaultRelationship string) (string, error) {
	co, err := s.CreateCoApplicant(leadID, defaultRelationship)
	if err != nil {
		return "", err
	}
	return co.ID, nil
}

// RestoreLeads seeds the list from persisted snapshots at boot. Existing
// entries win over restored ones, so calling this after traffic has
// started is harmless.
func (s *Store) RestoreLeads(leads []models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	known := make(map[string]bool, len(s.leads))
	for i := range s.leads {
		known[s.leads[i].ID] = true
	}
	for _, l := range leads {
		if !known[l.ID] {
			s.leads = append(s.leads, l)
		}
	}
}

// Leads returns a copy of the reconciled leads list.
func (s *Store) Leads() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// CurrentLead returns a copy of the lead open in the wizard, or nil.
func (s *Store) CurrentLead() *models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// SetCurrentLead points the wizard at an already-known lead.
func (s *Store) SetCurrentLead(leadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if leadMatches(&s.leads[i], leadID) {
			cp := s.leads[i]
			s.current = &cp
			return nil
		}
	}
	return ErrLeadNotFound
}

// Stats returns the backend-sourced dashboard counts.
func (s *Store) Stats() models.SummaryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// LastError returns the message recorded by the most recent failed
// ambient refresh, empty after a success.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loading reports whether an ambient refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// mutate applies fn to the matching list entry and to the current lead
// within one critical section, so observers never see the two views
// disagree mid-update.
func (s *Store) mutate(leadID string, fn func(models.Lead) models.Lead) (*models.Lead, error) {
	s.mu.Lock()
	var updated *models.Lead
	for i := range s.leads {
		if leadMatches(&s.leads[i], leadID) {
			s.leads[i] = fn(s.leads[i])
			cp := s.leads[i]
			updated = &cp
			break
		}
	}
	if s.current != nil && leadMatches(s.current, leadID) {
		if updated != nil {
			cp := *updated
			s.current = &cp
		} else {
			next := fn(*s.current)
			s.current = &next
			cp := next
			updated = &cp
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, ErrLeadNotFound
	}
	s.persist(updated)
	cp := *updated
	return &cp, nil
}

func (s *Store) findLocked(leadID string) (models.Lead, error) {
	for i := range s.leads {
		if leadMatches(&s.leads[i], leadID) {
			return s.leads[i], nil
		}
	}
	if s.current != nil && leadMatches(s.current, leadID) {
		return *s.current, nil
	}
	return models.Lead{}, ErrLeadNotFound
}

// spliceLocked replaces the entry matching by AppID or ID, else appends,
// and keeps the current view in step.
func (s *Store) spliceLocked(lead models.Lead) {
	replaced := false
	for i := range s.leads {
		if (lead.AppID != "" && s.leads[i].AppID == lead.AppID) || s.leads[i].ID == lead.ID {
			s.leads[i] = lead
			replaced = true
			break
		}
	}
	if !replaced {
		s.leads = append(s.leads, lead)
	}
	if s.current != nil && ((lead.AppID != "" && s.current.AppID == lead.AppID) || s.current.ID == lead.ID) {
		cp := lead
		s.current = &cp
	}
}

func (s *Store) syncCurrentLocked() {
	if s.current == nil {
		return
	}
	for i := range s.leads {
		if s.leads[i].ID == s.current.ID || (s.current.AppID != "" && s.leads[i].AppID == s.current.AppID) {
			cp := s.leads[i]
			s.current = &cp
			return
		}
	}
}

func (s *Store) persist(lead *models.Lead) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.SaveSnapshot(lead); err != nil {
		log.Printf("failed to persist draft snapshot for %s: %v", lead.ID, err)
	}
}

func leadMatches(l *models.Lead, id string) bool {
	if id == "" {
		return false
	}
	return l.ID == id || l.AppID == id
}

func hasPayment(l models.Lead, paymentID string) bool {
	for _, p := range l.Payments {
		if p.ID == paymentID {
			return true
		}
	}
	return false
}

func hasCoApplicant(l models.Lead, coID string) bool {
	for _, co := range l.FormData.CoApplicants {
		if co.ID == coID {
			return true
		}
	}
	return false
}

func applyPaymentPatch(p models.PaymentSession, patch models.PaymentPatch) models.PaymentSession {
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Remarks != nil {
		p.Remarks = *patch.Remarks
	}
	if patch.PayLink != nil {
		p.PayLink = *patch.PayLink
	}
	if patch.GatewayRef != nil {
		p.GatewayRef = *patch.GatewayRef
	}
	if patch.SentAt != nil {
		p.Timeline.SentAt = patch.SentAt
	}
	if patch.ReceivedAt != nil {
		p.Timeline.ReceivedAt = patch.ReceivedAt
	}
	return p
}

// leadAsUpdate lifts a full lead into a partial update for the merge
// engine, setting only the fields the lead actually carries.
func leadAsUpdate(l models.Lead) models.LeadUpdate {
	u := models.LeadUpdate{}
	if l.AppID != "" {
		u.AppID = &l.AppID
	}
	if l.Status != "" {
		u.Status = &l.Status
	}
	if l.CustomerFirstName != "" {
		u.CustomerFirstName = &l.CustomerFirstName
	}
	if l.CustomerLastName != "" {
		u.CustomerLastName = &l.CustomerLastName
	}
	if l.CustomerName != "" {
		u.CustomerName = &l.CustomerName
	}
	if l.CustomerMobile != "" {
		u.CustomerMobile = &l.CustomerMobile
	}
	if l.PANNumber != "" {
		u.PANNumber = &l.PANNumber
	}
	if l.DOB != "" {
		u.DOB = &l.DOB
	}
	if l.Age != nil {
		u.Age = l.Age
	}
	if l.Gender != "" {
		u.Gender = &l.Gender
	}
	if l.LoanAmount != 0 {
		u.LoanAmount = &l.LoanAmount
	}
	if l.LoanPurpose != "" {
		u.LoanPurpose = &l.LoanPurpose
	}
	if l.CurrentStep != 0 {
		u.CurrentStep = &l.CurrentStep
	}
	if l.Step2Completed {
		u.Step2Completed = &l.Step2Completed
	}
	if l.Step3Completed {
		u.Step3Completed = &l.Step3Completed
	}
	if l.HasDetails {
		u.HasDetails = &l.HasDetails
	}
	fd := models.FormDataUpdate{
		Step1:        l.FormData.Step1,
		Step2:        l.FormData.Step2,
		Step3:        l.FormData.Step3,
		Step4:        l.FormData.Step4,
		Step5:        l.FormData.Step5,
		Step6:        l.FormData.Step6,
		Step7:        l.FormData.Step7,
		Step8:        l.FormData.Step8,
		Step9:        l.FormData.Step9,
		Step10:       l.FormData.Step10,
		CoApplicants: l.FormData.CoApplicants,
	}
	u.FormData = &fd
	return u
}

func emptyDetail(d *origination.DetailResponse) bool {
	if d == nil {
		return true
	}
	return d.WorkflowState == nil &&
		d.NewLeadData == nil &&
		d.PersonalInfo == nil &&
		d.AddressInfo == nil &&
		d.EmploymentInfo == nil &&
		d.CollateralInfo == nil &&
		d.LoanInfo == nil &&
		d.DocumentInfo == nil &&
		len(d.CoApplicants) == 0
}

func parseSummaryTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
