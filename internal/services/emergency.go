// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

// Collections owned by the emergency service.
const (
	IncidentsCollection = "emergency_incidents"
	ReportsCollection   = "emergency_reports"
)

// EmergencyService manages emergency incidents and post-incident reports.
type EmergencyService struct {
	db       *store.Store
	recorder *audit.Recorder
	now      func() time.Time
}

// NewEmergencyService creates an emergency service.
func NewEmergencyService(db *store.Store, recorder *audit.Recorder) *EmergencyService {
	return &EmergencyService{db: db, recorder: recorder, now: time.Now}
}

// --- Incidents ---

// CreateIncidentInput carries the fields accepted on incident creation.
type CreateIncidentInput struct {
	Code        string
	Title       string
	Description string
	Location    string
	Severity    string
	CrewIDs     []string
}

// CreateIncident opens a new incident. Code is unique across incidents
// (uppercased); a duplicate is a conflict.
func (s *EmergencyService) CreateIncident(ctx context.Context, in CreateIncidentInput, actor Actor) (*models.EmergencyIncident, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))

	existing, err := store.All[models.EmergencyIncident](ctx, s.db, IncidentsCollection)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Code == code {
			return nil, fmt.Errorf("incident code %q: %w", code, ErrConflict)
		}
	}

	inc := &models.EmergencyIncident{
		ID:          uuid.New().String(),
		Code:        code,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Severity:    models.NormalizeSeverity(in.Severity),
		Status:      models.IncidentOpen,
		CrewIDs:     in.CrewIDs,
	}
	inc.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, IncidentsCollection, inc.ID, inc); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, IncidentsCollection, "create", inc.ID, actor.audit(),
		"opened incident "+code)
	return inc, nil
}

// GetIncident loads an incident by id.
func (s *EmergencyService) GetIncident(ctx context.Context, id string) (*models.EmergencyIncident, error) {
	var inc models.EmergencyIncident
	if err := s.db.Get(ctx, IncidentsCollection, id, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// IncidentFilter selects incidents for ListIncidents.
type IncidentFilter struct {
	Status   string
	Severity string
	Query    string
	Page     paging.Params
}

// IncidentListResult is one page of incidents with status/severity histograms.
type IncidentListResult struct {
	Items      []models.EmergencyIncident `json:"items"`
	Total      int                        `json:"total"`
	Page       int                        `json:"page"`
	Pages      int                        `json:"pages"`
	ByStatus   map[string]int             `json:"byStatus"`
	BySeverity map[string]int             `json:"bySeverity"`
}

// ListIncidents returns one page of incidents matching the filter, newest
// first.
func (s *EmergencyService) ListIncidents(ctx context.Context, f IncidentFilter) (*IncidentListResult, error) {
	all, err := store.All[models.EmergencyIncident](ctx, s.db, IncidentsCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.EmergencyIncident
	for i := range all {
		inc := &all[i]
		if f.Status != "" && string(inc.Status) != f.Status {
			continue
		}
		if f.Severity != "" && string(inc.Severity) != f.Severity {
			continue
		}
		if !matchText(f.Query, inc.Code, inc.Title, inc.Description, inc.Location) {
			continue
		}
		matched = append(matched, all[i])
	}

	byStatus := make(map[string]int)
	bySeverity := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
		bySeverity[string(matched[i].Severity)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return &IncidentListResult{
		Items:      paging.Slice(matched, f.Page),
		Total:      len(matched),
		Page:       f.Page.Page,
		Pages:      paging.Pages(len(matched), f.Page.Limit),
		ByStatus:   byStatus,
		BySeverity: bySeverity,
	}, nil
}

// UpdateIncidentInput carries the fields accepted on a partial incident
// update. Code is immutable after creation.
type UpdateIncidentInput struct {
	Title       *string
	Description *string
	Location    *string
	Severity    *string
	Status      *string
	CrewIDs     *[]string
}

// UpdateIncident merges the supplied fields into the stored incident.
func (s *EmergencyService) UpdateIncident(ctx context.Context, id string, in UpdateIncidentInput, actor Actor) (*models.EmergencyIncident, error) {
	inc, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		inc.Title = *in.Title
	}
	if in.Description != nil {
		inc.Description = *in.Description
	}
	if in.Location != nil {
		inc.Location = *in.Location
	}
	if in.Severity != nil {
		inc.Severity = models.NormalizeSeverity(*in.Severity)
	}
	if in.Status != nil {
		inc.Status = models.NormalizeIncidentStatus(*in.Status)
	}
	if in.CrewIDs != nil {
		inc.CrewIDs = *in.CrewIDs
	}
	inc.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, IncidentsCollection, inc.ID, inc); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, IncidentsCollection, "update", inc.ID, actor.audit(), "updated incident")
	return inc, nil
}

// ResolveIncident stamps the resolution sub-record and moves the incident to
// resolved.
func (s *EmergencyService) ResolveIncident(ctx context.Context, id, notes string, actor Actor) (*models.EmergencyIncident, error) {
	inc, err := s.GetIncident(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inc.Status = models.IncidentResolved
	inc.ResolvedBy = actor.ID
	inc.ResolvedByName = actor.Name
	inc.ResolvedAt = &now
	inc.ResolutionNotes = notes
	inc.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, IncidentsCollection, inc.ID, inc); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, IncidentsCollection, "resolve", inc.ID, actor.audit(),
		"resolved incident "+inc.Code)
	return inc, nil
}

// DeleteIncident removes an incident permanently.
func (s *EmergencyService) DeleteIncident(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, IncidentsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, IncidentsCollection, "delete", id, actor.audit(), "deleted incident")
	return nil
}

// --- Reports ---

// CreateReportInput carries the fields accepted on report creation.
type CreateReportInput struct {
	IncidentID string
	Title      string
	Summary    string
	Findings   string
	Actions    string
	Severity   string
	ReportDate string
}

// CreateReport files a post-incident report. A referenced incident must exist.
func (s *EmergencyService) CreateReport(ctx context.Context, in CreateReportInput, actor Actor) (*models.EmergencyReport, error) {
	if in.IncidentID != "" {
		if _, err := s.GetIncident(ctx, in.IncidentID); err != nil {
			return nil, err
		}
	}

	rep := &models.EmergencyReport{
		ID:         uuid.New().String(),
		IncidentID: in.IncidentID,
		Title:      in.Title,
		Summary:    in.Summary,
		Findings:   in.Findings,
		Actions:    in.Actions,
		Severity:   models.NormalizeSeverity(in.Severity),
		ReportDate: in.ReportDate,
	}
	rep.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, ReportsCollection, rep.ID, rep); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, ReportsCollection, "create", rep.ID, actor.audit(), "filed report "+rep.Title)
	return rep, nil
}

// GetReport loads a report by id.
func (s *EmergencyService) GetReport(ctx context.Context, id string) (*models.EmergencyReport, error) {
	var rep models.EmergencyReport
	if err := s.db.Get(ctx, ReportsCollection, id, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// ReportFilter selects reports for ListReports.
type ReportFilter struct {
	IncidentID string
	Severity   string
	DateFrom   string
	DateTo     string
	Query      string
	Page       paging.Params
}

// ReportListResult is one page of reports with a severity histogram.
type ReportListResult struct {
	Items      []models.EmergencyReport `json:"items"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	Pages      int                      `json:"pages"`
	BySeverity map[string]int           `json:"bySeverity"`
}

// ListReports returns one page of reports matching the filter, newest report
// date first.
func (s *EmergencyService) ListReports(ctx context.Context, f ReportFilter) (*ReportListResult, error) {
	all, err := store.All[models.EmergencyReport](ctx, s.db, ReportsCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.EmergencyReport
	for i := range all {
		r := &all[i]
		if f.IncidentID != "" && r.IncidentID != f.IncidentID {
			continue
		}
		if f.Severity != "" && string(r.Severity) != f.Severity {
			continue
		}
		if !inDateRange(r.ReportDate, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchText(f.Query, r.Title, r.Summary, r.Findings) {
			continue
		}
		matched = append(matched, all[i])
	}

	bySeverity := make(map[string]int)
	for i := range matched {
		bySeverity[string(matched[i].Severity)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ReportDate > matched[j].ReportDate })

	return &ReportListResult{
		Items:      paging.Slice(matched, f.Page),
		Total:      len(matched),
		Page:       f.Page.Page,
		Pages:      paging.Pages(len(matched), f.Page.Limit),
		BySeverity: bySeverity,
	}, nil
}

// UpdateReportInput carries the fields accepted on a partial report update.
type UpdateReportInput struct {
	Title      *string
	Summary    *string
	Findings   *string
	Actions    *string
	Severity   *string
	ReportDate *string
}

// UpdateReport merges the supplied fields into the stored report.
func (s *EmergencyService) UpdateReport(ctx context.Context, id string, in UpdateReportInput, actor Actor) (*models.EmergencyReport, error) {
	rep, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		rep.Title = *in.Title
	}
	if in.Summary != nil {
		rep.Summary = *in.Summary
	}
	if in.Findings != nil {
		rep.Findings = *in.Findings
	}
	if in.Actions != nil {
		rep.Actions = *in.Actions
	}
	if in.Severity != nil {
		rep.Severity = models.NormalizeSeverity(*in.Severity)
	}
	if in.ReportDate != nil {
		rep.ReportDate = *in.ReportDate
	}
	rep.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, ReportsCollection, rep.ID, rep); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, ReportsCollection, "update", rep.ID, actor.audit(), "updated report")
	return rep, nil
}

// DeleteReport removes a report permanently.
func (s *EmergencyService) DeleteReport(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, ReportsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, ReportsCollection, "delete", id, actor.audit(), "deleted report")
	return nil
}
