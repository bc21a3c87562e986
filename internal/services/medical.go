// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

// Collections owned by the medical service.
const (
	RecordsCollection      = "medical_records"
	VaccinationsCollection = "vaccinations"
)

// MedicalService manages crew medical records and vaccinations.
type MedicalService struct {
	db       *store.Store
	recorder *audit.Recorder
	now      func() time.Time
}

// NewMedicalService creates a medical service.
func NewMedicalService(db *store.Store, recorder *audit.Recorder) *MedicalService {
	return &MedicalService{db: db, recorder: recorder, now: time.Now}
}

// --- Medical records ---

// CreateRecordInput carries the fields accepted on record creation.
type CreateRecordInput struct {
	CrewID     string
	RecordType string
	Title      string
	Diagnosis  string
	Treatment  string
	Notes      string
	Priority   string
	Date       string
}

// CreateRecord adds a medical record to a crew member's file.
func (s *MedicalService) CreateRecord(ctx context.Context, in CreateRecordInput, actor Actor) (*models.MedicalRecord, error) {
	rec := &models.MedicalRecord{
		ID:         uuid.New().String(),
		CrewID:     in.CrewID,
		RecordType: in.RecordType,
		Title:      in.Title,
		Diagnosis:  in.Diagnosis,
		Treatment:  in.Treatment,
		Notes:      in.Notes,
		Priority:   models.NormalizePriority(in.Priority),
		Date:       in.Date,
	}
	rec.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, RecordsCollection, rec.ID, rec); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RecordsCollection, "create", rec.ID, actor.audit(),
		"added medical record for crew "+rec.CrewID)
	return rec, nil
}

// GetRecord loads a medical record by id.
func (s *MedicalService) GetRecord(ctx context.Context, id string) (*models.MedicalRecord, error) {
	var rec models.MedicalRecord
	if err := s.db.Get(ctx, RecordsCollection, id, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordFilter selects medical records for ListRecords.
type RecordFilter struct {
	CrewID     string
	RecordType string
	Priority   string
	DateFrom   string
	DateTo     string
	Query      string
	Page       paging.Params
}

// RecordListResult is one page of records with type/priority histograms.
type RecordListResult struct {
	Items      []models.MedicalRecord `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Pages      int                    `json:"pages"`
	ByType     map[string]int         `json:"byType"`
	ByPriority map[string]int         `json:"byPriority"`
}

// ListRecords returns one page of records matching the filter, newest event
// date first.
func (s *MedicalService) ListRecords(ctx context.Context, f RecordFilter) (*RecordListResult, error) {
	all, err := store.All[models.MedicalRecord](ctx, s.db, RecordsCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.MedicalRecord
	for i := range all {
		r := &all[i]
		if f.CrewID != "" && r.CrewID != f.CrewID {
			continue
		}
		if f.RecordType != "" && r.RecordType != f.RecordType {
			continue
		}
		if f.Priority != "" && string(r.Priority) != f.Priority {
			continue
		}
		if !inDateRange(r.Date, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchText(f.Query, r.Title, r.Diagnosis, r.Treatment, r.Notes) {
			continue
		}
		matched = append(matched, all[i])
	}

	byType := make(map[string]int)
	byPriority := make(map[string]int)
	for i := range matched {
		byType[matched[i].RecordType]++
		byPriority[string(matched[i].Priority)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })

	return &RecordListResult{
		Items:      paging.Slice(matched, f.Page),
		Total:      len(matched),
		Page:       f.Page.Page,
		Pages:      paging.Pages(len(matched), f.Page.Limit),
		ByType:     byType,
		ByPriority: byPriority,
	}, nil
}

// UpdateRecordInput carries the fields accepted on a partial record update.
type UpdateRecordInput struct {
	RecordType *string
	Title      *string
	Diagnosis  *string
	Treatment  *string
	Notes      *string
	Priority   *string
	Date       *string
}

// UpdateRecord merges the supplied fields into the stored record.
func (s *MedicalService) UpdateRecord(ctx context.Context, id string, in UpdateRecordInput, actor Actor) (*models.MedicalRecord, error) {
	rec, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.RecordType != nil {
		rec.RecordType = *in.RecordType
	}
	if in.Title != nil {
		rec.Title = *in.Title
	}
	if in.Diagnosis != nil {
		rec.Diagnosis = *in.Diagnosis
	}
	if in.Treatment != nil {
		rec.Treatment = *in.Treatment
	}
	if in.Notes != nil {
		rec.Notes = *in.Notes
	}
	if in.Priority != nil {
		rec.Priority = models.NormalizePriority(*in.Priority)
	}
	if in.Date != nil {
		rec.Date = *in.Date
	}
	rec.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, RecordsCollection, rec.ID, rec); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RecordsCollection, "update", rec.ID, actor.audit(), "updated medical record")
	return rec, nil
}

// AttachToRecord appends an uploaded file reference to a record.
func (s *MedicalService) AttachToRecord(ctx context.Context, id string, att models.Attachment, actor Actor) (*models.MedicalRecord, error) {
	rec, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.Attachments = append(rec.Attachments, att)
	rec.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, RecordsCollection, rec.ID, rec); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RecordsCollection, "attach", rec.ID, actor.audit(),
		"attached "+att.Filename)
	return rec, nil
}

// DeleteRecord removes a medical record permanently.
func (s *MedicalService) DeleteRecord(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, RecordsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, RecordsCollection, "delete", id, actor.audit(), "deleted medical record")
	return nil
}

// --- Vaccinations ---

// CreateVaccinationInput carries the fields accepted on vaccination creation.
type CreateVaccinationInput struct {
	CrewID        string
	Vaccine       string
	DoseNumber    int
	DateGiven     string
	NextDueDate   string
	Administrator string
	BatchNumber   string
	Notes         string
}

// CreateVaccination records an administered vaccination dose.
func (s *MedicalService) CreateVaccination(ctx context.Context, in CreateVaccinationInput, actor Actor) (*models.Vaccination, error) {
	vac := &models.Vaccination{
		ID:            uuid.New().String(),
		CrewID:        in.CrewID,
		Vaccine:       in.Vaccine,
		DoseNumber:    in.DoseNumber,
		DateGiven:     in.DateGiven,
		NextDueDate:   in.NextDueDate,
		Administrator: in.Administrator,
		BatchNumber:   in.BatchNumber,
		Notes:         in.Notes,
	}
	vac.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, VaccinationsCollection, vac.ID, vac); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, VaccinationsCollection, "create", vac.ID, actor.audit(),
		"recorded "+vac.Vaccine+" dose for crew "+vac.CrewID)
	return vac, nil
}

// GetVaccination loads a vaccination by id.
func (s *MedicalService) GetVaccination(ctx context.Context, id string) (*models.Vaccination, error) {
	var vac models.Vaccination
	if err := s.db.Get(ctx, VaccinationsCollection, id, &vac); err != nil {
		return nil, err
	}
	return &vac, nil
}

// VaccinationView is a vaccination with its derived status attached.
type VaccinationView struct {
	models.Vaccination
	Status models.VaccinationStatus `json:"status"`
}

// VaccinationFilter selects vaccinations for ListVaccinations. Status filters
// on the derived status.
type VaccinationFilter struct {
	CrewID string
	Status string
	Query  string
	Page   paging.Params
}

// VaccinationListResult is one page of vaccinations with a derived-status
// histogram.
type VaccinationListResult struct {
	Items    []VaccinationView `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	ByStatus map[string]int    `json:"byStatus"`
}

// ListVaccinations returns one page of vaccinations matching the filter,
// most recent dose first. The status histogram covers the full match set.
func (s *MedicalService) ListVaccinations(ctx context.Context, f VaccinationFilter) (*VaccinationListResult, error) {
	all, err := store.All[models.Vaccination](ctx, s.db, VaccinationsCollection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var matched []VaccinationView
	for i := range all {
		v := &all[i]
		if f.CrewID != "" && v.CrewID != f.CrewID {
			continue
		}
		status := v.DerivedStatus(now)
		if f.Status != "" && string(status) != f.Status {
			continue
		}
		if !matchText(f.Query, v.Vaccine, v.BatchNumber, v.Notes) {
			continue
		}
		matched = append(matched, VaccinationView{Vaccination: all[i], Status: status})
	}

	byStatus := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].DateGiven > matched[j].DateGiven })

	return &VaccinationListResult{
		Items:    paging.Slice(matched, f.Page),
		Total:    len(matched),
		Page:     f.Page.Page,
		Pages:    paging.Pages(len(matched), f.Page.Limit),
		ByStatus: byStatus,
	}, nil
}

// UpdateVaccinationInput carries the fields accepted on a partial update.
type UpdateVaccinationInput struct {
	Vaccine       *string
	DoseNumber    *int
	DateGiven     *string
	NextDueDate   *string
	Administrator *string
	BatchNumber   *string
	Notes         *string
}

// UpdateVaccination merges the supplied fields into the stored vaccination.
func (s *MedicalService) UpdateVaccination(ctx context.Context, id string, in UpdateVaccinationInput, actor Actor) (*models.Vaccination, error) {
	vac, err := s.GetVaccination(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Vaccine != nil {
		vac.Vaccine = *in.Vaccine
	}
	if in.DoseNumber != nil {
		vac.DoseNumber = *in.DoseNumber
	}
	if in.DateGiven != nil {
		vac.DateGiven = *in.DateGiven
	}
	if in.NextDueDate != nil {
		vac.NextDueDate = *in.NextDueDate
	}
	if in.Administrator != nil {
		vac.Administrator = *in.Administrator
	}
	if in.BatchNumber != nil {
		vac.BatchNumber = *in.BatchNumber
	}
	if in.Notes != nil {
		vac.Notes = *in.Notes
	}
	vac.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, VaccinationsCollection, vac.ID, vac); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, VaccinationsCollection, "update", vac.ID, actor.audit(), "updated vaccination")
	return vac, nil
}

// DeleteVaccination removes a vaccination entry permanently.
func (s *MedicalService) DeleteVaccination(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, VaccinationsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, VaccinationsCollection, "delete", id, actor.audit(), "deleted vaccination")
	return nil
}
