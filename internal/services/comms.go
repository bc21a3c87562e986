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

// Collections owned by the comms service.
const (
	AnnouncementsCollection = "announcements"
	MessagesCollection      = "messages"
	EducationCollection     = "education_sessions"
)

// CommsService manages announcements, direct messages, and health-education
// sessions.
type CommsService struct {
	db       *store.Store
	recorder *audit.Recorder
	now      func() time.Time
}

// NewCommsService creates a comms service.
func NewCommsService(db *store.Store, recorder *audit.Recorder) *CommsService {
	return &CommsService{db: db, recorder: recorder, now: time.Now}
}

// --- Announcements ---

// CreateAnnouncementInput carries the fields accepted on announcement
// creation.
type CreateAnnouncementInput struct {
	Title    string
	Body     string
	Priority string
	Roles    []string
}

// CreateAnnouncement drafts a new announcement. Publishing is a separate
// action.
func (s *CommsService) CreateAnnouncement(ctx context.Context, in CreateAnnouncementInput, actor Actor) (*models.Announcement, error) {
	ann := &models.Announcement{
		ID:       uuid.New().String(),
		Title:    in.Title,
		Body:     in.Body,
		Priority: models.NormalizePriority(in.Priority),
		Status:   models.AnnouncementDraft,
		Roles:    in.Roles,
	}
	ann.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, AnnouncementsCollection, ann.ID, ann); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AnnouncementsCollection, "create", ann.ID, actor.audit(),
		"drafted announcement "+ann.Title)
	return ann, nil
}

// GetAnnouncement loads an announcement by id.
func (s *CommsService) GetAnnouncement(ctx context.Context, id string) (*models.Announcement, error) {
	var ann models.Announcement
	if err := s.db.Get(ctx, AnnouncementsCollection, id, &ann); err != nil {
		return nil, err
	}
	return &ann, nil
}

// AnnouncementFilter selects announcements for ListAnnouncements. Role limits
// the result to announcements visible to that role (empty role list means
// visible to everyone).
type AnnouncementFilter struct {
	Status string
	Role   string
	Query  string
	Page   paging.Params
}

// AnnouncementListResult is one page of announcements with a status
// histogram.
type AnnouncementListResult struct {
	Items    []models.Announcement `json:"items"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	Pages    int                   `json:"pages"`
	ByStatus map[string]int        `json:"byStatus"`
}

// ListAnnouncements returns one page of announcements, newest first.
func (s *CommsService) ListAnnouncements(ctx context.Context, f AnnouncementFilter) (*AnnouncementListResult, error) {
	all, err := store.All[models.Announcement](ctx, s.db, AnnouncementsCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.Announcement
	for i := range all {
		a := &all[i]
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.Role != "" && !announcementVisibleTo(a, f.Role) {
			continue
		}
		if !matchText(f.Query, a.Title, a.Body) {
			continue
		}
		matched = append(matched, all[i])
	}

	byStatus := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return &AnnouncementListResult{
		Items:    paging.Slice(matched, f.Page),
		Total:    len(matched),
		Page:     f.Page.Page,
		Pages:    paging.Pages(len(matched), f.Page.Limit),
		ByStatus: byStatus,
	}, nil
}

// announcementVisibleTo reports whether the announcement targets the role.
// An empty role list targets everyone; admin sees everything.
func announcementVisibleTo(a *models.Announcement, role string) bool {
	if len(a.Roles) == 0 || role == string(models.RoleAdmin) {
		return true
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UpdateAnnouncementInput carries the fields accepted on a partial update.
type UpdateAnnouncementInput struct {
	Title    *string
	Body     *string
	Priority *string
	Status   *string
	Roles    *[]string
}

// UpdateAnnouncement merges the supplied fields into the stored announcement.
func (s *CommsService) UpdateAnnouncement(ctx context.Context, id string, in UpdateAnnouncementInput, actor Actor) (*models.Announcement, error) {
	ann, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		ann.Title = *in.Title
	}
	if in.Body != nil {
		ann.Body = *in.Body
	}
	if in.Priority != nil {
		ann.Priority = models.NormalizePriority(*in.Priority)
	}
	if in.Status != nil {
		ann.Status = models.NormalizeAnnouncementStatus(*in.Status)
	}
	if in.Roles != nil {
		ann.Roles = *in.Roles
	}
	ann.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, AnnouncementsCollection, ann.ID, ann); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AnnouncementsCollection, "update", ann.ID, actor.audit(), "updated announcement")
	return ann, nil
}

// PublishAnnouncement stamps publishedAt and moves the announcement to
// published.
func (s *CommsService) PublishAnnouncement(ctx context.Context, id string, actor Actor) (*models.Announcement, error) {
	ann, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ann.Status = models.AnnouncementPublished
	ann.PublishedAt = &now
	ann.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, AnnouncementsCollection, ann.ID, ann); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AnnouncementsCollection, "publish", ann.ID, actor.audit(),
		"published announcement "+ann.Title)
	return ann, nil
}

// AttachToAnnouncement appends an uploaded file reference.
func (s *CommsService) AttachToAnnouncement(ctx context.Context, id string, att models.Attachment, actor Actor) (*models.Announcement, error) {
	ann, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	ann.Attachments = append(ann.Attachments, att)
	ann.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, AnnouncementsCollection, ann.ID, ann); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AnnouncementsCollection, "attach", ann.ID, actor.audit(),
		"attached "+att.Filename)
	return ann, nil
}

// DeleteAnnouncement removes an announcement permanently.
func (s *CommsService) DeleteAnnouncement(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, AnnouncementsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, AnnouncementsCollection, "delete", id, actor.audit(), "deleted announcement")
	return nil
}

// --- Messages ---

// SendMessageInput carries the fields accepted when sending a direct message.
type SendMessageInput struct {
	RecipientID string
	Subject     string
	Body        string
}

// SendMessage sends a direct message from the actor to the recipient.
func (s *CommsService) SendMessage(ctx context.Context, in SendMessageInput, actor Actor) (*models.Message, error) {
	msg := &models.Message{
		ID:          uuid.New().String(),
		SenderID:    actor.ID,
		SenderName:  actor.Name,
		RecipientID: in.RecipientID,
		Subject:     in.Subject,
		Body:        in.Body,
	}
	msg.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, MessagesCollection, msg.ID, msg); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, MessagesCollection, "create", msg.ID, actor.audit(),
		"sent message to "+in.RecipientID)
	return msg, nil
}

// GetMessage loads a message by id.
func (s *CommsService) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	if err := s.db.Get(ctx, MessagesCollection, id, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MessageFilter selects messages for ListMessages. UserID limits the result
// to messages the user sent or received.
type MessageFilter struct {
	UserID     string
	UnreadOnly bool
	Page       paging.Params
}

// MessageListResult is one page of messages with the unread count.
type MessageListResult struct {
	Items  []models.Message `json:"items"`
	Total  int              `json:"total"`
	Page   int              `json:"page"`
	Pages  int              `json:"pages"`
	Unread int              `json:"unread"`
}

// ListMessages returns one page of the user's messages, newest first. Unread
// counts only messages the user received.
func (s *CommsService) ListMessages(ctx context.Context, f MessageFilter) (*MessageListResult, error) {
	all, err := store.All[models.Message](ctx, s.db, MessagesCollection)
	if err != nil {
		return nil, err
	}

	unread := 0
	var matched []models.Message
	for i := range all {
		m := &all[i]
		if f.UserID != "" && m.SenderID != f.UserID && m.RecipientID != f.UserID {
			continue
		}
		if m.RecipientID == f.UserID && !m.Read {
			unread++
		}
		if f.UnreadOnly && (m.Read || m.RecipientID != f.UserID) {
			continue
		}
		matched = append(matched, all[i])
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return &MessageListResult{
		Items:  paging.Slice(matched, f.Page),
		Total:  len(matched),
		Page:   f.Page.Page,
		Pages:  paging.Pages(len(matched), f.Page.Limit),
		Unread: unread,
	}, nil
}

// MarkMessageRead stamps the read flag and timestamp. Re-reading keeps the
// original readAt.
func (s *CommsService) MarkMessageRead(ctx context.Context, id string, actor Actor) (*models.Message, error) {
	msg, err := s.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	if !msg.Read {
		now := s.now()
		msg.Read = true
		msg.ReadAt = &now
		msg.StampUpdate(actor.ID, actor.Name, now)

		if err := s.db.Put(ctx, MessagesCollection, msg.ID, msg); err != nil {
			return nil, err
		}
		s.recorder.Success(ctx, MessagesCollection, "read", msg.ID, actor.audit(), "marked message read")
	}
	return msg, nil
}

// DeleteMessage removes a message permanently.
func (s *CommsService) DeleteMessage(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, MessagesCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, MessagesCollection, "delete", id, actor.audit(), "deleted message")
	return nil
}

// --- Health education ---

// CreateSessionInput carries the fields accepted on session creation.
type CreateSessionInput struct {
	Title       string
	Topic       string
	Description string
	Presenter   string
	SessionDate string
	SessionTime string
	Location    string
}

// CreateSession schedules a health-education session.
func (s *CommsService) CreateSession(ctx context.Context, in CreateSessionInput, actor Actor) (*models.HealthEducationSession, error) {
	sess := &models.HealthEducationSession{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Topic:       in.Topic,
		Description: in.Description,
		Presenter:   in.Presenter,
		SessionDate: in.SessionDate,
		SessionTime: in.SessionTime,
		Location:    in.Location,
	}
	sess.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, EducationCollection, sess.ID, sess); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, EducationCollection, "create", sess.ID, actor.audit(),
		"scheduled session "+sess.Title)
	return sess, nil
}

// GetSession loads a session by id.
func (s *CommsService) GetSession(ctx context.Context, id string) (*models.HealthEducationSession, error) {
	var sess models.HealthEducationSession
	if err := s.db.Get(ctx, EducationCollection, id, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SessionFilter selects sessions for ListSessions.
type SessionFilter struct {
	DateFrom string
	DateTo   string
	Query    string
	Page     paging.Params
}

// SessionListResult is one page of sessions.
type SessionListResult struct {
	Items []models.HealthEducationSession `json:"items"`
	Total int                             `json:"total"`
	Page  int                             `json:"page"`
	Pages int                             `json:"pages"`
}

// ListSessions returns one page of sessions, earliest session date first.
func (s *CommsService) ListSessions(ctx context.Context, f SessionFilter) (*SessionListResult, error) {
	all, err := store.All[models.HealthEducationSession](ctx, s.db, EducationCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.HealthEducationSession
	for i := range all {
		sess := &all[i]
		if !inDateRange(sess.SessionDate, f.DateFrom, f.DateTo) {
			continue
		}
		if !matchText(f.Query, sess.Title, sess.Topic, sess.Presenter) {
			continue
		}
		matched = append(matched, all[i])
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SessionDate != matched[j].SessionDate {
			return matched[i].SessionDate < matched[j].SessionDate
		}
		return matched[i].SessionTime < matched[j].SessionTime
	})

	return &SessionListResult{
		Items: paging.Slice(matched, f.Page),
		Total: len(matched),
		Page:  f.Page.Page,
		Pages: paging.Pages(len(matched), f.Page.Limit),
	}, nil
}

// UpdateSessionInput carries the fields accepted on a partial session update.
type UpdateSessionInput struct {
	Title       *string
	Topic       *string
	Description *string
	Presenter   *string
	SessionDate *string
	SessionTime *string
	Location    *string
}

// UpdateSession merges the supplied fields into the stored session.
func (s *CommsService) UpdateSession(ctx context.Context, id string, in UpdateSessionInput, actor Actor) (*models.HealthEducationSession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		sess.Title = *in.Title
	}
	if in.Topic != nil {
		sess.Topic = *in.Topic
	}
	if in.Description != nil {
		sess.Description = *in.Description
	}
	if in.Presenter != nil {
		sess.Presenter = *in.Presenter
	}
	if in.SessionDate != nil {
		sess.SessionDate = *in.SessionDate
	}
	if in.SessionTime != nil {
		sess.SessionTime = *in.SessionTime
	}
	if in.Location != nil {
		sess.Location = *in.Location
	}
	sess.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, EducationCollection, sess.ID, sess); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, EducationCollection, "update", sess.ID, actor.audit(), "updated session")
	return sess, nil
}

// AttachToSession appends an uploaded file reference.
func (s *CommsService) AttachToSession(ctx context.Context, id string, att models.Attachment, actor Actor) (*models.HealthEducationSession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Attachments = append(sess.Attachments, att)
	sess.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, EducationCollection, sess.ID, sess); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, EducationCollection, "attach", sess.ID, actor.audit(),
		"attached "+att.Filename)
	return sess, nil
}

// DeleteSession removes a session permanently.
func (s *CommsService) DeleteSession(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, EducationCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, EducationCollection, "delete", id, actor.audit(), "deleted session")
	return nil
}
