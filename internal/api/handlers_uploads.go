// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/metrics"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/uploads"
)

// multipartOverhead is headroom on top of the file cap for multipart framing
// and the other form fields.
const multipartOverhead = 64 << 10

// Upload handles POST /uploads/{feature}. The multipart form carries the file
// under "file" and, optionally, a "target" id naming the record the file
// should be attached to.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	feature := chi.URLParam(r, "feature")
	if !uploads.ValidFeature(feature) {
		rw.NotFound("unknown upload feature")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Uploads.MaxSizeBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.RecordUploadRejection(feature, "bad_form")
		rw.BadRequest("multipart form must include a file field")
		return
	}
	defer file.Close()

	att, err := h.uploads.Save(feature, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, uploads.ErrTooLarge) {
			metrics.RecordUploadRejection(feature, "too_large")
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "file exceeds the upload size limit")
			return
		}
		metrics.RecordUploadRejection(feature, "write_failed")
		rw.StoreError(err)
		return
	}
	metrics.RecordUpload(feature, att.SizeBytes)

	if target := r.FormValue("target"); target != "" {
		if err := h.attach(r, feature, target, *att); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}

	rw.Created(att)
}

// attach links a stored attachment to the record owning it for the feature.
func (h *Handlers) attach(r *http.Request, feature, target string, att models.Attachment) error {
	claims, _ := authClaims(r)
	actor := serviceActor(claims)

	switch feature {
	case "medical":
		_, err := h.medical.AttachToRecord(r.Context(), target, att, actor)
		return err
	case "announcements":
		_, err := h.comms.AttachToAnnouncement(r.Context(), target, att, actor)
		return err
	case "education":
		_, err := h.comms.AttachToSession(r.Context(), target, att, actor)
		return err
	default:
		return uploads.ErrUnknownFeature
	}
}

// ServeFile handles GET /files/{feature}/{name}, streaming a previously
// uploaded file.
func (h *Handlers) ServeFile(w http.ResponseWriter, r *http.Request) {
	path, err := h.uploads.Resolve(chi.URLParam(r, "feature"), chi.URLParam(r, "name"))
	if err != nil {
		NewResponseWriter(w, r).NotFound("file not found")
		return
	}
	http.ServeFile(w, r, path)
}
