// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/MKhiriev/health-keeper/models"
)

// addRecordRequest is the payload of POST /api/records. Either a structured
// record is supplied (category plus content), or a free-text message that
// the external classifier turns into one.
type addRecordRequest struct {
	Text     string         `json:"text,omitempty"`
	Category string         `json:"category,omitempty"`
	Content  string         `json:"content,omitempty"`
	Date     string         `json:"date,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req addRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.Text == "" && req.Content == "" {
		http.Error(w, "either text or content must be provided", http.StatusBadRequest)
		return
	}

	record := models.Record{
		Category: req.Category,
		Content:  req.Content,
		Extra:    req.Extra,
	}
	if req.Date != "" {
		date, err := utils.ResolveDateExpression(req.Date, time.Now())
		if err != nil {
			log.Err(err).Str("date", req.Date).Msg("unparseable date expression")
			http.Error(w, "unparseable date", http.StatusBadRequest)
			return
		}
		record.Date = date
	}

	// Free text goes through the classifier; its failure degrades to a
	// generic record rather than losing the entry.
	if req.Text != "" && req.Content == "" {
		classification, err := h.classifier.Classify(ctx, req.Text)
		if err != nil {
			log.Err(err).Msg("classification failed, storing as generic record")
		}
		record.Category = classification.Category
		record.Content = classification.Content
		if req.Date == "" && classification.DateExpression != "" {
			// A bad expression from the classifier falls back to today.
			if date, dateErr := utils.ResolveDateExpression(classification.DateExpression, time.Now()); dateErr == nil {
				record.Date = date
			}
		}
	}

	userID := utils.UserIDFromContext(ctx)
	if !h.services.RecordService.AddRecord(ctx, userID, record, h.encrypted) {
		log.Error().Str("user_id", userID).Msg("error adding record")
		http.Error(w, "error adding record", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.StatusResponse{OK: true, Message: "record added"}, http.StatusCreated)
}

// listRecords serves GET /api/records. Supported query parameters:
//
//	date=<expression>  records of one day ("today", "yesterday", "12/05/25", "2026-03-10")
//	days=<n>           records of the last n calendar days
//
// Without parameters the full history is returned, most recent first.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := utils.UserIDFromContext(ctx)

	var records []models.Record
	switch {
	case r.URL.Query().Get("date") != "":
		date, err := utils.ResolveDateExpression(r.URL.Query().Get("date"), time.Now())
		if err != nil {
			log.Err(err).Str("date", r.URL.Query().Get("date")).Msg("unparseable date expression")
			http.Error(w, "unparseable date", http.StatusBadRequest)
			return
		}
		records = h.services.RecordService.GetByDate(ctx, userID, date, h.encrypted)

	case r.URL.Query().Get("days") != "":
		days, err := strconv.Atoi(r.URL.Query().Get("days"))
		if err != nil || days <= 0 {
			log.Error().Str("days", r.URL.Query().Get("days")).Msg("invalid days query parameter")
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		records = h.services.RecordService.GetRecent(ctx, userID, days, h.encrypted)

	default:
		records = h.services.RecordService.GetAll(ctx, userID, h.encrypted)
	}

	utils.WriteJSON(w, models.RecordsResponse{
		UserID:  userID,
		Records: records,
		Length:  len(records),
	}, http.StatusOK)
}

func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := utils.UserIDFromContext(ctx)

	report := h.services.RecordService.Export(ctx, userID, h.encrypted)

	utils.WriteJSON(w, models.ExportResponse{UserID: userID, Report: report}, http.StatusOK)
}

// wipeRecords removes the user's entire document and destroys the session:
// after a wipe there is nothing left for the session to guard.
func (h *Handler) wipeRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	userID := utils.UserIDFromContext(ctx)

	if !h.services.RecordService.DeleteAll(ctx, userID) {
		log.Warn().Str("user_id", userID).Msg("nothing to wipe")
		http.Error(w, "no stored data", http.StatusNotFound)
		return
	}

	h.services.SessionService.DestroySession(userID)

	utils.WriteJSON(w, models.StatusResponse{OK: true, Message: "all records deleted"}, http.StatusOK)
}
