package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/validation"
	"github.com/diewo77/go-invoicing/view"
)

// SettingsHandler serves the optional text blocks and the read-only company
// profile.
type SettingsHandler struct {
	db      *gorm.DB
	company config.CompanyConfig
}

func NewSettingsHandler(db *gorm.DB, company config.CompanyConfig) *SettingsHandler {
	return &SettingsHandler{db: db, company: company}
}

func (h *SettingsHandler) Index(w http.ResponseWriter, r *http.Request) {
	var texts []models.OptionalText
	h.db.Order("key").Find(&texts)

	view.Render(w, r, "settings/index.html", map[string]any{
		"OptionalTexts": texts,
		"Company":       h.company,
	})
}

func (h *SettingsHandler) NewText(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "settings/optional_text_form.html", map[string]any{
		"Text": nil,
	})
}

func (h *SettingsHandler) CreateText(w http.ResponseWriter, r *http.Request) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.FormValue("key"))), " ", "_")

	text := models.OptionalText{
		Key:            key,
		Label:          r.FormValue("label"),
		Content:        r.FormValue("content"),
		DefaultEnabled: r.FormValue("default_enabled") == "on",
	}

	v := make(validation.Violations)
	validation.Required("key", text.Key, v)
	validation.Required("label", text.Label, v)
	validation.Required("content", text.Content, v)
	if v.Empty() {
		var existing models.OptionalText
		if err := h.db.Where("key = ?", key).First(&existing).Error; err == nil {
			v["key"] = "duplicate"
			view.SetFlash(w, "error", fmt.Sprintf("Optional text with key '%s' already exists.", key))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Failed to create optional text", http.StatusInternalServerError)
			return
		}
	}
	if !v.Empty() {
		view.Render(w, r, "settings/optional_text_form.html", map[string]any{
			"Text":   text,
			"Errors": v,
		})
		return
	}

	if err := h.db.Create(&text).Error; err != nil {
		http.Error(w, "Failed to create optional text", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Optional text '%s' created.", text.Label))
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *SettingsHandler) EditText(w http.ResponseWriter, r *http.Request) {
	text, ok := h.find(w, r)
	if !ok {
		return
	}
	view.Render(w, r, "settings/optional_text_form.html", map[string]any{
		"Text": text,
	})
}

func (h *SettingsHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	text, ok := h.find(w, r)
	if !ok {
		return
	}

	text.Label = r.FormValue("label")
	text.Content = r.FormValue("content")
	text.DefaultEnabled = r.FormValue("default_enabled") == "on"

	v := make(validation.Violations)
	validation.Required("label", text.Label, v)
	validation.Required("content", text.Content, v)
	if !v.Empty() {
		view.Render(w, r, "settings/optional_text_form.html", map[string]any{
			"Text":   text,
			"Errors": v,
		})
		return
	}

	if err := h.db.Save(text).Error; err != nil {
		http.Error(w, "Failed to update optional text", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Optional text '%s' updated.", text.Label))
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *SettingsHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	text, ok := h.find(w, r)
	if !ok {
		return
	}

	label := text.Label
	if err := h.db.Delete(text).Error; err != nil {
		http.Error(w, "Failed to delete optional text", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Optional text '%s' deleted.", label))
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *SettingsHandler) find(w http.ResponseWriter, r *http.Request) (*models.OptionalText, bool) {
	id := r.PathValue("id")
	var text models.OptionalText
	if err := h.db.First(&text, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &text, true
}
