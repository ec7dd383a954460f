package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/onelife-dev/one-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegistroEntry is one inbound daily entry. Omitted fields fall back to the
// upsert defaults (completado true, nota empty).
type RegistroEntry struct {
	Completado *bool   `json:"completado"`
	Nota       *string `json:"nota"`
}

// Registro is the outbound shape of a stored log.
type Registro struct {
	Completado bool   `json:"completado"`
	Nota       string `json:"nota"`
}

const logDateLayout = "2006-01-02"

// ErrInvalidRegistros marks a malformed inbound log mapping. Handlers turn
// it into a 400 rather than a 500.
var ErrInvalidRegistros = errors.New("registros")

// ReconcileLogs makes the stored log set for a habit exactly match the
// supplied date-keyed mapping: every supplied date is upserted, every stored
// date missing from the mapping is deleted. A nil mapping means the caller
// did not touch logs at all; an empty non-nil mapping deletes everything.
// Must run inside the request transaction so a failure partway through never
// leaves a partial resync visible.
func ReconcileLogs(tx *gorm.DB, habitID string, registros map[string]RegistroEntry) error {
	if registros == nil {
		return nil
	}

	var existing []models.HabitLog
	if err := tx.Where("habit_id = ?", habitID).Find(&existing).Error; err != nil {
		return err
	}

	for iso, entry := range registros {
		date, err := time.Parse(logDateLayout, iso)
		if err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidRegistros, iso)
		}

		done := true
		if entry.Completado != nil {
			done = *entry.Completado
		}

		note := ""
		if entry.Nota != nil {
			note = *entry.Nota
		}

		log := models.HabitLog{
			ID:      uuid.NewString(),
			HabitID: habitID,
			Date:    date,
			Done:    done,
			Note:    note,
		}

		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"done":       done,
				"note":       note,
				"updated_at": time.Now(),
			}),
		}).Create(&log).Error

		if err != nil {
			return err
		}
	}

	var stale []string
	for _, log := range existing {
		if _, keep := registros[log.Date.Format(logDateLayout)]; !keep {
			stale = append(stale, log.ID)
		}
	}

	if len(stale) > 0 {
		if err := tx.Where("id IN ?", stale).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
	}

	return nil
}

// LogsToRegistros projects stored log rows into the wire mapping. Pure;
// shared by the reconciliation round trip and outbound serialization.
func LogsToRegistros(logs []models.HabitLog) map[string]Registro {
	registros := make(map[string]Registro, len(logs))

	for _, log := range logs {
		registros[log.Date.Format(logDateLayout)] = Registro{
			Completado: log.Done,
			Nota:       log.Note,
		}
	}

	return registros
}
