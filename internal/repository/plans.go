package repository

import (
	"errors"

	"github.com/davidsantoszx/gerenciadorsalario/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrPlanNotFound is returned when a plan does not exist or belongs to
// another user. The two cases are deliberately indistinguishable so the
// API never leaks whether a foreign plan id exists.
var ErrPlanNotFound = errors.New("plan not found or not owned by caller")

// LineInput is one submitted plan line. ID zero means the line is new and
// should be inserted.
type LineInput struct {
	ID        uint
	Tipo      string
	Descricao string
	Valor     decimal.Decimal
}

// PlanRepository runs all plan and line-item operations. Every method
// takes the owner id explicitly and touches only rows reachable through
// it; multi-row changes run in a single transaction.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// ListByOwner returns all plans of the owner with their lines preloaded
// in creation order.
func (r *PlanRepository) ListByOwner(ownerID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.
		Preload("Linhas", func(db *gorm.DB) *gorm.DB { return db.Order("line_items.id") }).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// FindOwned loads a plan only when it belongs to ownerID.
func (r *PlanRepository) FindOwned(ownerID, planID uint) (*models.Plan, error) {
	return findOwned(r.db, ownerID, planID)
}

func findOwned(tx *gorm.DB, ownerID, planID uint) (*models.Plan, error) {
	var plan models.Plan
	err := tx.Where("id = ? AND user_id = ?", planID, ownerID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Create persists a plan and its lines atomically. The plan becomes
// principal iff the owner has no principal plan yet; the check and the
// insert share one transaction, so two concurrent creations cannot both
// observe "no principal" (SQLite serializes write transactions).
func (r *PlanRepository) Create(ownerID uint, nome string, linhas []LineInput) (*models.Plan, error) {
	plan := models.Plan{UserID: ownerID, Nome: nome}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var principais int64
		if err := tx.Model(&models.Plan{}).
			Where("user_id = ? AND principal = ?", ownerID, true).
			Count(&principais).Error; err != nil {
			return err
		}
		plan.Principal = principais == 0

		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		for _, l := range linhas {
			line := models.LineItem{
				PlanID:    plan.ID,
				Tipo:      l.Tipo,
				Descricao: l.Descricao,
				Valor:     l.Valor,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update renames the plan and reconciles its lines in one transaction:
// existing lines missing from the submission are deleted, submitted lines
// with an id update the matching line, and lines without an id are
// inserted. A submitted id that belongs to another plan is silently
// skipped, matching the historical behavior of this API.
func (r *PlanRepository) Update(ownerID, planID uint, nome string, linhas []LineInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := findOwned(tx, ownerID, planID)
		if err != nil {
			return err
		}

		if err := tx.Model(plan).Update("nome", nome).Error; err != nil {
			return err
		}

		var keep []uint
		for _, l := range linhas {
			if l.ID != 0 {
				keep = append(keep, l.ID)
			}
		}
		del := tx.Where("plan_id = ?", plan.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.LineItem{}).Error; err != nil {
			return err
		}

		for _, l := range linhas {
			if l.ID == 0 {
				line := models.LineItem{
					PlanID:    plan.ID,
					Tipo:      l.Tipo,
					Descricao: l.Descricao,
					Valor:     l.Valor,
				}
				if err := tx.Create(&line).Error; err != nil {
					return err
				}
				continue
			}
			// updates nothing when the id belongs to another plan
			if err := tx.Model(&models.LineItem{}).
				Where("id = ? AND plan_id = ?", l.ID, plan.ID).
				Updates(map[string]interface{}{
					"tipo":      l.Tipo,
					"descricao": l.Descricao,
					"valor":     l.Valor,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the plan and all its lines in one transaction (children
// first, then the parent). Deleting the principal plan does not promote
// another plan.
func (r *PlanRepository) Delete(ownerID, planID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := findOwned(tx, ownerID, planID)
		if err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plan{}, plan.ID).Error
	})
}

// SetPrincipal atomically clears the principal flag on every plan of the
// owner and sets it on the target.
func (r *PlanRepository) SetPrincipal(ownerID, planID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := findOwned(tx, ownerID, planID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Plan{}).
			Where("user_id = ?", ownerID).
			Update("principal", false).Error; err != nil {
			return err
		}
		return tx.Model(plan).Update("principal", true).Error
	})
}
