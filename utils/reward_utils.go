package utils

import (
	"fmt"
	"time"

	"github.com/luxstore/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FireCouponEvent evaluates coupon rules for a trigger event and issues
// at-most-once rewards per (user, rule). The claim row is inserted before
// the notification goes out, and the insert itself is the guard: ON
// CONFLICT DO NOTHING against the (user_id, rule_id) unique index means a
// concurrent claim simply reports zero rows and is skipped. Per-rule
// failures are logged and never propagate to the caller, so a broken rule
// or sink outage cannot block login or checkout.
func FireCouponEvent(db *gorm.DB, user *models.User, event string, orderTotal float64) {
	now := time.Now()
	query := db.Preload("Coupon").
		Where("trigger_event = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			event, true, now, now)
	if event == models.TriggerEventOrderOverAmount {
		query = query.Where("min_amount <= ?", orderTotal)
	}

	var rules []models.CouponRule
	if err := query.Find(&rules).Error; err != nil {
		LogError("Failed to load coupon rules for event %s: %v", event, err)
		return
	}

	for i := range rules {
		rule := &rules[i]
		claimed, err := claimReward(db, user.ID, rule.ID)
		if err != nil {
			LogError("Failed to claim coupon rule %d for user %d: %v", rule.ID, user.ID, err)
			continue
		}
		if !claimed {
			LogDebug("User %d already rewarded for rule %d, skipping", user.ID, rule.ID)
			continue
		}

		var subject string
		switch event {
		case models.TriggerEventLogin:
			subject = fmt.Sprintf("You've unlocked a reward: %s", rule.Name)
		default:
			subject = fmt.Sprintf("Big Spender Reward: %s", rule.Name)
		}
		SendRewardCoupon(subject, user.FullName, user.Email, rule)
		LogInfo("Issued coupon rule %d (%s) to user %d", rule.ID, rule.Name, user.ID)
	}
}

// claimReward inserts the (user, rule) history row. Returns false when the
// pair already exists, sequentially or through a concurrent insert.
func claimReward(db *gorm.DB, userID, ruleID uint) (bool, error) {
	history := models.UserCouponHistory{
		UserID: userID,
		RuleID: ruleID,
		SentAt: time.Now(),
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "rule_id"}},
		DoNothing: true,
	}).Create(&history)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
