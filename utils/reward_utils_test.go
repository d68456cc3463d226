package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/luxstore/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRule(t *testing.T, db *gorm.DB, name, event string, minAmount float64, start, end time.Time) models.CouponRule {
	t.Helper()
	coupon := models.Coupon{
		Code:          "RW-" + name,
		DiscountType:  models.DiscountTypeFlat,
		DiscountValue: 10,
		ExpiryDate:    time.Now().AddDate(1, 0, 0),
		IsActive:      true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	rule := models.CouponRule{
		Name:         name,
		TriggerEvent: event,
		MinAmount:    minAmount,
		CouponID:     coupon.ID,
		StartDate:    start,
		EndDate:      end,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&rule).Error)
	return rule
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FullName: "Casey Reed", Email: email, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func historyCount(t *testing.T, db *gorm.DB, userID, ruleID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.UserCouponHistory{}).
		Where("user_id = ? AND rule_id = ?", userID, ruleID).Count(&count).Error)
	return count
}

func TestFireCouponEventIssuesOnce(t *testing.T) {
	db := newTestDB(t)
	mail := captureMail(t)

	now := time.Now()
	rule := seedRule(t, db, "Welcome", models.TriggerEventLogin, 0, now.Add(-time.Hour), now.Add(time.Hour))
	user := seedUser(t, db, "casey@example.com")

	FireCouponEvent(db, &user, models.TriggerEventLogin, 0)
	FireCouponEvent(db, &user, models.TriggerEventLogin, 0)

	assert.EqualValues(t, 1, historyCount(t, db, user.ID, rule.ID))

	subject, got := waitForMail(t, mail, 2*time.Second)
	require.True(t, got, "expected exactly one reward notification")
	assert.Equal(t, "You've unlocked a reward: Welcome", subject)

	// The duplicate fire must not produce a second message
	_, extra := waitForMail(t, mail, 200*time.Millisecond)
	assert.False(t, extra, "duplicate trigger sent a second notification")
}

func TestFireCouponEventConcurrentDoubleFire(t *testing.T) {
	db := newTestDB(t)
	mail := captureMail(t)

	now := time.Now()
	rule := seedRule(t, db, "Welcome", models.TriggerEventLogin, 0, now.Add(-time.Hour), now.Add(time.Hour))
	user := seedUser(t, db, "casey@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			FireCouponEvent(db, &user, models.TriggerEventLogin, 0)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, historyCount(t, db, user.ID, rule.ID))

	_, got := waitForMail(t, mail, 2*time.Second)
	require.True(t, got)
	_, extra := waitForMail(t, mail, 200*time.Millisecond)
	assert.False(t, extra, "concurrent trigger sent a second notification")
}

func TestFireCouponEventMinAmount(t *testing.T) {
	db := newTestDB(t)
	captureMail(t)

	now := time.Now()
	rule := seedRule(t, db, "Big Spender", models.TriggerEventOrderOverAmount, 100, now.Add(-time.Hour), now.Add(time.Hour))
	user := seedUser(t, db, "casey@example.com")

	FireCouponEvent(db, &user, models.TriggerEventOrderOverAmount, 50)
	assert.Zero(t, historyCount(t, db, user.ID, rule.ID))

	FireCouponEvent(db, &user, models.TriggerEventOrderOverAmount, 150)
	assert.EqualValues(t, 1, historyCount(t, db, user.ID, rule.ID))
}

func TestFireCouponEventOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	captureMail(t)

	now := time.Now()
	expired := seedRule(t, db, "Expired", models.TriggerEventLogin, 0, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	upcoming := seedRule(t, db, "Upcoming", models.TriggerEventLogin, 0, now.Add(24*time.Hour), now.Add(48*time.Hour))
	user := seedUser(t, db, "casey@example.com")

	FireCouponEvent(db, &user, models.TriggerEventLogin, 0)

	assert.Zero(t, historyCount(t, db, user.ID, expired.ID))
	assert.Zero(t, historyCount(t, db, user.ID, upcoming.ID))
}

func TestFireCouponEventInactiveRule(t *testing.T) {
	db := newTestDB(t)
	captureMail(t)

	now := time.Now()
	rule := seedRule(t, db, "Disabled", models.TriggerEventLogin, 0, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, db.Model(&rule).Update("is_active", false).Error)
	user := seedUser(t, db, "casey@example.com")

	FireCouponEvent(db, &user, models.TriggerEventLogin, 0)
	assert.Zero(t, historyCount(t, db, user.ID, rule.ID))
}
