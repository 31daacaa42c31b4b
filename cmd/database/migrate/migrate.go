package migration

import (
	"beertrack/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// pendingPairIndex allows one pending request per unordered pair of users.
const pendingPairIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_friend_requests_pending_pair
ON friend_requests (LEAST(from_user_id, to_user_id), GREATEST(from_user_id, to_user_id))
WHERE status = 'pending'`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}, &entities.Session{}); err != nil {
		log.Errorf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Beer{}); err != nil {
		log.Errorf("Error migrating beer database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FriendRequest{}, &entities.Friendship{}); err != nil {
		log.Errorf("Error migrating friend database: %v", err)
		return err
	}
	if err := db.Exec(pendingPairIndex).Error; err != nil {
		log.Errorf("Error creating pending friend request index: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
