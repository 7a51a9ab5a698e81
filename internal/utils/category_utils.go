package utils

import (
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

// GetAllCategoryIDs walks the category tree breadth-first and returns the root
// with every descendant, for subtree-wide catalog queries.
func GetAllCategoryIDs(rootID uint) ([]uint, error) {
	result := []uint{rootID}

	queue := []uint{rootID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var children []models.Category
		err := db.DB.Where("parent_id = ?", current).Find(&children).Error
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			result = append(result, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return result, nil
}
