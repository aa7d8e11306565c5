package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Azi26Ahmed/Study-Track/backend/models"
)

var (
	// ErrNotFound is returned when no course exists for the given ID.
	ErrNotFound = errors.New("course not found")
	// ErrDuplicate is returned when a course with the same URL already
	// exists for the owning user.
	ErrDuplicate = errors.New("course already exists")
)

// CourseStore persists courses as whole documents: every write stores the
// complete course including its nested sections. Concurrent updates to the
// same course race under last-writer-wins; there is no version token.
type CourseStore struct {
	DB *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{DB: db}
}

func (s *CourseStore) Insert(course *models.Course) error {
	if err := s.DB.Create(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *CourseStore) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *CourseStore) FindByOwner(userID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := s.DB.Where("user_id = ?", userID).Order("created_at").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Replace overwrites the stored document under id with the given course.
func (s *CourseStore) Replace(id uint, course *models.Course) error {
	var existing models.Course
	if err := s.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	course.ID = existing.ID
	course.CreatedAt = existing.CreatedAt

	if err := s.DB.Save(course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Delete removes the course row permanently and reports whether one existed.
func (s *CourseStore) Delete(id uint) (bool, error) {
	result := s.DB.Unscoped().Delete(&models.Course{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
