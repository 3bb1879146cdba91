// services/post_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"training-backend/models"
)

var ErrPostNotFound = errors.New("post_not_found")

type PostService struct {
	DB *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db}
}

type PostInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	AuthorID *uint  `json:"author_id"`
}

func (s *PostService) Create(in PostInput) (*models.Post, error) {
	post := models.Post{Title: in.Title, Content: in.Content, AuthorID: in.AuthorID}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

func (s *PostService) Update(id uint, title, content string) (*models.Post, error) {
	var post models.Post
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}

	if err := s.DB.Model(&post).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

func (s *PostService) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.DB.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return &post, nil
}

func (s *PostService) List() ([]models.Post, error) {
	var posts []models.Post
	if err := s.DB.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Delete(id uint) error {
	res := s.DB.Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}
