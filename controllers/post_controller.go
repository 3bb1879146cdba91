// controllers/post_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"training-backend/services"
	"training-backend/utils"
)

type PostController struct {
	PostSvc *services.PostService
}

func NewPostController(svc *services.PostService) *PostController {
	return &PostController{PostSvc: svc}
}

func (ctrl *PostController) GetPosts(c *gin.Context) {
	posts, err := ctrl.PostSvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve posts")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, posts)
}

func (ctrl *PostController) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	post, err := ctrl.PostSvc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.JSONError(c, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

func (ctrl *PostController) CreatePost(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	post, err := ctrl.PostSvc.Create(in)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, post)
}

type UpdatePostPayload struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (ctrl *PostController) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload UpdatePostPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	post, err := ctrl.PostSvc.Update(id, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.JSONError(c, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

func (ctrl *PostController) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.PostSvc.Delete(id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			utils.JSONError(c, http.StatusNotFound, "post not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
