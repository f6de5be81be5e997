package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"courseapi/internal/domain"
	"courseapi/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	courses service.CourseService
	logger  *logrus.Logger

	// parseCredentials extracts basic credentials from a request; swapped
	// out in tests to supply synthetic credentials.
	parseCredentials credentialParser
}

func NewHandler(users service.UserService, courses service.CourseService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:            users,
		courses:          courses,
		logger:           logger,
		parseCredentials: basicCredentials,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestIDMiddleware())

	api := router.Group("/")
	{
		api.GET("/courses", h.listCourses)
		api.GET("/courses/:id", h.getCourse)
		api.POST("/courses", h.requireAuth(), h.createCourse)
		api.PUT("/courses/:id", h.requireAuth(), h.updateCourse)
		api.DELETE("/courses/:id", h.requireAuth(), h.deleteCourse)
		api.GET("/users", h.requireAuth(), h.getCurrentUser)
		api.POST("/users", h.createUser)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type courseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
}

type userRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

type CourseResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
	UserID          int64  `json:"userId"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

func (h *Handler) listCourses(c *gin.Context) {
	courses, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	resp := make([]CourseResponse, len(courses))
	for i := range courses {
		resp[i] = courseToResponse(courses[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCourse(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	course, err := h.courses.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, courseToResponse(*course))
}

func (h *Handler) createCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	if msgs := validateCourseRequest(req); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	course, err := h.courses.CreateCourse(c.Request.Context(), actor.ID, courseInput(req))
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/courses/%d", course.ID))
	c.Status(http.StatusCreated)
}

func (h *Handler) updateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	if msgs := validateCourseRequest(req); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}

	actor, ok := currentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	id, ok := courseID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.courses.UpdateCourse(c.Request.Context(), id, actor.ID, courseInput(req)); err != nil {
		h.mutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteCourse(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	id, ok := courseID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.courses.DeleteCourse(c.Request.Context(), id, actor.ID); err != nil {
		h.mutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getCurrentUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:           actor.ID,
		FirstName:    actor.FirstName,
		LastName:     actor.LastName,
		EmailAddress: actor.EmailAddress,
	})
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid request body"}})
		return
	}
	if msgs := validateUserRequest(req); len(msgs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": msgs})
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.FirstName, req.LastName, req.EmailAddress, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
			return
		}
		h.serverError(c, err)
		return
	}

	c.Header("Location", "/")
	c.Status(http.StatusCreated)
}

// mutationError maps course update/delete failures onto the status
// contract: existence first (404), then ownership (403), then 500.
func (h *Handler) mutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, service.ErrNotOwner):
		c.Status(http.StatusForbidden)
	default:
		h.serverError(c, err)
	}
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger.WithField("request_id", requestID(c)).Errorf("request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// courseID parses the :id param. A non-numeric id can never name an
// existing course, so it follows the lookup-miss path.
func courseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func courseInput(req courseRequest) service.CourseInput {
	return service.CourseInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
	}
}

func courseToResponse(course domain.Course) CourseResponse {
	return CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
		UserID:          course.UserID,
	}
}

func requiredMessage(field string) string {
	return fmt.Sprintf("Please provide a value for %q", field)
}

func validateCourseRequest(req courseRequest) []string {
	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, requiredMessage("title"))
	}
	if req.Description == "" {
		msgs = append(msgs, requiredMessage("description"))
	}
	return msgs
}

// validateUserRequest mirrors the field order of the registration form.
// The email field is reported as "email" even though the body key is
// emailAddress; clients depend on the exact wording.
func validateUserRequest(req userRequest) []string {
	var msgs []string
	if req.FirstName == "" {
		msgs = append(msgs, requiredMessage("firstName"))
	}
	if req.LastName == "" {
		msgs = append(msgs, requiredMessage("lastName"))
	}
	if req.EmailAddress == "" {
		msgs = append(msgs, requiredMessage("email"))
	}
	if _, err := mail.ParseAddress(req.EmailAddress); err != nil {
		msgs = append(msgs, `Please provide a valid email address for "email"`)
	}
	if req.Password == "" {
		msgs = append(msgs, requiredMessage("password"))
	}
	return msgs
}
