package service

import (
	"context"
	"errors"

	"courseapi/internal/domain"
	"courseapi/internal/repository"
)

var (
	// ErrCourseNotFound indicates the referenced course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrNotOwner indicates the acting user does not own the course.
	ErrNotOwner = errors.New("course owned by another user")
)

// CourseInput carries the mutable course fields for create and update.
type CourseInput struct {
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string
}

// CourseService coordinates course operations and enforces the
// owner-only mutation rule.
type CourseService interface {
	CreateCourse(ctx context.Context, ownerID int64, in CourseInput) (*domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
	UpdateCourse(ctx context.Context, id, actorID int64, in CourseInput) error
	DeleteCourse(ctx context.Context, id, actorID int64) error
}

type courseService struct {
	courses repository.CourseRepository
}

func NewCourseService(courses repository.CourseRepository) CourseService {
	return &courseService{courses: courses}
}

func (s *courseService) CreateCourse(ctx context.Context, ownerID int64, in CourseInput) (*domain.Course, error) {
	course := &domain.Course{
		Title:           in.Title,
		Description:     in.Description,
		EstimatedTime:   in.EstimatedTime,
		MaterialsNeeded: in.MaterialsNeeded,
		UserID:          ownerID,
	}

	if _, err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

// UpdateCourse replaces the mutable fields of an existing course.
// Existence is checked before ownership; the two failures must stay
// distinguishable to callers.
func (s *courseService) UpdateCourse(ctx context.Context, id, actorID int64, in CourseInput) error {
	course, err := s.authorizeMutation(ctx, id, actorID)
	if err != nil {
		return err
	}

	course.Title = in.Title
	course.Description = in.Description
	course.EstimatedTime = in.EstimatedTime
	course.MaterialsNeeded = in.MaterialsNeeded

	return s.courses.Update(ctx, course)
}

func (s *courseService) DeleteCourse(ctx context.Context, id, actorID int64) error {
	if _, err := s.authorizeMutation(ctx, id, actorID); err != nil {
		return err
	}
	return s.courses.Delete(ctx, id)
}

// authorizeMutation fetches the course and applies the ownership rule:
// allow iff the course's owner id equals the actor's id.
func (s *courseService) authorizeMutation(ctx context.Context, id, actorID int64) (*domain.Course, error) {
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != actorID {
		return nil, ErrNotOwner
	}
	return course, nil
}
