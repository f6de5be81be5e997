package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courseapi/internal/domain"
	"courseapi/internal/repository"
)

// -------- test fakes --------

type fakeCourseRepo struct {
	repository.CourseRepository
	courses map[int64]*domain.Course
	updates int
	deletes int
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[int64]*domain.Course)}
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *domain.Course) (int64, error) {
	f.nextID++
	course.ID = f.nextID
	stored := *course
	f.courses[course.ID] = &stored
	return course.ID, nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return repository.ErrNotFound
	}
	f.updates++
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return repository.ErrNotFound
	}
	f.deletes++
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) Get(ctx context.Context, id int64) (*domain.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range f.courses {
		out = append(out, *course)
	}
	return out, nil
}

func seedCourse(t *testing.T, repo *fakeCourseRepo, ownerID int64) *domain.Course {
	t.Helper()
	course := &domain.Course{
		Title:       "Learn How to Program",
		Description: "In this course, you'll learn how to write code.",
		UserID:      ownerID,
	}
	_, err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	return course
}

// -------- tests --------

func TestCreateCourseSetsOwner(t *testing.T) {
	repo := newFakeCourseRepo()
	svc := NewCourseService(repo)

	course, err := svc.CreateCourse(context.Background(), 7, CourseInput{
		Title:       "Learn How to Test",
		Description: "Tables and fakes.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), course.UserID)
	assert.NotZero(t, course.ID)
}

func TestUpdateCourseByOwner(t *testing.T) {
	repo := newFakeCourseRepo()
	course := seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	err := svc.UpdateCourse(context.Background(), course.ID, 1, CourseInput{
		Title:         "New Title",
		Description:   "New description.",
		EstimatedTime: "12 hours",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, "New Title", repo.courses[course.ID].Title)
	assert.Equal(t, "12 hours", repo.courses[course.ID].EstimatedTime)
	assert.Equal(t, int64(1), repo.courses[course.ID].UserID, "owner never changes")
}

func TestUpdateCourseByNonOwner(t *testing.T) {
	repo := newFakeCourseRepo()
	course := seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	err := svc.UpdateCourse(context.Background(), course.ID, 2, CourseInput{
		Title:       "Hijacked",
		Description: "Should never land.",
	})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Zero(t, repo.updates, "no write may be issued on a forbidden request")
	assert.Equal(t, "Learn How to Program", repo.courses[course.ID].Title)
}

func TestUpdateMissingCourseIsNotFoundForAnyActor(t *testing.T) {
	repo := newFakeCourseRepo()
	seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	for _, actorID := range []int64{1, 2, 99} {
		err := svc.UpdateCourse(context.Background(), 999999, actorID, CourseInput{
			Title:       "x",
			Description: "y",
		})
		assert.ErrorIs(t, err, ErrCourseNotFound, "actor %d", actorID)
		assert.NotErrorIs(t, err, ErrNotOwner)
	}
}

func TestDeleteCourseByOwner(t *testing.T) {
	repo := newFakeCourseRepo()
	course := seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	require.NoError(t, svc.DeleteCourse(context.Background(), course.ID, 1))
	assert.Equal(t, 1, repo.deletes)
}

func TestDeleteCourseByNonOwner(t *testing.T) {
	repo := newFakeCourseRepo()
	course := seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	err := svc.DeleteCourse(context.Background(), course.ID, 2)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Zero(t, repo.deletes)
}

func TestDeleteIsIdempotentlyNotFound(t *testing.T) {
	repo := newFakeCourseRepo()
	course := seedCourse(t, repo, 1)
	svc := NewCourseService(repo)

	require.NoError(t, svc.DeleteCourse(context.Background(), course.ID, 1))

	err := svc.DeleteCourse(context.Background(), course.ID, 1)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestGetMissingCourse(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo())

	_, err := svc.GetCourse(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
