package learnix

import (
	"context"
	"fmt"

	"github.com/learnix/learnix-portal/internal/domain/model"
)

// ListCourses returns the public course catalog.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var out []model.Course
	if err := c.get(ctx, "/api/courses/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCourse returns a single catalog entry.
func (c *Client) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	var out model.Course
	if err := c.get(ctx, fmt.Sprintf("/api/courses/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCourseContents lists the lessons of a course the caller can access.
func (c *Client) GetCourseContents(ctx context.Context, id int64) ([]model.CourseContent, error) {
	var out []model.CourseContent
	if err := c.get(ctx, fmt.Sprintf("/api/courses/%d/contents", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}
