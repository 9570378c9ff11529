package create_lesson

import (
	"context"

	"github.com/equiclub/EQC-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.LessonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
