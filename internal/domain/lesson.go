package domain

import (
	"time"

	"github.com/equiclub/EQC-BookingService/pkg/types"
)

// LessonStatus represents the status of a lesson occupancy record
type LessonStatus string

const (
	LessonStatusScheduled LessonStatus = "scheduled"
	LessonStatusCancelled LessonStatus = "cancelled"
)

// Lesson represents the occupancy record of one half-hour slot
// Создается лениво - при первом бронировании слота или вручную администратором
// Часовые услуги занимают два сцепленных Lesson подряд
type Lesson struct {
	ID           int64
	ServiceID    int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	MaxSpots     int
	BookedSpots  int
	InstructorID *int64
	Status       LessonStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull returns true if the lesson has no free spots left
func (l *Lesson) IsFull() bool {
	return l.BookedSpots >= l.MaxSpots
}

// FreeSpots returns the number of free spots
func (l *Lesson) FreeSpots() int {
	free := l.MaxSpots - l.BookedSpots
	if free < 0 {
		return 0
	}
	return free
}

// IsCancelled returns true if the lesson has been cancelled by staff
func (l *Lesson) IsCancelled() bool {
	return l.Status == LessonStatusCancelled
}

// SlotOccupancy суммарная занятость одного слота даты
// Занятость суммируется по всем Lesson на date+start_time независимо от услуги:
// потолок вместимости общий для всех услуг, а не на каждую в отдельности
type SlotOccupancy struct {
	StartTime   types.TimeString
	BookedSpots int
}

// SumOccupancy суммирует занятость по всем занятиям на указанное время
// Отмененные занятия место не занимают
func SumOccupancy(lessons []*Lesson, startTime types.TimeString) int {
	total := 0
	for _, lesson := range lessons {
		if lesson.IsCancelled() {
			continue
		}
		if lesson.StartTime == startTime {
			total += lesson.BookedSpots
		}
	}
	return total
}
