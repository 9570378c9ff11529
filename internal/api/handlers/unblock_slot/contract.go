package unblock_slot

import "context"

type ScheduleService interface {
	UnblockSlot(ctx context.Context, blockID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
