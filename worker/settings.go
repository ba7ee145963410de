package worker

import (
	"fmt"
	"runtime"

	"mandelbrot/task"
)

type Settings struct {
	ColumnsPerTask uint
	Count          int
	TaskGeneration task.Generation
}

func (s *Settings) String() string {
	output := "{Worker settings "
	output += fmt.Sprintf("ColumnsPerTask: %d ", s.ColumnsPerTask)
	output += fmt.Sprintf("Count: %d ", s.Count)
	output += fmt.Sprintf("TaskGeneration: %s}", s.TaskGeneration)
	return output
}

// Verify defaults to one worker per CPU, each taking eight columns at a time
func (s *Settings) Verify() error {
	if s.ColumnsPerTask == 0 {
		s.ColumnsPerTask = 8
	}
	if s.Count <= 0 {
		s.Count = runtime.NumCPU()
	}
	if s.TaskGeneration < task.Column || s.TaskGeneration > task.Image {
		s.TaskGeneration = task.Column
	}
	return nil
}
