package task

import (
	"fmt"
)

const (
	Column Generation = iota
	Image
)

// Generation decides how an image is carved into tasks
type Generation int

func (g Generation) String() string {
	switch g {
	case Column:
		return "Column"
	case Image:
		return "Image"
	}
	return fmt.Sprintf("Generation(%d)", int(g))
}

// Task is a half open range of image columns
type Task struct {
	EndColumn   uint
	ID          uint
	StartColumn uint
}

func NewTask(id uint, startColumn uint, endColumn uint) Task {
	return Task{
		EndColumn:   endColumn,
		ID:          id,
		StartColumn: startColumn,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("StartColumn: %d ", t.StartColumn)
	output += fmt.Sprintf("EndColumn: %d}", t.EndColumn)
	return output
}

func (t *Task) Columns() uint {
	if t.EndColumn < t.StartColumn {
		return 0
	}
	return t.EndColumn - t.StartColumn
}

// Split covers columns [0, imageWidth) exactly once. Column generation makes
// one task per columnsPerTask columns, the last one possibly narrower.
func Split(imageWidth uint, generation Generation, columnsPerTask uint) []Task {
	if imageWidth == 0 {
		return nil
	}
	if generation == Image || columnsPerTask == 0 || columnsPerTask >= imageWidth {
		return []Task{NewTask(0, 0, imageWidth)}
	}

	tasks := make([]Task, 0, (imageWidth+columnsPerTask-1)/columnsPerTask)
	var id uint
	for start := uint(0); start < imageWidth; start += columnsPerTask {
		end := start + columnsPerTask
		if end > imageWidth {
			end = imageWidth
		}
		tasks = append(tasks, NewTask(id, start, end))
		id++
	}
	return tasks
}
